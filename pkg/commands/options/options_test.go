package options

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	got := Wrap("pick   a date\nrange on a timeline", 12)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 12, line)
	}
	assert.Equal(t, "pick a date range on a timeline", strings.Join(strings.Fields(got), " "))
}

func TestHandleErrorPassThrough(t *testing.T) {
	boom := errors.New("boom")
	o := &OutputOptions{}
	assert.Equal(t, boom, o.HandleError(boom))
	assert.NoError(t, o.HandleError(nil))
}

func TestTimelineFlagsMatchKeys(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	AddTimelineArgs(cmd, &TimelineOptions{})
	for flag := range FlagKeys {
		require.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}
