package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/timeband/pkg/timeline"
)

func TestFadeEndpoints(t *testing.T) {
	th := Default(true).Timeline
	assert.Equal(t, th.Foreground.Hex(), th.Fade(0).Hex())
	assert.Equal(t, th.Background.Hex(), th.Fade(1).Hex())

	mid := th.Fade(0.5)
	assert.NotEqual(t, th.Foreground.Hex(), mid.Hex())
	assert.NotEqual(t, th.Background.Hex(), mid.Hex())
	assert.Less(t, mid.DistanceLab(th.Background), th.Foreground.DistanceLab(th.Background))
}

func TestPhaseFadeOrdering(t *testing.T) {
	assert.Zero(t, PhaseFade(timeline.PhaseIdle))
	assert.Greater(t, PhaseFade(timeline.PhaseOutgoing), PhaseFade(timeline.PhaseIncoming))
	assert.Greater(t, PhaseFade(timeline.PhaseIncoming), 0.0)
}

func TestLightAndDarkDiffer(t *testing.T) {
	assert.True(t, Default(true).Dark)
	assert.False(t, Default(false).Dark)
	assert.NotEqual(t, Default(true).Timeline.Foreground.Hex(), Default(false).Timeline.Foreground.Hex())
}
