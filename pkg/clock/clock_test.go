package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualFiresInDueOrder(t *testing.T) {
	start := time.Date(2017, time.December, 29, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)
	var order []string
	m.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(100*time.Millisecond, func() {
		order = append(order, "a")
		m.AfterFunc(50*time.Millisecond, func() { order = append(order, "a2") })
	})

	m.Advance(120 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)
	assert.Equal(t, start.Add(120*time.Millisecond), m.Now())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "a2", "b"}, order)
	assert.Zero(t, m.Pending())
}

func TestManualStop(t *testing.T) {
	m := NewManual(time.Time{})
	fired := false
	timer := m.AfterFunc(time.Second, func() { fired = true })
	require.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestInlineRunsNestedAfterOuterReturns(t *testing.T) {
	var s Inline
	var order []string
	s.AfterFunc(time.Second, func() {
		s.AfterFunc(time.Second, func() { order = append(order, "inner") })
		order = append(order, "outer")
	})
	assert.Equal(t, []string{"outer", "inner"}, order)
}
