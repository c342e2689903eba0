package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowCap(t *testing.T) {
	w := New(2)

	assert.Equal(t, 2, w.Remaining())
	assert.True(t, w.Allow())

	w.Consume()
	assert.True(t, w.Allow())
	assert.Equal(t, 1, w.Remaining())

	w.Consume()
	assert.False(t, w.Allow())
	assert.Equal(t, 0, w.Remaining())
}

func TestWindowResetAfterHour(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 17, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	w := NewWithClock(1, clock)
	w.Consume()
	assert.False(t, w.Allow())

	// 59 minutes later the window is still the same one.
	now = now.Add(59 * time.Minute)
	assert.False(t, w.Allow())

	// Past the hour mark the budget resets; the window is not
	// calendar-aligned, it starts when the reset happens.
	now = now.Add(2 * time.Minute)
	assert.True(t, w.Allow())
	assert.Equal(t, 1, w.Remaining())

	count, cap_, start := w.Stats()
	assert.Equal(t, 0, count)
	assert.Equal(t, 1, cap_)
	assert.Equal(t, now, start)
}
