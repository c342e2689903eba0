package ratelimit

import (
	"sync"
	"time"

	"trendpress/internal/logger"
)

// Window is the rolling hourly budget for generated articles. It is owned
// by the pipeline instance, not module state, so parallel instances (tests)
// don't interfere. The window resets one hour after it started, not on
// calendar-hour boundaries.
type Window struct {
	mu          sync.Mutex
	count       int
	cap         int
	windowStart time.Time
	now         func() time.Time
}

// New creates a window with the given hourly cap.
func New(cap int) *Window {
	return NewWithClock(cap, time.Now)
}

// NewWithClock lets tests drive the clock.
func NewWithClock(cap int, now func() time.Time) *Window {
	return &Window{
		cap:         cap,
		windowStart: now(),
		now:         now,
	}
}

// Remaining returns how much budget is left in the current window.
func (w *Window) Remaining() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.checkReset()
	left := w.cap - w.count
	if left < 0 {
		return 0
	}
	return left
}

// Allow reports whether one more article fits the budget.
func (w *Window) Allow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.checkReset()
	return w.count < w.cap
}

// Consume spends one unit of budget. Called once per successfully
// processed keyword; failed processing does not consume budget.
func (w *Window) Consume() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.checkReset()
	w.count++
	logger.Debug("rate budget consumed", "used", w.count, "cap", w.cap)
}

// Stats returns the current usage for the metrics endpoint.
func (w *Window) Stats() (count, cap int, windowStart time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.checkReset()
	return w.count, w.cap, w.windowStart
}

// checkReset starts a fresh window once an hour has passed. Callers must
// hold the mutex.
func (w *Window) checkReset() {
	if w.now().Sub(w.windowStart) >= time.Hour {
		if w.count > 0 {
			logger.Info("rate window reset", "used", w.count, "cap", w.cap)
		}
		w.count = 0
		w.windowStart = w.now()
	}
}
