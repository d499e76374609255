// Package throttle coalesces bursts of calls into at most one execution per
// cooldown window.
package throttle

import (
	"sync"
	"time"
)

// Limiter wraps a callback so that a burst of Call invocations runs it once.
// By default the run is trailing: fn fires once the burst has been quiet for
// the whole wait. With leading set, the first call of a burst runs fn
// immediately and the trailing run is dropped.
type Limiter struct {
	fn      func()
	wait    time.Duration
	leading bool

	mu      sync.Mutex
	seq     uint64
	pending bool
	last    time.Time
}

// New returns a limiter around fn with the given cooldown.
func New(fn func(), wait time.Duration, leading bool) *Limiter {
	if wait < 0 {
		wait = 0
	}
	return &Limiter{fn: fn, wait: wait, leading: leading}
}

// Call records an invocation. fn runs on the caller's goroutine for a leading
// call and on a timer goroutine for a trailing one.
func (l *Limiter) Call() {
	l.mu.Lock()
	l.last = time.Now()
	callNow := l.leading && !l.pending
	if !l.pending {
		l.pending = true
		seq := l.seq
		time.AfterFunc(l.wait, func() { l.expire(seq) })
	}
	l.mu.Unlock()

	if callNow {
		l.fn()
	}
}

func (l *Limiter) expire(seq uint64) {
	l.mu.Lock()
	if seq != l.seq || !l.pending {
		l.mu.Unlock()
		return
	}
	if elapsed := time.Since(l.last); elapsed >= 0 && elapsed < l.wait {
		time.AfterFunc(l.wait-elapsed, func() { l.expire(seq) })
		l.mu.Unlock()
		return
	}
	l.pending = false
	l.seq++
	run := !l.leading
	l.mu.Unlock()

	if run {
		l.fn()
	}
}

// Pending reports whether a cooldown window is open.
func (l *Limiter) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Stop drops any pending trailing run. The limiter stays usable.
func (l *Limiter) Stop() {
	l.mu.Lock()
	l.pending = false
	l.seq++
	l.mu.Unlock()
}
