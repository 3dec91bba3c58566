// Package throttle implements client-side admission control and bounded
// retry for calls to the resume-tailoring backend.
//
// The backend is a free-tier hosted service with an aggressive per-minute
// rate limit and cold-start latency. [Limiter] keeps the client under that
// ceiling; [Do] papers over cold-start failures with patient retries. Neither
// is a general resilience framework.
package throttle

import (
	"sync"
	"time"
)

// window is the trailing interval the call ceiling applies to.
const window = time.Minute

// maxRecorded caps the timestamp list length as a memory safety valve.
const maxRecorded = 64

// Limiter admits or rejects outbound calls based on a sliding-window call
// count and a minimum inter-call spacing. State is in-memory only and resets
// with the process.
//
// Allow and Record are separate on purpose: an admission rejection is shown
// to the user as a wait hint and must not count as an attempt.
type Limiter struct {
	mu         sync.Mutex
	calls      []time.Time
	lastCall   time.Time
	maxCalls   int
	minSpacing time.Duration

	now func() time.Time // overridable in tests
}

// NewLimiter returns a Limiter admitting at most maxCalls per sliding minute
// with at least minSpacing between consecutive admitted calls.
func NewLimiter(maxCalls int, minSpacing time.Duration) *Limiter {
	return &Limiter{
		calls:      make([]time.Time, 0, maxRecorded),
		maxCalls:   maxCalls,
		minSpacing: minSpacing,
		now:        time.Now,
	}
}

// Allow reports whether a call may be made right now. When the call is
// rejected, the returned duration is how long the caller should wait before
// trying again. Allow does not record the call; pair it with Record after the
// call is actually dispatched.
func (l *Limiter) Allow() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.calls) >= l.maxCalls {
		return false, l.calls[0].Add(window).Sub(now)
	}

	if !l.lastCall.IsZero() {
		if elapsed := now.Sub(l.lastCall); elapsed < l.minSpacing {
			return false, l.minSpacing - elapsed
		}
	}

	return true, 0
}

// Record registers a dispatched call at the current time.
func (l *Limiter) Record() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls = append(l.calls, now)
	l.lastCall = now

	if len(l.calls) > maxRecorded {
		l.calls = l.calls[len(l.calls)-maxRecorded:]
	}
}

// prune drops timestamps older than the trailing window. Caller holds l.mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-window)
	kept := 0
	for _, ts := range l.calls {
		if ts.After(cutoff) {
			break
		}
		kept++
	}
	l.calls = l.calls[kept:]
}
