// Package travel implements destination resolution and trip orchestration:
// the decision of where a user "wakes up", and the recording and rendering
// that follows.
package travel

import (
	"fmt"
	"sync"
	"time"
)

// Clock abstracts wall-clock time so cooldowns and locks are testable with
// simulated time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// UserKey identifies one user in one chat for per-process rate limiting.
func UserKey(platform string, chatID, userID int64) string {
	return fmt.Sprintf("%s:%d:%d", platform, chatID, userID)
}

// Runtime holds the process-lifetime mutable state shared by the resolver
// and orchestrator: the generation-failure cooldown, per-user trigger
// locks, the daily dedupe set, and the single-slot sunrise cache. None of
// it is durable; the daily maintenance task clears it and a restart resets
// it implicitly.
type Runtime struct {
	clock Clock

	mu            sync.Mutex
	cooldownUntil time.Time
	triggerLocks  map[string]time.Time
	dailySeen     map[string]struct{}
	sunriseDay    string
	sunriseValue  time.Time
}

// NewRuntime creates runtime state with the given clock. Pass SystemClock()
// outside tests.
func NewRuntime(clock Clock) *Runtime {
	if clock == nil {
		clock = systemClock{}
	}
	return &Runtime{
		clock:        clock,
		triggerLocks: make(map[string]time.Time),
		dailySeen:    make(map[string]struct{}),
	}
}

// Now returns the runtime's current time.
func (r *Runtime) Now() time.Time { return r.clock.Now() }

// TryLockTrigger records a travel trigger for the key unless one already
// happened within the window. Returns false when the trigger should be
// suppressed as a duplicate.
func (r *Runtime) TryLockTrigger(key string, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if last, ok := r.triggerLocks[key]; ok && now.Sub(last) < window {
		return false
	}
	r.triggerLocks[key] = now
	return true
}

// InCooldown reports whether dynamic generation is currently suppressed
// after a recent failure.
func (r *Runtime) InCooldown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock.Now().Before(r.cooldownUntil)
}

// ArmCooldown suppresses dynamic generation for the given duration.
// A non-positive duration is a no-op.
func (r *Runtime) ArmCooldown(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cooldownUntil = r.clock.Now().Add(d)
}

// ClearCooldown re-enables dynamic generation after a success.
func (r *Runtime) ClearCooldown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cooldownUntil = time.Time{}
}

// MarkDaily records a once-per-day event for the key. Returns false when
// the key was already marked since the last daily reset.
func (r *Runtime) MarkDaily(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.dailySeen[key]; seen {
		return false
	}
	r.dailySeen[key] = struct{}{}
	return true
}

// CachedSunrise returns the cached sunrise value for the given day key.
func (r *Runtime) CachedSunrise(day string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sunriseDay != day || r.sunriseValue.IsZero() {
		return time.Time{}, false
	}
	return r.sunriseValue, true
}

// SetSunrise stores the sunrise value for the given day key, replacing any
// previous slot.
func (r *Runtime) SetSunrise(day string, value time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sunriseDay = day
	r.sunriseValue = value
}

// ResetDaily clears the trigger locks, daily dedupe set, and sunrise cache.
// Called by the daily maintenance task; the cooldown is left alone since it
// tracks a failure window, not a calendar day.
func (r *Runtime) ResetDaily() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggerLocks = make(map[string]time.Time)
	r.dailySeen = make(map[string]struct{})
	r.sunriseDay = ""
	r.sunriseValue = time.Time{}
}
