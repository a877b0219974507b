package travel_test

import (
	"sync"
	"testing"
	"time"

	"wanderbot/internal/travel"
)

// fakeClock is a mutable clock for simulating time in runtime tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTryLockTrigger(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	runtime := travel.NewRuntime(clock)
	key := travel.UserKey("telegram", 100, 7)

	if !runtime.TryLockTrigger(key, time.Minute) {
		t.Fatal("first trigger should acquire the lock")
	}
	if runtime.TryLockTrigger(key, time.Minute) {
		t.Error("second trigger inside the window should be suppressed")
	}

	// A different user is unaffected.
	if !runtime.TryLockTrigger(travel.UserKey("telegram", 100, 8), time.Minute) {
		t.Error("other user's trigger should not be suppressed")
	}

	clock.Advance(61 * time.Second)
	if !runtime.TryLockTrigger(key, time.Minute) {
		t.Error("trigger after the window should acquire the lock again")
	}
}

func TestCooldown(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	runtime := travel.NewRuntime(clock)

	if runtime.InCooldown() {
		t.Fatal("fresh runtime should not be in cooldown")
	}

	runtime.ArmCooldown(10 * time.Minute)
	if !runtime.InCooldown() {
		t.Error("cooldown should be active right after arming")
	}

	clock.Advance(10*time.Minute + time.Second)
	if runtime.InCooldown() {
		t.Error("cooldown should expire after its duration")
	}

	runtime.ArmCooldown(10 * time.Minute)
	runtime.ClearCooldown()
	if runtime.InCooldown() {
		t.Error("ClearCooldown should end the cooldown immediately")
	}

	// Non-positive durations arm nothing.
	runtime.ArmCooldown(0)
	if runtime.InCooldown() {
		t.Error("zero-duration cooldown should be a no-op")
	}
}

func TestMarkDaily(t *testing.T) {
	t.Parallel()

	runtime := travel.NewRuntime(travel.SystemClock())

	if !runtime.MarkDaily("owl:a") {
		t.Fatal("first mark should succeed")
	}
	if runtime.MarkDaily("owl:a") {
		t.Error("repeated mark should report already seen")
	}
	if !runtime.MarkDaily("owl:b") {
		t.Error("different key should mark independently")
	}

	runtime.ResetDaily()
	if !runtime.MarkDaily("owl:a") {
		t.Error("mark should succeed again after daily reset")
	}
}

func TestSunriseCacheSingleSlot(t *testing.T) {
	t.Parallel()

	runtime := travel.NewRuntime(travel.SystemClock())
	sunrise := time.Date(2026, 1, 10, 6, 42, 0, 0, time.UTC)

	if _, ok := runtime.CachedSunrise("2026-01-10"); ok {
		t.Fatal("empty cache should miss")
	}

	runtime.SetSunrise("2026-01-10", sunrise)
	got, ok := runtime.CachedSunrise("2026-01-10")
	if !ok || !got.Equal(sunrise) {
		t.Errorf("CachedSunrise = (%v, %v), expected cached value", got, ok)
	}

	// The cache holds one day only; a new day replaces the slot.
	runtime.SetSunrise("2026-01-11", sunrise.Add(24*time.Hour))
	if _, ok := runtime.CachedSunrise("2026-01-10"); ok {
		t.Error("previous day's value should be gone")
	}

	runtime.ResetDaily()
	if _, ok := runtime.CachedSunrise("2026-01-11"); ok {
		t.Error("daily reset should clear the sunrise cache")
	}
}
