package celebrate

import (
	"testing"
	"time"
)

// fakeClock steps time manually so expiry is deterministic.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeStore() (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	return NewStore(WithClock(clock.now)), clock
}

func TestStore_StartsIdle(t *testing.T) {
	s, _ := newFakeStore()
	if s.State() != Idle {
		t.Errorf("new store state = %v, want idle", s.State())
	}
	if s.Remaining() != 0 {
		t.Errorf("idle store remaining = %v, want 0", s.Remaining())
	}
}

func TestStore_TriggerThenExpiry(t *testing.T) {
	s, clock := newFakeStore()

	s.Trigger()
	if s.State() != Celebrating {
		t.Fatalf("state after trigger = %v", s.State())
	}
	if s.Remaining() != DefaultTTL {
		t.Errorf("remaining = %v, want %v", s.Remaining(), DefaultTTL)
	}

	clock.advance(DefaultTTL - time.Millisecond)
	if s.State() != Celebrating {
		t.Error("should still be celebrating just before the deadline")
	}

	clock.advance(time.Millisecond)
	if s.State() != Idle {
		t.Error("should collapse to idle exactly at the deadline")
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining after expiry = %v", s.Remaining())
	}
}

func TestStore_RetriggerExtendsDeadline(t *testing.T) {
	s, clock := newFakeStore()

	s.Trigger()
	clock.advance(2 * time.Second)
	s.Trigger() // second check-in while still celebrating

	// 4s after the first trigger but only 2s after the second.
	clock.advance(2 * time.Second)
	if s.State() != Celebrating {
		t.Error("retrigger should restart the full TTL")
	}

	clock.advance(time.Second)
	if s.State() != Idle {
		t.Error("extended deadline should still expire")
	}
}

func TestStore_Reset(t *testing.T) {
	s, _ := newFakeStore()
	s.Trigger()
	s.Reset()
	if s.State() != Idle {
		t.Errorf("state after reset = %v, want idle", s.State())
	}
}

func TestStore_CustomTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	s := NewStore(WithClock(clock.now), WithTTL(time.Second))

	s.Trigger()
	clock.advance(999 * time.Millisecond)
	if s.State() != Celebrating {
		t.Error("should celebrate for the custom TTL")
	}
	clock.advance(time.Millisecond)
	if s.State() != Idle {
		t.Error("custom TTL ignored")
	}
}
