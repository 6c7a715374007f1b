package tick

import (
	"testing"
	"time"
)

func TestClock_TotalTickEqualsServerTickAfterConstruction(t *testing.T) {
	c := NewClock(Config{ServerTick: 1234, TicksPerSecond: 3})
	if got := c.TotalTick(); got != 1234 {
		t.Fatalf("total tick mismatch: got=%d want=%d", got, 1234)
	}
	if c.Active() {
		t.Fatalf("expected new clock to be stopped")
	}
}

func TestClock_CountsAtConfiguredRate(t *testing.T) {
	c := NewClock(Config{ServerTick: 10, TicksPerSecond: 3})
	c.Start()
	time.Sleep(1000 * time.Millisecond)
	c.Stop()

	local := c.LocalTick()
	if local < 2 || local > 4 {
		t.Fatalf("expected local tick in [2,4], got %d", local)
	}
	if got, want := c.TotalTick(), 10+local; got != want {
		t.Fatalf("total tick mismatch: got=%d want=%d", got, want)
	}
}

func TestClock_DoubleStartDoesNotDoubleRate(t *testing.T) {
	c := NewClock(Config{TicksPerSecond: 3})
	c.Start()
	c.Start()
	time.Sleep(1000 * time.Millisecond)
	c.Stop()

	if local := c.LocalTick(); local > 4 {
		t.Fatalf("expected at most 4 ticks after double start, got %d", local)
	}
}

func TestClock_StopFreezesLocalTick(t *testing.T) {
	c := NewClock(Config{TicksPerSecond: 100})
	c.Start()
	time.Sleep(100 * time.Millisecond)
	c.Stop()
	c.Stop()

	frozen := c.LocalTick()
	time.Sleep(60 * time.Millisecond)
	if got := c.LocalTick(); got != frozen {
		t.Fatalf("local tick changed after stop: got=%d want=%d", got, frozen)
	}
	if c.Active() {
		t.Fatalf("expected stopped clock")
	}
}

func TestClock_RestartContinuesCounting(t *testing.T) {
	c := NewClock(Config{TicksPerSecond: 100})
	c.Start()
	time.Sleep(60 * time.Millisecond)
	c.Stop()
	first := c.LocalTick()

	c.Start()
	if !c.Active() {
		t.Fatalf("expected running clock after restart")
	}
	time.Sleep(60 * time.Millisecond)
	c.Stop()
	if got := c.LocalTick(); got <= first {
		t.Fatalf("expected local tick to grow after restart: first=%d now=%d", first, got)
	}
}

func TestNewClock_DefaultsRate(t *testing.T) {
	c := NewClock(Config{})
	if got := c.TicksPerSecond(); got != DefaultTicksPerSecond {
		t.Fatalf("ticks per second mismatch: got=%v want=%v", got, DefaultTicksPerSecond)
	}
}
