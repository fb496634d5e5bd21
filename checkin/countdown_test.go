package checkin

import "testing"

func TestCountdown(t *testing.T) {
	c := NewCountdown(5)
	var fired []int
	for step := 1; step <= 8; step++ {
		if c.Tick() {
			fired = append(fired, step)
		}
	}
	if len(fired) != 1 || fired[0] != 5 {
		t.Errorf("Tick fired at steps %v, want [5]", fired)
	}
	if !c.Done() || c.Remaining() != 0 {
		t.Errorf("after ticks: Done() = %v, Remaining() = %d", c.Done(), c.Remaining())
	}
}

func TestCountdownRemaining(t *testing.T) {
	c := NewCountdown(3)
	for want := 3; want > 0; want-- {
		if got := c.Remaining(); got != want {
			t.Fatalf("Remaining() = %d, want %d", got, want)
		}
		if c.Done() {
			t.Fatalf("Done() = true with %d remaining", want)
		}
		c.Tick()
	}
}

func TestCountdownNonPositive(t *testing.T) {
	for _, n := range []int{0, -2} {
		c := NewCountdown(n)
		if !c.Done() {
			t.Errorf("NewCountdown(%d).Done() = false, want true", n)
		}
		if c.Tick() {
			t.Errorf("NewCountdown(%d).Tick() = true, want false", n)
		}
	}
}
