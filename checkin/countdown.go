package checkin

// Countdown counts whole steps down to zero. It carries no timer; the owner
// advances it with Tick.
type Countdown struct {
	remaining int
}

// NewCountdown returns a countdown starting at n.
func NewCountdown(n int) Countdown {
	return Countdown{remaining: max(n, 0)}
}

// Tick advances the countdown by one step. It returns true exactly once, on
// the step that reaches zero.
func (c *Countdown) Tick() bool {
	if c.remaining == 0 {
		return false
	}
	c.remaining--
	return c.remaining == 0
}

// Remaining returns the steps left.
func (c Countdown) Remaining() int { return c.remaining }

// Done reports whether the countdown has reached zero.
func (c Countdown) Done() bool { return c.remaining == 0 }
