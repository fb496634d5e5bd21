// Package grounding provides the breathing and sensory grounding exercises.
package grounding

// Phase is one part of a 4-7-8 breath.
type Phase int

const (
	Inhale Phase = iota
	Hold
	Exhale
)

func (p Phase) String() string {
	switch p {
	case Hold:
		return "Hold"
	case Exhale:
		return "Exhale"
	default:
		return "Inhale"
	}
}

// Seconds returns how long the phase lasts.
func (p Phase) Seconds() int {
	switch p {
	case Hold:
		return 7
	case Exhale:
		return 8
	default:
		return 4
	}
}

func (p Phase) next() Phase {
	switch p {
	case Inhale:
		return Hold
	case Hold:
		return Exhale
	default:
		return Inhale
	}
}

// Breathing is the 4-7-8 breathing timer. It is advanced one second at a
// time by Tick and loops until paused.
type Breathing struct {
	active    bool
	phase     Phase
	remaining int
}

// NewBreathing returns a paused timer at the start of an inhale.
func NewBreathing() Breathing {
	return Breathing{phase: Inhale, remaining: Inhale.Seconds()}
}

// Toggle starts or pauses the timer. Starting always begins a fresh inhale.
func (b *Breathing) Toggle() {
	if b.active {
		b.active = false
		return
	}
	b.active = true
	b.phase = Inhale
	b.remaining = Inhale.Seconds()
}

// Tick advances an active timer by one second.
func (b *Breathing) Tick() {
	if !b.active {
		return
	}
	if b.remaining > 1 {
		b.remaining--
		return
	}
	b.phase = b.phase.next()
	b.remaining = b.phase.Seconds()
}

func (b Breathing) Active() bool   { return b.active }
func (b Breathing) Phase() Phase   { return b.phase }
func (b Breathing) Remaining() int { return b.remaining }
