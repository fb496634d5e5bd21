package grounding

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBreathingCycle(t *testing.T) {
	b := NewBreathing()
	b.Tick()
	if b.Remaining() != 4 || b.Phase() != Inhale {
		t.Fatalf("paused Tick changed the timer: %v %d", b.Phase(), b.Remaining())
	}

	b.Toggle()
	type point struct {
		phase     Phase
		remaining int
	}
	var got []point
	for i := 0; i < 4+7+8+1; i++ {
		got = append(got, point{b.Phase(), b.Remaining()})
		b.Tick()
	}
	want := map[int]point{
		0:  {Inhale, 4},
		3:  {Inhale, 1},
		4:  {Hold, 7},
		10: {Hold, 1},
		11: {Exhale, 8},
		18: {Exhale, 1},
		19: {Inhale, 4},
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("after %d ticks = %v, want %v", i, got[i], w)
		}
	}
}

func TestBreathingToggleRestarts(t *testing.T) {
	b := NewBreathing()
	b.Toggle()
	for i := 0; i < 6; i++ {
		b.Tick()
	}
	if b.Phase() != Hold {
		t.Fatalf("Phase() = %v, want Hold", b.Phase())
	}
	b.Toggle()
	if b.Active() {
		t.Fatal("Toggle did not pause")
	}
	b.Toggle()
	if b.Phase() != Inhale || b.Remaining() != 4 {
		t.Errorf("restart = %v %d, want Inhale 4", b.Phase(), b.Remaining())
	}
}

func TestSenses(t *testing.T) {
	var s Senses
	for i := 1; i < len(Steps); i++ {
		if !s.Next() {
			t.Fatalf("Next() = false at step %d", i)
		}
	}
	if !s.Last() || s.Step().Count != 1 {
		t.Errorf("final step = %+v, want the taste step", s.Step())
	}
	if s.Next() {
		t.Error("Next() on last step = true")
	}
	if s.Progress() != 1 {
		t.Errorf("Progress() = %v, want 1", s.Progress())
	}
	s.Reset()
	if s.Index() != 0 || s.Step().Count != 5 {
		t.Errorf("after Reset: %+v", s.Step())
	}
}

func TestModelBreathingTicks(t *testing.T) {
	m := New()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if cmd == nil || !m.Breathing().Active() {
		t.Fatal("space did not start breathing")
	}
	m.Update(breathTickMsg{owner: m.id, gen: m.gen})
	if got := m.Breathing().Remaining(); got != 3 {
		t.Errorf("Remaining() = %d, want 3", got)
	}

	stale := breathTickMsg{owner: m.id, gen: m.gen}
	m.Teardown()
	if _, cmd := m.Update(stale); cmd != nil {
		t.Error("tick after teardown scheduled another tick")
	}
	if got := m.Breathing().Remaining(); got != 3 {
		t.Errorf("stale tick changed Remaining() to %d", got)
	}
}

func TestModelView(t *testing.T) {
	m := New()
	for i := 0; i < len(Steps); i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	view := m.View()
	for _, want := range []string{"4-7-8 Breathing", "Acknowledge 1 thing you can taste.", "You did great.", "Drink a glass of cold water"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.Senses().Index() != 0 {
		t.Error("r did not reset the walk-through")
	}
}
