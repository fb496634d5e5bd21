package safetyplan

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSectionsOrder(t *testing.T) {
	sections := DefaultPlan().Sections()
	if len(sections) != 5 {
		t.Fatalf("len(Sections()) = %d, want 5", len(sections))
	}
	if got := sections[3].Items[1]; got != "Crisis Line  988" {
		t.Errorf("professional contact = %q", got)
	}
	if got := sections[4].Title; got != "5. Reasons for Living" {
		t.Errorf("last section = %q", got)
	}
}

func TestMerge(t *testing.T) {
	p := Plan{ReasonsToLive: []string{"My garden"}}.Merge(DefaultPlan())
	if len(p.ReasonsToLive) != 1 || p.ReasonsToLive[0] != "My garden" {
		t.Errorf("ReasonsToLive = %v, want the configured value kept", p.ReasonsToLive)
	}
	if len(p.WarningSigns) != 3 {
		t.Errorf("WarningSigns = %v, want defaults", p.WarningSigns)
	}
}

func TestModelToggle(t *testing.T) {
	m := New(DefaultPlan())
	if strings.Contains(m.View(), "Feeling restless") {
		t.Fatal("sections should start collapsed")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Open(0) || !strings.Contains(m.View(), "Feeling restless") {
		t.Error("enter did not expand the first section")
	}

	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", m.Cursor())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "My cat Luna") {
		t.Error("reasons for living not shown")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.Cursor() != 3 {
		t.Errorf("Cursor() after k = %d, want 3", m.Cursor())
	}
}
