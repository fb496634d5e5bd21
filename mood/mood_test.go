package mood

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRecordKeepsWeek(t *testing.T) {
	l := NewLog(DefaultWeek())
	if err := l.Record("Tue", 2); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got := l.Entries()
	if len(got) != WeekLen {
		t.Fatalf("len(Entries()) = %d, want %d", len(got), WeekLen)
	}
	if got[0].Day != "Tue" || got[WeekLen-1] != (Entry{"Tue", 2}) {
		t.Errorf("Entries() = %v, want oldest dropped and today appended", got)
	}
	if l.Today() != 2 {
		t.Errorf("Today() = %d, want 2", l.Today())
	}
}

func TestRecordAgainReplacesToday(t *testing.T) {
	l := NewLog(DefaultWeek())
	l.Record("Tue", 2)
	l.Record("Tue", 5)
	got := l.Entries()
	if len(got) != WeekLen || got[0].Day != "Tue" {
		t.Fatalf("Entries() = %v", got)
	}
	if got[WeekLen-1].Value != 5 || l.Today() != 5 {
		t.Errorf("today = %v, want 5", got[WeekLen-1])
	}
}

func TestRecordShortLog(t *testing.T) {
	l := NewLog(nil)
	l.Record("Mon", 4)
	if got := l.Entries(); len(got) != 1 || got[0].Value != 4 {
		t.Errorf("Entries() = %v", got)
	}
}

func TestRecordOutOfRange(t *testing.T) {
	l := NewLog(DefaultWeek())
	for _, v := range []int{0, 6, -1} {
		if err := l.Record("Mon", v); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Record(%d) = %v, want ErrOutOfRange", v, err)
		}
	}
	if l.Today() != 0 || len(l.Entries()) != WeekLen {
		t.Error("rejected ratings changed the log")
	}
}

func TestNewLogTrimsSeed(t *testing.T) {
	seed := append(DefaultWeek(), Entry{"Mon", 1}, Entry{"Tue", 1})
	got := NewLog(seed).Entries()
	if len(got) != WeekLen || got[0].Day != "Wed" {
		t.Errorf("Entries() = %v", got)
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]Entry{{"a", 1}, {"b", 3}, {"c", 5}, {"d", 9}})
	if got != "▁▄██" {
		t.Errorf("Sparkline() = %q", got)
	}
}

func TestAverage(t *testing.T) {
	if got := NewLog(nil).Average(); got != 0 {
		t.Errorf("empty Average() = %v", got)
	}
	if got := NewLog([]Entry{{"a", 2}, {"b", 4}}).Average(); got != 3 {
		t.Errorf("Average() = %v, want 3", got)
	}
}

func TestModelRates(t *testing.T) {
	l := NewLog(DefaultWeek())
	friday := time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC)
	m := New(l, func() time.Time { return friday })
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	if l.Today() != 4 {
		t.Fatalf("Today() = %d, want 4", l.Today())
	}
	if last := l.Entries()[WeekLen-1]; last.Day != "Fri" {
		t.Errorf("last entry = %v, want Fri", last)
	}
	if view := m.View(); !strings.Contains(view, "Your Week") || !strings.Contains(view, "Fri") {
		t.Errorf("View() = %q", view)
	}
}
