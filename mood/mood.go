// Package mood keeps a rolling week of daily mood ratings.
package mood

import (
	"errors"
	"fmt"
	"strings"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// WeekLen is the number of entries the log keeps.
const WeekLen = 7

// ErrOutOfRange is returned for ratings outside MinRating..MaxRating.
var ErrOutOfRange = errors.New("mood rating out of range")

// Entry is one day's rating.
type Entry struct {
	Day   string `json:"day" toml:"day" yaml:"day"`
	Value int    `json:"value" toml:"value" yaml:"value"`
}

// DefaultWeek is the sample week shown before any rating is recorded.
func DefaultWeek() []Entry {
	return []Entry{
		{"Mon", 3}, {"Tue", 2}, {"Wed", 4}, {"Thu", 3},
		{"Fri", 4}, {"Sat", 5}, {"Sun", 4},
	}
}

// Log is a window of at most WeekLen entries, oldest first.
type Log struct {
	entries []Entry
	today   int
}

// NewLog returns a log holding the newest WeekLen entries of seed.
func NewLog(seed []Entry) *Log {
	if len(seed) > WeekLen {
		seed = seed[len(seed)-WeekLen:]
	}
	return &Log{entries: append([]Entry(nil), seed...)}
}

// Record rates today. The first rating of the session pushes the oldest
// entry out of the window; rating again replaces today's entry.
func (l *Log) Record(day string, value int) error {
	if value < MinRating || value > MaxRating {
		return fmt.Errorf("%w: %d", ErrOutOfRange, value)
	}
	e := Entry{Day: day, Value: value}
	if l.today != 0 && len(l.entries) > 0 {
		l.entries[len(l.entries)-1] = e
		l.today = value
		return nil
	}
	l.entries = append(l.entries, e)
	if len(l.entries) > WeekLen {
		l.entries = l.entries[len(l.entries)-WeekLen:]
	}
	l.today = value
	return nil
}

// Today returns today's rating, or 0 when none was recorded.
func (l *Log) Today() int { return l.today }

// Entries returns a copy of the window.
func (l *Log) Entries() []Entry { return append([]Entry(nil), l.entries...) }

// Average returns the mean rating of the window.
func (l *Log) Average() float64 {
	if len(l.entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range l.entries {
		sum += e.Value
	}
	return float64(sum) / float64(len(l.entries))
}

var sparks = []rune("▁▂▄▆█")

// Sparkline draws one cell per entry.
func Sparkline(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		v := min(max(e.Value, MinRating), MaxRating)
		b.WriteRune(sparks[v-MinRating])
	}
	return b.String()
}

// Face returns a glyph for a rating.
func Face(value int) string {
	switch {
	case value <= 2:
		return "☹"
	case value == 3:
		return "😐"
	default:
		return "☺"
	}
}
