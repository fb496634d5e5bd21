package grounding

// Step is one stage of the 5-4-3-2-1 exercise.
type Step struct {
	Count       int
	Instruction string
	Placeholder string
}

// Steps lists the senses from sight to taste.
var Steps = []Step{
	{5, "Acknowledge 5 things you see around you.", "I see..."},
	{4, "Acknowledge 4 things you can touch.", "I can touch..."},
	{3, "Acknowledge 3 things you hear.", "I hear..."},
	{2, "Acknowledge 2 things you can smell.", "I smell..."},
	{1, "Acknowledge 1 thing you can taste.", "I can taste..."},
}

// Distractions are quick activities offered alongside the exercises.
var Distractions = []string{
	"Count backwards from 100 by 7",
	"Find 5 blue objects",
	"Name all your favorite movies",
	"Drink a glass of cold water",
}

// Senses walks through Steps.
type Senses struct {
	index int
}

// Step returns the current step.
func (s Senses) Step() Step { return Steps[s.index] }

// Index returns the position of the current step.
func (s Senses) Index() int { return s.index }

// Last reports whether the current step is the final one.
func (s Senses) Last() bool { return s.index == len(Steps)-1 }

// Progress returns the completed fraction, counting the current step.
func (s Senses) Progress() float64 {
	return float64(s.index+1) / float64(len(Steps))
}

// Next moves to the following step. It reports false on the last step.
func (s *Senses) Next() bool {
	if s.Last() {
		return false
	}
	s.index++
	return true
}

// Reset returns to the first step.
func (s *Senses) Reset() { s.index = 0 }
