// Package safetyplan holds the personal crisis safety plan.
package safetyplan

import "fmt"

// Contact is someone to reach in a crisis.
type Contact struct {
	Name  string `toml:"name" yaml:"name"`
	Phone string `toml:"phone" yaml:"phone"`
}

func (c Contact) String() string { return fmt.Sprintf("%s  %s", c.Name, c.Phone) }

// Plan is a prioritized list of coping strategies and supports.
type Plan struct {
	WarningSigns     []string  `toml:"warning_signs" yaml:"warning_signs"`
	CopingStrategies []string  `toml:"coping_strategies" yaml:"coping_strategies"`
	Supporters       []Contact `toml:"supporters" yaml:"supporters"`
	Professionals    []Contact `toml:"professionals" yaml:"professionals"`
	ReasonsToLive    []string  `toml:"reasons_to_live" yaml:"reasons_to_live"`
}

// DefaultPlan returns the example plan shown until the user configures one.
func DefaultPlan() Plan {
	return Plan{
		WarningSigns:     []string{"Feeling restless", "Isolating from friends", "Changes in sleep"},
		CopingStrategies: []string{"Deep breathing (4-7-8)", "Listening to soothing music", "Walking the dog"},
		Supporters: []Contact{
			{Name: "Sarah (Sister)", Phone: "555-0123"},
			{Name: "Tom (Best Friend)", Phone: "555-0124"},
		},
		Professionals: []Contact{
			{Name: "Dr. Smith", Phone: "555-0199"},
			{Name: "Crisis Line", Phone: "988"},
		},
		ReasonsToLive: []string{"My cat Luna", "Seeing the ocean again", "Finish reading my book series"},
	}
}

// Merge returns p with every empty section filled from fallback.
func (p Plan) Merge(fallback Plan) Plan {
	if len(p.WarningSigns) == 0 {
		p.WarningSigns = fallback.WarningSigns
	}
	if len(p.CopingStrategies) == 0 {
		p.CopingStrategies = fallback.CopingStrategies
	}
	if len(p.Supporters) == 0 {
		p.Supporters = fallback.Supporters
	}
	if len(p.Professionals) == 0 {
		p.Professionals = fallback.Professionals
	}
	if len(p.ReasonsToLive) == 0 {
		p.ReasonsToLive = fallback.ReasonsToLive
	}
	return p
}

// Section is one titled part of a plan.
type Section struct {
	Title string
	Icon  string
	Items []string
}

// Sections returns the plan's five sections in priority order.
func (p Plan) Sections() []Section {
	return []Section{
		{"1. Warning Signs", "⚠️", p.WarningSigns},
		{"2. Internal Coping Strategies", "🧘", p.CopingStrategies},
		{"3. People to Ask for Help", "👥", contacts(p.Supporters)},
		{"4. Professional Support", "🏥", contacts(p.Professionals)},
		{"5. Reasons for Living", "🌟", p.ReasonsToLive},
	}
}

func contacts(cs []Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
