// Package router holds the single active view of the application.
//
// The Router is the only writer of the active view. Navigating to another view
// tears down the mounted component and mounts a fresh one, so view-scoped
// state (a chat session, an open camera) never outlives its view.
package router

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// View enumerates the top-level screens.
type View int

const (
	Home View = iota
	Chat
	Grounding
	SafetyPlan
	Mood
	Analysis
)

var viewNames = [...]string{
	Home:       "Home",
	Chat:       "Chat",
	Grounding:  "Grounding",
	SafetyPlan: "Safety Plan",
	Mood:       "Mood",
	Analysis:   "Check-in",
}

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// Valid reports whether v is a member of the enumeration.
func (v View) Valid() bool {
	return v >= Home && v <= Analysis
}

// Views returns every view in display order.
func Views() []View {
	return []View{Home, Chat, Grounding, SafetyPlan, Mood, Analysis}
}

// Component is a view-scoped Bubble Tea component.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string
	// Teardown releases everything the component acquired. It is called
	// exactly once, when the component is unmounted.
	Teardown()
}

// Factory builds a fresh component for a view.
type Factory func() Component

// NavigateMsg asks the application to switch views.
type NavigateMsg struct {
	View View
}

// NavigateTo returns a command that emits a NavigateMsg.
func NavigateTo(v View) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{View: v} }
}

// Router mounts exactly one component at a time.
type Router struct {
	active    View
	mounted   Component
	factories map[View]Factory
	size      *tea.WindowSizeMsg
}

// New returns a router showing Home. Nothing is mounted until Start.
func New(factories map[View]Factory) *Router {
	return &Router{active: Home, factories: factories}
}

// Start mounts the active view and returns its Init command.
func (r *Router) Start() tea.Cmd {
	if r.mounted != nil {
		return nil
	}
	return r.mount()
}

// Active returns the active view.
func (r *Router) Active() View { return r.active }

// Mounted returns the mounted component.
func (r *Router) Mounted() Component { return r.mounted }

// Navigate makes v the active view. It is a no-op for the active view and for
// values outside the enumeration.
func (r *Router) Navigate(v View) tea.Cmd {
	if !v.Valid() {
		log.Printf("[ROUTER] ignoring navigation to unknown %v", v)
		return nil
	}
	if v == r.active && r.mounted != nil {
		return nil
	}
	log.Printf("[ROUTER] %v -> %v", r.active, v)
	r.unmount()
	r.active = v
	return r.mount()
}

// Update forwards msg to the mounted component.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		r.size = &size
	}
	if r.mounted == nil {
		return nil
	}
	var cmd tea.Cmd
	r.mounted, cmd = r.mounted.Update(msg)
	return cmd
}

// Render returns the mounted component's view.
func (r *Router) Render() string {
	if r.mounted == nil {
		return ""
	}
	return r.mounted.View()
}

// Teardown unmounts the active component.
func (r *Router) Teardown() {
	r.unmount()
}

func (r *Router) mount() tea.Cmd {
	factory, ok := r.factories[r.active]
	if !ok {
		r.mounted = placeholder{view: r.active}
		return nil
	}
	r.mounted = factory()
	var cmds []tea.Cmd
	if r.size != nil {
		var cmd tea.Cmd
		r.mounted, cmd = r.mounted.Update(*r.size)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, r.mounted.Init())
	return tea.Batch(cmds...)
}

func (r *Router) unmount() {
	if r.mounted == nil {
		return
	}
	r.mounted.Teardown()
	r.mounted = nil
}

// placeholder stands in for a view without a factory.
type placeholder struct{ view View }

func (p placeholder) Init() tea.Cmd                       { return nil }
func (p placeholder) Update(tea.Msg) (Component, tea.Cmd) { return p, nil }
func (p placeholder) View() string                        { return p.view.String() }
func (p placeholder) Teardown()                           {}
