package viewsync

import "slices"

// Toggle is a two state button, such as a pen toggle in the header bar or a
// check item in a menu.
type Toggle struct {
	Name   string
	active bool
}

// NewToggle creates an inactive toggle.
func NewToggle(name string) *Toggle { return &Toggle{Name: name} }

// Active reports whether the toggle is pressed.
func (t *Toggle) Active() bool { return t.active }

// SetActive presses or releases the toggle and reports whether it changed.
func (t *Toggle) SetActive(on bool) bool {
	if t.active == on {
		return false
	}
	t.active = on
	return true
}

// Sync implements Sink[bool].
func (t *Toggle) Sync(on bool) { t.SetActive(on) }

// ToggleGroup is a set of toggles of which at most one is active.
type ToggleGroup struct {
	toggles []*Toggle
}

// NewToggleGroup creates one toggle per name, all inactive.
func NewToggleGroup(names ...string) *ToggleGroup {
	g := &ToggleGroup{}
	for _, n := range names {
		g.toggles = append(g.toggles, NewToggle(n))
	}
	return g
}

// Toggle returns the member called name.
func (g *ToggleGroup) Toggle(name string) (*Toggle, bool) {
	for _, t := range g.toggles {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Active returns the name of the pressed member, or "" if none is pressed.
func (g *ToggleGroup) Active() string {
	for _, t := range g.toggles {
		if t.active {
			return t.Name
		}
	}
	return ""
}

// Names lists the members in order.
func (g *ToggleGroup) Names() []string {
	names := make([]string, len(g.toggles))
	for i, t := range g.toggles {
		names[i] = t.Name
	}
	return names
}

// Sync presses the member called name and releases every other member.
// Unknown names release everything.
func (g *ToggleGroup) Sync(name string) {
	for _, t := range g.toggles {
		t.SetActive(t.Name == name)
	}
}

// Stack shows one named page at a time.
type Stack struct {
	pages   []string
	visible string
}

// NewStack creates a stack showing the first page.
func NewStack(pages ...string) *Stack {
	s := &Stack{pages: slices.Clone(pages)}
	if len(pages) > 0 {
		s.visible = pages[0]
	}
	return s
}

// Visible returns the name of the shown page.
func (s *Stack) Visible() string { return s.visible }

// Sync shows page if the stack has it.
func (s *Stack) Sync(page string) {
	if slices.Contains(s.pages, page) {
		s.visible = page
	}
}

// Revealer shows or hides a child.
type Revealer struct {
	revealed bool
}

// NewRevealer creates a revealer in the given state.
func NewRevealer(revealed bool) *Revealer { return &Revealer{revealed: revealed} }

// Revealed reports whether the child is shown.
func (r *Revealer) Revealed() bool { return r.revealed }

// Sync implements Sink[bool].
func (r *Revealer) Sync(on bool) { r.revealed = on }

// Popover is a menu that can be popped up over the canvas or the header.
type Popover struct {
	Name    string
	visible bool
	opened  int
}

// NewPopover creates a hidden popover.
func NewPopover(name string) *Popover { return &Popover{Name: name} }

// Popup shows the popover.
func (p *Popover) Popup() {
	p.visible = true
	p.opened++
}

// Popdown hides the popover.
func (p *Popover) Popdown() { p.visible = false }

// Visible reports whether the popover is shown.
func (p *Popover) Visible() bool { return p.visible }

// Opened returns how many times the popover was popped up.
func (p *Popover) Opened() int { return p.opened }
