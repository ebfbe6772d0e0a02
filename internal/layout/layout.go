// Package layout mirrors the main window between right and left handed
// arrangements. An Arrangement is a plain value covering every slot that
// moves, so switching handedness is a single assignment.
package layout

import (
	"fmt"
	"log/slog"

	"github.com/example/penmode/internal/logging"
	"github.com/example/penmode/internal/viewsync"
)

// Cell is a grid attachment: column, row, width and height.
type Cell struct {
	Column, Row, Width, Height int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", c.Column, c.Row, c.Width, c.Height)
}

// Pack is the edge a box is packed against.
type Pack int

const (
	PackStart Pack = iota
	PackEnd
)

func (p Pack) String() string {
	if p == PackStart {
		return "start"
	}
	return "end"
}

// Arrow is the direction a menu button opens its popover in.
type Arrow int

const (
	ArrowLeft Arrow = iota
	ArrowRight
)

func (a Arrow) String() string {
	if a == ArrowLeft {
		return "left"
	}
	return "right"
}

// Position is the side of its button a colorpicker popover appears on.
type Position int

const (
	PositionLeft Position = iota
	PositionRight
)

func (p Position) String() string {
	if p == PositionLeft {
		return "left"
	}
	return "right"
}

// Grid holds the main grid attachments.
type Grid struct {
	Sidebar   Cell
	Separator Cell
	Devel     Cell
	Canvas    Cell
}

// Header holds the header bar packing.
type Header struct {
	Pens         Pack
	QuickActions Pack
}

// Arrows holds the popover directions of the sidebar menu buttons.
type Arrows struct {
	BrushTemplateHelp    Arrow
	BrushTemplateChooser Arrow
	ShaperRoughConfig    Arrow
}

// Pickers holds the colorpicker popover positions.
type Pickers struct {
	Marker       Position
	Brush        Position
	ShaperStroke Position
	ShaperFill   Position
}

// Arrangement is the position of every slot that depends on handedness.
type Arrangement struct {
	Righthanded bool
	Grid        Grid
	Header      Header
	Arrows      Arrows
	Pickers     Pickers
	Flap        Pack
}

// Righthanded returns the default arrangement: the sidebar to the left of
// the canvas and the pen toggles at the start of the header bar.
func Righthanded() Arrangement {
	return Arrangement{
		Righthanded: true,
		Grid: Grid{
			Sidebar:   Cell{Column: 0, Row: 1, Width: 1, Height: 2},
			Separator: Cell{Column: 1, Row: 1, Width: 1, Height: 2},
			Devel:     Cell{Column: 2, Row: 1, Width: 1, Height: 1},
			Canvas:    Cell{Column: 2, Row: 2, Width: 1, Height: 1},
		},
		Header: Header{Pens: PackStart, QuickActions: PackEnd},
		Arrows: Arrows{
			BrushTemplateHelp:    ArrowRight,
			BrushTemplateChooser: ArrowRight,
			ShaperRoughConfig:    ArrowRight,
		},
		Pickers: Pickers{
			Marker:       PositionLeft,
			Brush:        PositionLeft,
			ShaperStroke: PositionLeft,
			ShaperFill:   PositionLeft,
		},
		Flap: PackStart,
	}
}

// Lefthanded returns the mirror image of Righthanded.
func Lefthanded() Arrangement { return Righthanded().Mirrored() }

// For returns the arrangement for the given handedness.
func For(righthanded bool) Arrangement {
	if righthanded {
		return Righthanded()
	}
	return Lefthanded()
}

// Mirrored returns a with every slot moved to the opposite side of the
// window. Mirrored is an involution.
func (a Arrangement) Mirrored() Arrangement {
	const columns = 3
	flipCell := func(c Cell) Cell {
		c.Column = columns - c.Column - c.Width
		return c
	}
	flipPack := func(p Pack) Pack { return 1 - p }
	flipArrow := func(d Arrow) Arrow { return 1 - d }
	flipPos := func(p Position) Position { return 1 - p }

	return Arrangement{
		Righthanded: !a.Righthanded,
		Grid: Grid{
			Sidebar:   flipCell(a.Grid.Sidebar),
			Separator: flipCell(a.Grid.Separator),
			Devel:     flipCell(a.Grid.Devel),
			Canvas:    flipCell(a.Grid.Canvas),
		},
		Header: Header{
			Pens:         flipPack(a.Header.Pens),
			QuickActions: flipPack(a.Header.QuickActions),
		},
		Arrows: Arrows{
			BrushTemplateHelp:    flipArrow(a.Arrows.BrushTemplateHelp),
			BrushTemplateChooser: flipArrow(a.Arrows.BrushTemplateChooser),
			ShaperRoughConfig:    flipArrow(a.Arrows.ShaperRoughConfig),
		},
		Pickers: Pickers{
			Marker:       flipPos(a.Pickers.Marker),
			Brush:        flipPos(a.Pickers.Brush),
			ShaperStroke: flipPos(a.Pickers.ShaperStroke),
			ShaperFill:   flipPos(a.Pickers.ShaperFill),
		},
		Flap: flipPack(a.Flap),
	}
}

// Indicator names of the handedness toggle pair in the canvas menu.
const (
	IndicatorRighthanded = "righthanded"
	IndicatorLefthanded  = "lefthanded"
)

// Mirror owns the current arrangement of the window.
type Mirror struct {
	current    Arrangement
	indicators *viewsync.ToggleGroup
	listeners  []func(Arrangement)
	log        *slog.Logger
}

// Option modifies a Mirror during creation.
type Option func(*Mirror)

// WithLogger sets the mirror logger.
func WithLogger(l *slog.Logger) Option { return func(m *Mirror) { m.log = l } }

// NewMirror creates a mirror in the given handedness.
func NewMirror(righthanded bool, opts ...Option) *Mirror {
	m := &Mirror{
		current:    For(righthanded),
		indicators: viewsync.NewToggleGroup(IndicatorRighthanded, IndicatorLefthanded),
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		m.log = logging.Logger()
	}
	m.indicators.Sync(indicatorFor(righthanded))
	return m
}

// Current returns the arrangement in effect.
func (m *Mirror) Current() Arrangement { return m.current }

// Indicators returns the righthanded/lefthanded toggle pair.
func (m *Mirror) Indicators() *viewsync.ToggleGroup { return m.indicators }

// Listen subscribes fn to arrangement changes.
func (m *Mirror) Listen(fn func(Arrangement)) { m.listeners = append(m.listeners, fn) }

// Apply switches every slot to the arrangement for righthanded in one step
// and reports whether anything moved. Listeners run once, after the switch.
func (m *Mirror) Apply(righthanded bool) bool {
	next := For(righthanded)
	m.indicators.Sync(indicatorFor(righthanded))
	if next == m.current {
		return false
	}
	m.current = next
	m.log.Debug("layout mirrored", "righthanded", righthanded)
	for _, fn := range m.listeners {
		fn(next)
	}
	return true
}

// Sync implements viewsync.Sink[bool].
func (m *Mirror) Sync(righthanded bool) { m.Apply(righthanded) }

func indicatorFor(righthanded bool) string {
	if righthanded {
		return IndicatorRighthanded
	}
	return IndicatorLefthanded
}
