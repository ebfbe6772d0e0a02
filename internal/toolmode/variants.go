package toolmode

// Axis names double as the command names that drive them.
const (
	AxisPen       = "current-pen"
	AxisShape     = "current-shape"
	AxisDrawStyle = "shaper-drawstyle"
	AxisBackend   = "renderer-backend"
)

// PenStyle is the active editing tool.
type PenStyle int

const (
	PenMarker PenStyle = iota
	PenBrush
	PenShaper
	PenEraser
	PenSelector
)

var penNames = []string{"marker", "brush", "shaper", "eraser", "selector"}

func (p PenStyle) String() string { return nameOf(penNames, int(p)) }

// PenStyles lists every pen in toolbar order.
func PenStyles() []PenStyle {
	return []PenStyle{PenMarker, PenBrush, PenShaper, PenEraser, PenSelector}
}

// ParsePenStyle converts a tag such as "eraser" into a PenStyle.
func ParsePenStyle(s string) (PenStyle, error) {
	i, err := parseName(AxisPen, penNames, s)
	return PenStyle(i), err
}

// Shape is the figure drawn by the shaper pen.
type Shape int

const (
	ShapeLine Shape = iota
	ShapeRectangle
	ShapeEllipse
)

var shapeNames = []string{"line", "rectangle", "ellipse"}

func (s Shape) String() string { return nameOf(shapeNames, int(s)) }

// Filled reports whether the shape has an interior that can take a fill.
func (s Shape) Filled() bool { return s == ShapeRectangle || s == ShapeEllipse }

// Shapes lists every shape.
func Shapes() []Shape { return []Shape{ShapeLine, ShapeRectangle, ShapeEllipse} }

// ParseShape converts a tag such as "ellipse" into a Shape.
func ParseShape(s string) (Shape, error) {
	i, err := parseName(AxisShape, shapeNames, s)
	return Shape(i), err
}

// DrawStyle is how the shaper strokes its outline.
type DrawStyle int

const (
	DrawSmooth DrawStyle = iota
	DrawRough
)

var drawStyleNames = []string{"smooth", "rough"}

func (d DrawStyle) String() string { return nameOf(drawStyleNames, int(d)) }

// DrawStyles lists every draw style.
func DrawStyles() []DrawStyle { return []DrawStyle{DrawSmooth, DrawRough} }

// ParseDrawStyle converts a tag such as "rough" into a DrawStyle.
func ParseDrawStyle(s string) (DrawStyle, error) {
	i, err := parseName(AxisDrawStyle, drawStyleNames, s)
	return DrawStyle(i), err
}

// Backend selects the renderer implementation.
type Backend int

const (
	BackendLibrsvg Backend = iota
	BackendResvg
)

var backendNames = []string{"librsvg", "resvg"}

func (b Backend) String() string { return nameOf(backendNames, int(b)) }

// Backends lists every renderer backend.
func Backends() []Backend { return []Backend{BackendLibrsvg, BackendResvg} }

// ParseBackend converts a tag such as "resvg" into a Backend.
func ParseBackend(s string) (Backend, error) {
	i, err := parseName(AxisBackend, backendNames, s)
	return Backend(i), err
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func parseName(axis string, names []string, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, &InvalidVariantError{Axis: axis, Value: s}
}

// State groups the enum axes of the editor.
type State struct {
	Pen       *Axis[PenStyle]
	Shape     *Axis[Shape]
	DrawStyle *Axis[DrawStyle]
	Backend   *Axis[Backend]
}

// NewState returns the start-up tool state: marker pen, rectangle shape,
// smooth outline and the given renderer backend.
func NewState(backend Backend) *State {
	return &State{
		Pen:       NewAxis(AxisPen, PenMarker, PenStyles()...),
		Shape:     NewAxis(AxisShape, ShapeRectangle, Shapes()...),
		DrawStyle: NewAxis(AxisDrawStyle, DrawSmooth, DrawStyles()...),
		Backend:   NewAxis(AxisBackend, backend, Backends()...),
	}
}
