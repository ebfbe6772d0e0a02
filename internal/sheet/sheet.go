// Package sheet is the document the editor draws on: a page of strokes with
// a current selection and a trash of removed strokes.
package sheet

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"slices"

	"golang.org/x/image/colornames"

	"github.com/example/penmode/internal/toolmode"
)

// Stroke is one drawn element.
type Stroke struct {
	Pen       toolmode.PenStyle
	Shape     toolmode.Shape
	DrawStyle toolmode.DrawStyle
	Points    []image.Point
	Color     color.RGBA
	Width     int
	Fill      *color.RGBA
	Selected  bool
}

// Bounds returns the rectangle covering the stroke including its width.
func (s Stroke) Bounds() image.Rectangle {
	if len(s.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: s.Points[0], Max: s.Points[0].Add(image.Pt(1, 1))}
	for _, p := range s.Points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r.Inset(-(s.Width/2 + 1))
}

func (s Stroke) clone() Stroke {
	s.Points = slices.Clone(s.Points)
	if s.Fill != nil {
		f := *s.Fill
		s.Fill = &f
	}
	return s
}

// Format is the page geometry.
type Format struct {
	Width  int
	Height int
	DPI    float64
}

// A4 returns an A4 portrait page at 96 dpi.
func A4() Format { return Format{Width: 794, Height: 1123, DPI: 96} }

// Sheet holds strokes on one page.
type Sheet struct {
	format      Format
	strokes     []Stroke
	trash       []Stroke
	autoexpand  bool
	background  color.RGBA
	expandPad   int
	originalHgt int
}

// New creates an empty sheet with format f.
func New(f Format) *Sheet {
	return &Sheet{
		format:      f,
		background:  colornames.White,
		expandPad:   f.Height / 4,
		originalHgt: f.Height,
	}
}

// Format returns the current page geometry.
func (s *Sheet) Format() Format { return s.format }

// Strokes returns a copy of every stroke on the sheet.
func (s *Sheet) Strokes() []Stroke {
	out := make([]Stroke, len(s.strokes))
	for i, st := range s.strokes {
		out[i] = st.clone()
	}
	return out
}

// Trash returns the removed strokes.
func (s *Sheet) Trash() []Stroke { return slices.Clone(s.trash) }

// Select marks the strokes at the given indices as selected and clears the
// rest.
func (s *Sheet) Select(indices ...int) {
	for i := range s.strokes {
		s.strokes[i].Selected = slices.Contains(indices, i)
	}
}

// SelectAll selects every stroke.
func (s *Sheet) SelectAll() {
	for i := range s.strokes {
		s.strokes[i].Selected = true
	}
}

// SelectNone clears the selection.
func (s *Sheet) SelectNone() {
	for i := range s.strokes {
		s.strokes[i].Selected = false
	}
}

// SelectedStrokes returns copies of the selected strokes.
func (s *Sheet) SelectedStrokes() []Stroke {
	var out []Stroke
	for _, st := range s.strokes {
		if st.Selected {
			out = append(out, st.clone())
		}
	}
	return out
}

// RemoveSelectedStrokes takes the selected strokes off the sheet and
// returns them.
func (s *Sheet) RemoveSelectedStrokes() []Stroke {
	var removed []Stroke
	kept := s.strokes[:0]
	for _, st := range s.strokes {
		if st.Selected {
			removed = append(removed, st)
		} else {
			kept = append(kept, st)
		}
	}
	s.strokes = kept
	s.resize()
	return removed
}

// AppendStrokes adds strokes to the sheet.
func (s *Sheet) AppendStrokes(strokes []Stroke) {
	for _, st := range strokes {
		s.strokes = append(s.strokes, st.clone())
	}
	s.resize()
}

// TrashStrokes moves strokes into the trash.
func (s *Sheet) TrashStrokes(strokes []Stroke) {
	for _, st := range strokes {
		st.Selected = false
		s.trash = append(s.trash, st)
	}
}

// TranslateSelection moves the selected strokes by off.
func (s *Sheet) TranslateSelection(off image.Point) {
	for i := range s.strokes {
		if !s.strokes[i].Selected {
			continue
		}
		for j := range s.strokes[i].Points {
			s.strokes[i].Points[j] = s.strokes[i].Points[j].Add(off)
		}
	}
	s.resize()
}

// Clear removes every stroke and empties the trash.
func (s *Sheet) Clear() {
	s.strokes = nil
	s.trash = nil
	s.resize()
}

// SetAutoexpandHeight makes the page grow to fit its strokes.
func (s *Sheet) SetAutoexpandHeight(on bool) {
	s.autoexpand = on
	s.resize()
}

// AutoexpandHeight reports whether the page grows with its content.
func (s *Sheet) AutoexpandHeight() bool { return s.autoexpand }

func (s *Sheet) resize() {
	if !s.autoexpand {
		return
	}
	bottom := 0
	for _, st := range s.strokes {
		if b := st.Bounds().Max.Y; b > bottom {
			bottom = b
		}
	}
	h := s.originalHgt
	if bottom+s.expandPad > h {
		h = bottom + s.expandPad
	}
	s.format.Height = h
}

// Render rasterises the sheet onto a page sized image.
func (s *Sheet) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.format.Width, s.format.Height))
	fillRect(img, img.Bounds(), s.background)
	for _, st := range s.strokes {
		renderStroke(img, st)
	}
	return img
}

func renderStroke(img *image.RGBA, st Stroke) {
	if len(st.Points) == 0 {
		return
	}
	width := st.Width
	if width <= 0 {
		width = 1
	}
	switch st.Pen {
	case toolmode.PenShaper:
		first, last := st.Points[0], st.Points[len(st.Points)-1]
		r := image.Rectangle{Min: first, Max: last}.Canon()
		switch st.Shape {
		case toolmode.ShapeLine:
			pts := []image.Point{first, last}
			if st.DrawStyle == toolmode.DrawRough {
				pts = roughen(pts, width)
			}
			drawPolyline(img, pts, st.Color, width)
		case toolmode.ShapeRectangle:
			if st.Fill != nil {
				fillRect(img, r, *st.Fill)
			}
			drawRect(img, r, st.Color, width)
		case toolmode.ShapeEllipse:
			if st.Fill != nil {
				fillEllipse(img, r, *st.Fill)
			}
			drawEllipse(img, r, st.Color, width)
		}
	case toolmode.PenMarker:
		c := color.NRGBA{R: st.Color.R, G: st.Color.G, B: st.Color.B, A: st.Color.A / 2}
		drawPolyline(img, st.Points, c, width*2)
	default:
		drawPolyline(img, st.Points, st.Color, width)
	}
}

// RenderStrokes rasterises strokes on a page of format f and crops the
// result to the area they cover.
func RenderStrokes(f Format, strokes []Stroke) *image.RGBA {
	page := New(f)
	page.AppendStrokes(strokes)
	img := page.Render()
	var area image.Rectangle
	for _, st := range strokes {
		area = area.Union(st.Bounds())
	}
	area = area.Intersect(img.Bounds())
	if area.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	return img.SubImage(area).(*image.RGBA)
}

// Save writes the rendered sheet to path as PNG.
func (s *Sheet) Save(path string) error { return WritePNG(path, s.Render()) }

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
