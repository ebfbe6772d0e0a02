// Package render turns the sheet into the on-screen view: the page is
// rasterised, scaled by the zoom level with the active backend's scaler and
// placed over a backdrop with a drop shadow.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"

	"github.com/example/penmode/internal/logging"
	"github.com/example/penmode/internal/toolmode"
)

// Zoom limits and step.
const (
	DefaultScale = 1.0
	MinScale     = 0.1
	MaxScale     = 10.0
	ZoomStep     = 0.1
)

// Page is the content the canvas renders.
type Page interface {
	Render() *image.RGBA
}

// Canvas is the renderer of the editor view.
type Canvas struct {
	page          Page
	backend       toolmode.Backend
	scaler        xdraw.Interpolator
	scale         float64
	tempZoom      float64
	formatBorders bool
	shadow        ShadowOptions
	viewport      image.Point

	content *image.RGBA
	view    *image.RGBA
	// generations counts content and background regenerations.
	generations struct{ content, background int }

	log *slog.Logger
}

// Option modifies a Canvas during creation.
type Option func(*Canvas)

// WithLogger sets the canvas logger.
func WithLogger(l *slog.Logger) Option { return func(c *Canvas) { c.log = l } }

// WithShadow overrides the page shadow.
func WithShadow(o ShadowOptions) Option { return func(c *Canvas) { c.shadow = o } }

// WithViewport sets the initial viewport size.
func WithViewport(w, h int) Option { return func(c *Canvas) { c.viewport = image.Pt(w, h) } }

// WithBackend sets the initial renderer backend.
func WithBackend(b toolmode.Backend) Option { return func(c *Canvas) { c.backend = b } }

// NewCanvas creates a canvas for page.
func NewCanvas(page Page, opts ...Option) *Canvas {
	c := &Canvas{
		page:          page,
		scale:         DefaultScale,
		tempZoom:      1,
		shadow:        DefaultShadowOptions(),
		viewport:      image.Pt(800, 600),
		formatBorders: true,
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = logging.Logger()
	}
	c.scaler = scalerFor(c.backend)
	return c
}

// scalerFor maps each backend onto an x/image/draw interpolator.
func scalerFor(b toolmode.Backend) xdraw.Interpolator {
	if b == toolmode.BackendResvg {
		return xdraw.CatmullRom
	}
	return xdraw.ApproxBiLinear
}

// Backend returns the active backend.
func (c *Canvas) Backend() toolmode.Backend { return c.backend }

// SetBackend switches the scaler used for the page.
func (c *Canvas) SetBackend(b toolmode.Backend) {
	c.backend = b
	c.scaler = scalerFor(b)
	c.log.Debug("renderer backend", "backend", b)
}

// Scale returns the zoom level.
func (c *Canvas) Scale() float64 { return c.scale }

// ScaleTo sets the zoom level, clamped to [MinScale, MaxScale], and resets
// any temporary zoom.
func (c *Canvas) ScaleTo(s float64) {
	c.scale = min(max(s, MinScale), MaxScale)
	c.tempZoom = 1
}

// TemporaryZoom returns the pinch zoom factor applied on top of Scale.
func (c *Canvas) TemporaryZoom() float64 { return c.tempZoom }

// SetTemporaryZoom sets the pinch zoom factor.
func (c *Canvas) SetTemporaryZoom(z float64) {
	if z <= 0 {
		z = 1
	}
	c.tempZoom = z
}

// SetFormatBorders toggles the page borders in the view.
func (c *Canvas) SetFormatBorders(on bool) { c.formatBorders = on }

// FormatBorders reports whether page borders are drawn.
func (c *Canvas) FormatBorders() bool { return c.formatBorders }

// ShadowWidth is the margin the page shadow takes on each side.
func (c *Canvas) ShadowWidth() int { return c.shadow.Radius }

// Viewport returns the visible area size.
func (c *Canvas) Viewport() image.Point { return c.viewport }

// SetViewport resizes the visible area.
func (c *Canvas) SetViewport(w, h int) { c.viewport = image.Pt(w, h) }

// Generations returns how many content and background regenerations ran.
func (c *Canvas) Generations() (content, background int) {
	return c.generations.content, c.generations.background
}

// Regenerate rebuilds the view. content re-rasterises the page, background
// redraws the backdrop.
func (c *Canvas) Regenerate(content, background bool) {
	if content || c.content == nil {
		c.content = c.page.Render()
		c.generations.content++
	}
	if background || c.view == nil || c.view.Bounds().Size() != c.viewport {
		c.generations.background++
	}
	c.view = c.compose()
}

// View returns the last regenerated view.
func (c *Canvas) View() *image.RGBA {
	if c.view == nil {
		c.Regenerate(true, true)
	}
	return c.view
}

var (
	backdropColor = colornames.Lightgray
	borderColor   = colornames.Steelblue
)

// PageRect returns where the page lands in the view.
func (c *Canvas) PageRect() image.Rectangle {
	z := c.scale * c.tempZoom
	src := image.Rectangle{}
	if c.content != nil {
		src = c.content.Bounds()
	}
	pw := max(int(float64(src.Dx())*z), 1)
	ph := max(int(float64(src.Dy())*z), 1)
	sw := c.ShadowWidth()
	x := max((c.viewport.X-pw)/2, sw)
	return image.Rect(x, sw, x+pw, sw+ph)
}

func (c *Canvas) compose() *image.RGBA {
	vw, vh := max(c.viewport.X, 1), max(c.viewport.Y, 1)
	view := image.NewRGBA(image.Rect(0, 0, vw, vh))
	draw.Draw(view, view.Bounds(), image.NewUniform(backdropColor), image.Point{}, draw.Src)

	pageRect := c.PageRect()
	// Only the part of the page near the viewport is rasterised.
	clip := pageRect.Intersect(view.Bounds().Inset(-2 * c.ShadowWidth()))
	if clip.Empty() {
		return view
	}
	page := image.NewRGBA(clip)
	c.scaler.Scale(page, pageRect, c.content, c.content.Bounds(), draw.Src, nil)
	if c.formatBorders {
		drawBorder(page, pageRect, borderColor)
	}

	shadowed := ApplyShadow(page, c.shadow)
	at := shadowed.Image.Bounds().Add(clip.Min.Sub(shadowed.Offset))
	draw.Draw(view, at, shadowed.Image, image.Point{}, draw.Over)
	return view
}

// drawBorder outlines r; pixels outside img are skipped by Set.
func drawBorder(img *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, col)
		img.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, col)
		img.Set(r.Max.X-1, y, col)
	}
}
