package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/penmode/internal/toolmode"
)

type solidPage struct {
	size    image.Point
	renders int
}

func (p *solidPage) Render() *image.RGBA {
	p.renders++
	img := image.NewRGBA(image.Rectangle{Max: p.size})
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestScaleToClamps(t *testing.T) {
	c := NewCanvas(&solidPage{size: image.Pt(10, 10)})
	c.ScaleTo(50)
	if c.Scale() != MaxScale {
		t.Fatalf("scale = %v", c.Scale())
	}
	c.ScaleTo(0)
	if c.Scale() != MinScale {
		t.Fatalf("scale = %v", c.Scale())
	}
	c.SetTemporaryZoom(1.5)
	c.ScaleTo(2)
	if c.TemporaryZoom() != 1 {
		t.Fatalf("temporary zoom not reset")
	}
}

func TestRegenerateCounts(t *testing.T) {
	p := &solidPage{size: image.Pt(40, 30)}
	c := NewCanvas(p, WithViewport(100, 80))
	c.Regenerate(true, true)
	c.Regenerate(false, false)
	c.Regenerate(true, false)
	content, _ := c.Generations()
	if content != 2 || p.renders != 2 {
		t.Fatalf("content regenerations = %d, renders = %d", content, p.renders)
	}
}

func TestViewPlacesPageWithShadowMargin(t *testing.T) {
	p := &solidPage{size: image.Pt(40, 30)}
	c := NewCanvas(p, WithViewport(100, 80), WithShadow(ShadowOptions{Radius: 10, Opacity: 0.5}))
	c.SetFormatBorders(false)
	c.Regenerate(true, true)
	view := c.View()
	if view.Bounds().Size() != image.Pt(100, 80) {
		t.Fatalf("view size = %v", view.Bounds().Size())
	}
	r := c.PageRect()
	if r != image.Rect(30, 10, 70, 40) {
		t.Fatalf("page rect = %v", r)
	}
	if got := view.RGBAAt(50, 20); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("page pixel = %+v", got)
	}
	if got := view.RGBAAt(2, 78); got != backdropColor {
		t.Fatalf("backdrop pixel = %+v", got)
	}
}

func TestBackendSelectsScaler(t *testing.T) {
	c := NewCanvas(&solidPage{size: image.Pt(4, 4)}, WithBackend(toolmode.BackendResvg))
	if c.Backend() != toolmode.BackendResvg {
		t.Fatalf("backend = %v", c.Backend())
	}
	c.SetBackend(toolmode.BackendLibrsvg)
	if c.Backend() != toolmode.BackendLibrsvg {
		t.Fatalf("backend = %v", c.Backend())
	}
	c.ScaleTo(10)
	c.Regenerate(true, true)
	if c.View().Bounds().Size() != c.Viewport() {
		t.Fatalf("zoomed view size = %v", c.View().Bounds().Size())
	}
}
