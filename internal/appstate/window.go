package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/penmode/internal/action"
	"github.com/example/penmode/internal/layout"
)

const statusHeight = 20

// viewer is implemented by renderers that keep a composed view, such as
// render.Canvas.
type viewer interface {
	View() *image.RGBA
	SetViewport(w, h int)
}

type quitEvent struct{}

// Run opens the editor window using shiny's driver and blocks until it is
// closed.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window event loop on s. Every event is handled on this
// goroutine.
func (a *AppState) Main(s screen.Screen) {
	vp := a.renderer.Viewport()
	width, height := vp.X, vp.Y+statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Penmode"})
	if err != nil {
		a.log.Error("new window", "err", err)
		return
	}
	defer w.Release()

	// Deferred after w.Release so it runs first.
	defer a.repaintLoop(w.Send)()

	quit := a.onQuit
	a.onQuit = func() {
		if quit != nil {
			quit()
		}
		w.Send(quitEvent{})
	}
	defer func() { a.onQuit = quit }()

	for {
		switch e := w.NextEvent().(type) {
		case quitEvent:
			return
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			if v, ok := a.renderer.(viewer); ok {
				v.SetViewport(width, max(height-statusHeight, 1))
			}
			a.renderer.Regenerate(false, true)
			w.Send(paint.Event{})
		case paint.Event:
			a.drawFrame(s, w, image.Pt(width, height))
		case key.Event:
			a.handleKey(e)
			w.Send(paint.Event{})
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		}
	}
}

// repaintLoop forwards repaint requests to send until the returned stop
// function is called. stop returns once the loop has exited.
func (a *AppState) repaintLoop(send func(event any)) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-a.updateCh:
				send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

func (a *AppState) handleKey(e key.Event) {
	if e.Direction == key.DirPress && e.Code == key.CodeEscape {
		a.View.CanvasMenu.Popdown()
		a.View.AppMenu.Popdown()
		return
	}
	if _, err := a.Accels.Dispatch(a, e); err != nil {
		a.log.Debug("accelerator", "key", e.String(), "err", err)
	}
}

// handleMouse maps wheel zoom and the context menu onto commands.
func (a *AppState) handleMouse(e mouse.Event) bool {
	if e.Direction != mouse.DirPress && e.Direction != mouse.DirStep {
		return false
	}
	var name string
	switch {
	case e.Button == mouse.ButtonWheelUp && e.Modifiers&key.ModControl != 0:
		name = "zoom-in"
	case e.Button == mouse.ButtonWheelDown && e.Modifiers&key.ModControl != 0:
		name = "zoom-out"
	case e.Button == mouse.ButtonRight:
		name = "open-canvasmenu"
	case e.Button == mouse.ButtonLeft:
		a.View.CanvasMenu.Popdown()
		a.View.AppMenu.Popdown()
		return true
	default:
		return false
	}
	return a.Invoke(name, action.None) == nil
}

// StatusLine describes the tool state shown under the canvas.
func (a *AppState) StatusLine() string {
	parts := []string{
		"pen: " + a.Tools.Pen.Current().String(),
		"shape: " + a.Tools.Shape.Current().String(),
		"style: " + a.Tools.DrawStyle.Current().String(),
		"backend: " + a.Tools.Backend.Current().String(),
		fmt.Sprintf("zoom: %.0f%%", a.renderer.Scale()*a.renderer.TemporaryZoom()*100),
	}
	if a.Override.Active() {
		parts = append(parts, "tmperaser")
	}
	if a.View.CanvasMenu.Visible() {
		parts = append(parts, "menu: canvas")
	}
	if a.View.AppMenu.Visible() {
		parts = append(parts, "menu: app")
	}
	if a.View.StatusMessage != "" {
		parts = append(parts, a.View.StatusSeverity+": "+a.View.StatusMessage)
	}
	return strings.Join(parts, "  ")
}

func (a *AppState) drawFrame(s screen.Screen, w screen.Window, sz image.Point) {
	b, err := s.NewBuffer(sz)
	if err != nil {
		a.log.Error("new buffer", "err", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	if v, ok := a.renderer.(viewer); ok {
		view := v.View()
		draw.Draw(dst, view.Bounds(), view, image.Point{}, draw.Src)
	} else {
		page := a.doc.Render()
		draw.Draw(dst, page.Bounds(), page, image.Point{}, draw.Src)
	}

	bar := image.Rect(0, sz.Y-statusHeight, sz.X, sz.Y)
	draw.Draw(dst, bar, image.NewUniform(colornames.Whitesmoke), image.Point{}, draw.Src)
	var fg color.Color = colornames.Black
	if a.View.StatusSeverity == SeverityError {
		fg = colornames.Darkred
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13}
	text := a.StatusLine()
	x := 4
	// The tool summary follows the pens box, which moves to the far side in
	// the lefthanded layout.
	if a.View.Layout.Current().Header.Pens == layout.PackEnd {
		x = sz.X - d.MeasureString(text).Ceil() - 4
	}
	d.Dot = fixed.P(x, sz.Y-5)
	d.DrawString(text)

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
