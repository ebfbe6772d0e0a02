package appstate

import (
	"github.com/example/penmode/internal/layout"
	"github.com/example/penmode/internal/toolmode"
	"github.com/example/penmode/internal/viewsync"
)

// View holds the widget models the tool-mode axes drive. The window host
// reads them when painting.
type View struct {
	Pens           *viewsync.ToggleGroup
	Sidebar        *viewsync.Stack
	ShaperFill     *viewsync.Revealer
	DrawStyles     *viewsync.ToggleGroup
	Backends       *viewsync.ToggleGroup
	DevelActions   *viewsync.Revealer
	PageEdit       *viewsync.Revealer
	CanvasMenu     *viewsync.Popover
	AppMenu        *viewsync.Popover
	Layout         *layout.Mirror
	DevelMode      *viewsync.Toggle
	VisualDebug    *viewsync.Toggle
	FormatBorders  *viewsync.Toggle
	TouchDrawing   *viewsync.Toggle
	Autoexpand     *viewsync.Toggle
	TmpEraser      *viewsync.Toggle
	StatusMessage  string
	StatusSeverity string
}

func sidebarPage(p toolmode.PenStyle) string { return p.String() + "_page" }

func newView(righthanded bool, opts ...layout.Option) *View {
	var pens, pages []string
	for _, p := range toolmode.PenStyles() {
		pens = append(pens, p.String())
		pages = append(pages, sidebarPage(p))
	}
	var styles []string
	for _, d := range toolmode.DrawStyles() {
		styles = append(styles, d.String())
	}
	var backends []string
	for _, b := range toolmode.Backends() {
		backends = append(backends, b.String())
	}
	return &View{
		Pens:          viewsync.NewToggleGroup(pens...),
		Sidebar:       viewsync.NewStack(pages...),
		ShaperFill:    viewsync.NewRevealer(false),
		DrawStyles:    viewsync.NewToggleGroup(styles...),
		Backends:      viewsync.NewToggleGroup(backends...),
		DevelActions:  viewsync.NewRevealer(false),
		PageEdit:      viewsync.NewRevealer(true),
		CanvasMenu:    viewsync.NewPopover("canvasmenu"),
		AppMenu:       viewsync.NewPopover("appmenu"),
		Layout:        layout.NewMirror(righthanded, opts...),
		DevelMode:     viewsync.NewToggle("devel"),
		VisualDebug:   viewsync.NewToggle("visual-debug"),
		FormatBorders: viewsync.NewToggle("format-borders"),
		TouchDrawing:  viewsync.NewToggle("touch-drawing"),
		Autoexpand:    viewsync.NewToggle("autoexpand-height"),
		TmpEraser:     viewsync.NewToggle("tmperaser"),
	}
}
