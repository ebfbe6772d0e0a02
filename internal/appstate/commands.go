package appstate

import (
	"github.com/example/penmode/internal/action"
	"github.com/example/penmode/internal/render"
	"github.com/example/penmode/internal/toolmode"
	"github.com/example/penmode/internal/viewsync"
)

// Severity of a message raised through the warning and error commands.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

func (a *AppState) registerCommands() error {
	stateless := []struct {
		name string
		fn   func()
	}{
		{"about", a.dialog(DialogAbout)},
		{"clear-sheet", a.dialog(DialogClearSheet)},
		{"new-sheet", a.dialog(DialogNewSheet)},
		{"open-sheet", a.dialog(DialogOpenSheet)},
		{"open-workspace", a.dialog(DialogOpenWorkspace)},
		{"save-sheet-as", a.dialog(DialogSaveSheetAs)},
		{"import-file", a.dialog(DialogImportFile)},
		{"export-selection-as-svg", a.dialog(DialogExportSelection)},
		{"export-sheet-as-svg", a.dialog(DialogExportSheet)},
		{"keyboard-shortcuts", a.dialog(DialogKeyboardShortcuts)},
		{"print-sheet", a.dialog(DialogPrintSheet)},
		{"devel-settings", a.dialog(DialogDevelSettings)},
		{"open-canvasmenu", a.popup(a.View.CanvasMenu)},
		{"open-appmenu", a.popup(a.View.AppMenu)},
		{"zoom-reset", a.zoomReset},
		{"zoom-fit-width", a.zoomFitWidth},
		{"zoom-in", func() { a.zoomBy(render.ZoomStep) }},
		{"zoom-out", func() { a.zoomBy(-render.ZoomStep) }},
		{"delete-selection", a.deleteSelection},
		{"duplicate-selection", a.duplicateSelection},
		{"save-sheet", a.saveSheet},
		{"copy-sheet", a.copySheet},
		{"quit", a.quit},
	}
	var cmds []*action.Command
	for _, s := range stateless {
		cmds = append(cmds, action.NewStateless(s.name, s.fn))
	}
	cmds = append(cmds,
		action.NewStatelessParam(SeverityWarning, action.TypeString, a.reportFunc(SeverityWarning)),
		action.NewStatelessParam(SeverityError, action.TypeString, a.reportFunc(SeverityError)),

		action.NewBool(a.Override.Name(), a.Override),
		action.NewBool(FlagDevel, a.Flags.Devel),
		action.NewBool(FlagVisualDebug, a.Flags.VisualDebug),
		action.NewBool(FlagFormatBorders, a.Flags.FormatBorders),
		action.NewBool(FlagTouchDrawing, a.Flags.TouchDrawing),
		action.NewBool(FlagAutoexpand, a.Flags.Autoexpand),
		action.NewBool(FlagRighthanded, a.Flags.Righthanded),

		action.NewEnum(toolmode.AxisPen, a.Tools.Pen, toolmode.ParsePenStyle),
		action.NewEnum(toolmode.AxisShape, a.Tools.Shape, toolmode.ParseShape),
		action.NewEnum(toolmode.AxisDrawStyle, a.Tools.DrawStyle, toolmode.ParseDrawStyle),
		action.NewEnum(toolmode.AxisBackend, a.Tools.Backend, toolmode.ParseBackend),
	)
	for _, c := range cmds {
		if err := a.Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// observeSideEffects subscribes the collaborator side effects. They are
// registered before the view bindings so a fan-out announcement always
// follows them.
func (a *AppState) observeSideEffects() {
	a.Tools.Backend.Observe(func(b toolmode.Backend) {
		a.cfg.Backend = b
		a.renderer.SetBackend(b)
		a.renderer.Regenerate(true, true)
	})
	a.Flags.Devel.Observe(func(on bool) {
		a.cfg.Devel = on
		if on {
			return
		}
		if err := a.Registry.SetState(FlagVisualDebug, action.Bool(false)); err != nil {
			a.log.Error("leave developer mode", "err", err)
		}
	})
	a.Flags.VisualDebug.Observe(func(on bool) {
		a.cfg.VisualDebug = on
		a.renderer.Regenerate(true, false)
	})
	a.Flags.FormatBorders.Observe(func(on bool) {
		a.cfg.FormatBorders = on
		a.renderer.SetFormatBorders(on)
		a.renderer.Regenerate(true, true)
	})
	a.Flags.TouchDrawing.Observe(func(on bool) { a.cfg.TouchDrawing = on })
	a.Flags.Autoexpand.Observe(func(on bool) {
		a.cfg.AutoexpandHeight = on
		a.doc.SetAutoexpandHeight(on)
		a.renderer.Regenerate(true, true)
	})
	a.Flags.Righthanded.Observe(func(on bool) { a.cfg.Righthanded = on })
}

func (a *AppState) bindViews() {
	v := a.View
	viewsync.Bind[toolmode.PenStyle](a.updates, a.Tools.Pen,
		viewsync.Named[toolmode.PenStyle](v.Pens),
		viewsync.Map(sidebarPage, viewsync.Sink[string](v.Sidebar)))
	viewsync.Bind[toolmode.Shape](a.updates, a.Tools.Shape,
		viewsync.Map(toolmode.Shape.Filled, viewsync.Sink[bool](v.ShaperFill)))
	viewsync.Bind[toolmode.DrawStyle](a.updates, a.Tools.DrawStyle,
		viewsync.Named[toolmode.DrawStyle](v.DrawStyles))
	viewsync.Bind[toolmode.Backend](a.updates, a.Tools.Backend,
		viewsync.Named[toolmode.Backend](v.Backends))

	viewsync.Bind[bool](a.updates, a.Flags.Devel, v.DevelMode, v.DevelActions,
		viewsync.SinkFunc[bool](func(on bool) {
			if err := a.Registry.SetEnabled("devel-settings", on); err != nil {
				a.log.Error("devel settings", "err", err)
			}
		}))
	viewsync.Bind[bool](a.updates, a.Flags.VisualDebug, v.VisualDebug)
	viewsync.Bind[bool](a.updates, a.Flags.FormatBorders, v.FormatBorders)
	viewsync.Bind[bool](a.updates, a.Flags.TouchDrawing, v.TouchDrawing)
	viewsync.Bind[bool](a.updates, a.Flags.Autoexpand, v.Autoexpand,
		viewsync.Map(func(on bool) bool { return !on }, viewsync.Sink[bool](v.PageEdit)))
	viewsync.Bind[bool](a.updates, a.Flags.Righthanded, v.Layout)
	viewsync.Bind[bool](a.updates, a.Override, v.TmpEraser)
}

func (a *AppState) dialog(kind DialogKind) func() {
	return func() { a.dialogs.Show(kind) }
}

func (a *AppState) popup(p *viewsync.Popover) func() {
	return func() {
		p.Popup()
		a.requestRepaint()
	}
}

func (a *AppState) reportFunc(severity string) func(action.Variant) {
	return func(v action.Variant) {
		msg, _ := v.Str()
		if severity == SeverityError {
			a.log.Error("reported", "message", msg)
		} else {
			a.log.Warn("reported", "message", msg)
		}
		a.View.StatusMessage = msg
		a.View.StatusSeverity = severity
		a.requestRepaint()
	}
}

func (a *AppState) zoomReset() {
	a.renderer.ScaleTo(render.DefaultScale)
	a.renderer.Regenerate(true, true)
}

// zoomFitWidth scales the page so it fills the viewport less the shadow on
// both sides.
func (a *AppState) zoomFitWidth() {
	w := a.doc.Format().Width
	if w <= 0 {
		return
	}
	avail := a.renderer.Viewport().X - 2*a.renderer.ShadowWidth()
	a.renderer.ScaleTo(float64(avail) / float64(w))
	a.renderer.Regenerate(true, true)
}

func (a *AppState) zoomBy(step float64) {
	a.renderer.ScaleTo(a.renderer.Scale()*a.renderer.TemporaryZoom() + step)
	a.renderer.Regenerate(true, true)
}

func (a *AppState) deleteSelection() {
	removed := a.doc.RemoveSelectedStrokes()
	if len(removed) == 0 {
		return
	}
	a.doc.TrashStrokes(removed)
	a.renderer.Regenerate(true, false)
}

func (a *AppState) duplicateSelection() {
	copies := a.doc.SelectedStrokes()
	if len(copies) == 0 {
		return
	}
	a.doc.SelectNone()
	a.doc.AppendStrokes(copies)
	a.doc.TranslateSelection(DuplicateOffset)
	a.renderer.Regenerate(true, false)
}

func (a *AppState) saveSheet() {
	if a.output == "" {
		a.dialogs.Show(DialogSaveSheetAs)
		return
	}
	if err := a.save(); err != nil {
		a.reportFunc(SeverityError)(action.Str("Saving sheet failed"))
	}
}

// save writes the sheet to the cached output. A failed save forgets the
// output so the next save asks for a new one.
func (a *AppState) save() error {
	path := a.output
	if err := a.doc.Save(path); err != nil {
		a.log.Error("save sheet", "path", path, "err", err)
		a.output = ""
		return err
	}
	a.log.Info("saved sheet", "path", path)
	a.notifier.Save(path)
	return nil
}

func (a *AppState) copySheet() {
	img := a.doc.Render()
	if err := a.copyImage(img); err != nil {
		a.log.Error("copy sheet", "err", err)
		a.reportFunc(SeverityError)(action.Str("Copying sheet failed"))
		return
	}
	a.notifier.Copy("sheet", img)
}

func (a *AppState) quit() {
	a.log.Debug("quit")
	if a.onQuit != nil {
		a.onQuit()
	}
}
