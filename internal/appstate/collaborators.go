package appstate

import (
	"image"

	"github.com/example/penmode/internal/sheet"
	"github.com/example/penmode/internal/toolmode"
)

// Document is the sheet the commands edit.
type Document interface {
	SelectedStrokes() []sheet.Stroke
	SelectNone()
	RemoveSelectedStrokes() []sheet.Stroke
	AppendStrokes([]sheet.Stroke)
	TrashStrokes([]sheet.Stroke)
	TranslateSelection(off image.Point)
	SetAutoexpandHeight(on bool)
	Format() sheet.Format
	Save(path string) error
	Render() *image.RGBA
	Clear()
}

// Renderer draws the document into the canvas view.
type Renderer interface {
	SetBackend(toolmode.Backend)
	Regenerate(content, background bool)
	Scale() float64
	ScaleTo(scale float64)
	TemporaryZoom() float64
	SetFormatBorders(on bool)
	ShadowWidth() int
	Viewport() image.Point
}

// DialogKind names a modal dialog.
type DialogKind string

const (
	DialogAbout             DialogKind = "about"
	DialogClearSheet        DialogKind = "clear-sheet"
	DialogNewSheet          DialogKind = "new-sheet"
	DialogOpenSheet         DialogKind = "open-sheet"
	DialogOpenWorkspace     DialogKind = "open-workspace"
	DialogSaveSheetAs       DialogKind = "save-sheet-as"
	DialogImportFile        DialogKind = "import-file"
	DialogExportSelection   DialogKind = "export-selection"
	DialogExportSheet       DialogKind = "export-sheet"
	DialogKeyboardShortcuts DialogKind = "keyboard-shortcuts"
	DialogPrintSheet        DialogKind = "print-sheet"
	DialogDevelSettings     DialogKind = "devel-settings"
)

// Dialogs presents modal dialogs. Show must not block the caller.
type Dialogs interface {
	Show(kind DialogKind)
}

// DialogsFunc adapts a function to Dialogs.
type DialogsFunc func(DialogKind)

// Show calls f.
func (f DialogsFunc) Show(kind DialogKind) { f(kind) }

type noDialogs struct{}

func (noDialogs) Show(DialogKind) {}
