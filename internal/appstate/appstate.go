// Package appstate wires the command registry, the tool-mode axes and the
// widget models of the editor together and hosts them in a shiny window.
package appstate

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/example/penmode/internal/accel"
	"github.com/example/penmode/internal/action"
	"github.com/example/penmode/internal/clipboard"
	"github.com/example/penmode/internal/config"
	"github.com/example/penmode/internal/layout"
	"github.com/example/penmode/internal/logging"
	"github.com/example/penmode/internal/notify"
	"github.com/example/penmode/internal/override"
	"github.com/example/penmode/internal/render"
	"github.com/example/penmode/internal/sheet"
	"github.com/example/penmode/internal/toolmode"
	"github.com/example/penmode/internal/viewsync"
)

// Flag names of the boolean settings commands.
const (
	FlagDevel         = "devel"
	FlagVisualDebug   = "visual-debug"
	FlagFormatBorders = "format-borders"
	FlagTouchDrawing  = "touch-drawing"
	FlagAutoexpand    = "autoexpand-height"
	FlagRighthanded   = "righthanded"
)

// DuplicateOffset is how far duplicated strokes are moved from the originals.
var DuplicateOffset = image.Pt(20, 20)

// Flags are the boolean axes of the editor.
type Flags struct {
	Devel         *toolmode.Flag
	VisualDebug   *toolmode.Flag
	FormatBorders *toolmode.Flag
	TouchDrawing  *toolmode.Flag
	Autoexpand    *toolmode.Flag
	Righthanded   *toolmode.Flag
}

// AppState holds the editor mode and the collaborators the commands drive.
type AppState struct {
	Registry *action.Registry
	Tools    *toolmode.State
	Flags    Flags
	Override *override.Controller
	View     *View
	Accels   *accel.Table

	doc       Document
	renderer  Renderer
	dialogs   Dialogs
	notifier  *notify.Notifier
	copyImage func(image.Image) error
	cfg       *config.Config
	output    string
	onQuit    func()
	updates   *viewsync.Broadcaster
	log       *slog.Logger

	updateCh chan struct{}
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithLogger sets the logger used by the registry, the axes' observers and
// the window host.
func WithLogger(l *slog.Logger) Option { return func(a *AppState) { a.log = l } }

// WithConfig sets the settings the initial state is read from. Transitions
// are written back into cfg.
func WithConfig(cfg *config.Config) Option { return func(a *AppState) { a.cfg = cfg } }

// WithDocument sets the sheet being edited.
func WithDocument(d Document) Option { return func(a *AppState) { a.doc = d } }

// WithRenderer sets the renderer that draws the document.
func WithRenderer(r Renderer) Option { return func(a *AppState) { a.renderer = r } }

// WithDialogs sets the dialog presenter.
func WithDialogs(d Dialogs) Option { return func(a *AppState) { a.dialogs = d } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithClipboard replaces the function that publishes images to the
// clipboard.
func WithClipboard(fn func(image.Image) error) Option {
	return func(a *AppState) { a.copyImage = fn }
}

// WithOutput sets the file save-sheet writes to.
func WithOutput(path string) Option { return func(a *AppState) { a.output = path } }

// WithAccels replaces the default accelerator table.
func WithAccels(t *accel.Table) Option { return func(a *AppState) { a.Accels = t } }

// WithOnQuit sets the function the quit command calls.
func WithOnQuit(fn func()) Option { return func(a *AppState) { a.onQuit = fn } }

// New builds the editor state, registers every command and binds the
// widget models to the axes.
func New(opts ...Option) (*AppState, error) {
	a := &AppState{updateCh: make(chan struct{}, 1)}
	for _, o := range opts {
		o(a)
	}
	if a.log == nil {
		a.log = logging.Logger()
	}
	if a.cfg == nil {
		a.cfg = config.New()
	}
	if !a.cfg.Devel && a.cfg.VisualDebug {
		a.log.Warn("visual debugging needs developer mode, disabling it")
		a.cfg.VisualDebug = false
	}
	if a.doc == nil {
		a.doc = sheet.New(sheet.A4())
	}
	a.doc.SetAutoexpandHeight(a.cfg.AutoexpandHeight)
	if a.renderer == nil {
		a.renderer = render.NewCanvas(a.doc,
			render.WithLogger(a.log),
			render.WithBackend(a.cfg.Backend))
	}
	a.renderer.SetFormatBorders(a.cfg.FormatBorders)
	if a.dialogs == nil {
		a.dialogs = noDialogs{}
	}
	if a.notifier == nil {
		a.notifier = notify.New(notify.DefaultPreferences())
	}
	if a.copyImage == nil {
		a.copyImage = clipboard.WriteImage
	}
	if a.Accels == nil {
		a.Accels = accel.Defaults()
	}

	a.Tools = toolmode.NewState(a.cfg.Backend)
	a.Flags = Flags{
		Devel:         toolmode.NewFlag(FlagDevel, a.cfg.Devel),
		VisualDebug:   toolmode.NewFlag(FlagVisualDebug, a.cfg.VisualDebug),
		FormatBorders: toolmode.NewFlag(FlagFormatBorders, a.cfg.FormatBorders),
		TouchDrawing:  toolmode.NewFlag(FlagTouchDrawing, a.cfg.TouchDrawing),
		Autoexpand:    toolmode.NewFlag(FlagAutoexpand, a.cfg.AutoexpandHeight),
		Righthanded:   toolmode.NewFlag(FlagRighthanded, a.cfg.Righthanded),
	}
	a.Override = override.New(a.Tools.Pen, override.WithLogger(a.log))
	a.Registry = action.NewRegistry(action.WithLogger(a.log))
	a.View = newView(a.cfg.Righthanded, layout.WithLogger(a.log))
	a.updates = viewsync.NewBroadcaster(viewsync.WithLogger(a.log))
	a.updates.Listen(func(viewsync.Update) { a.requestRepaint() })

	if err := a.registerCommands(); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	a.observeSideEffects()
	a.bindViews()
	return a, nil
}

// Invoke runs the named command. It satisfies accel.Invoker.
func (a *AppState) Invoke(name string, v action.Variant) error {
	return a.Registry.Invoke(name, v)
}

// Updates returns the broadcaster that announces every view fan-out.
func (a *AppState) Updates() *viewsync.Broadcaster { return a.updates }

// Config returns the settings with every transition so far written back.
func (a *AppState) Config() *config.Config {
	c := *a.cfg
	return &c
}

// Document returns the sheet being edited.
func (a *AppState) Document() Document { return a.doc }

// Renderer returns the renderer drawing the sheet.
func (a *AppState) Renderer() Renderer { return a.renderer }

// Output returns the file save-sheet writes to, or "" if none is cached.
func (a *AppState) Output() string { return a.output }

// SetOutput caches the file save-sheet writes to.
func (a *AppState) SetOutput(path string) { a.output = path }

// ClearSheet removes every stroke. Dialogs call it once the user confirms.
func (a *AppState) ClearSheet() {
	a.doc.Clear()
	a.renderer.Regenerate(true, true)
	a.requestRepaint()
}

// NewSheet clears the sheet and forgets the output file.
func (a *AppState) NewSheet() {
	a.output = ""
	a.ClearSheet()
}

// SaveAs caches path as the output and saves the sheet there.
func (a *AppState) SaveAs(path string) error {
	a.output = path
	return a.save()
}

// ErrNothingSelected is returned when the selection is exported while no
// stroke is selected.
var ErrNothingSelected = errors.New("no strokes selected")

// Export writes the rendered sheet to path as PNG. With selection set only
// the selected strokes are written, cropped to the area they cover.
func (a *AppState) Export(path string, selection bool) error {
	img := a.doc.Render()
	if selection {
		strokes := a.doc.SelectedStrokes()
		if len(strokes) == 0 {
			return ErrNothingSelected
		}
		img = sheet.RenderStrokes(a.doc.Format(), strokes)
	}
	if err := sheet.WritePNG(path, img); err != nil {
		a.log.Error("export", "path", path, "selection", selection, "err", err)
		a.reportFunc(SeverityError)(action.Str("Exporting failed"))
		return err
	}
	a.log.Info("exported", "path", path, "selection", selection)
	a.notifier.Export(path)
	return nil
}

// requestRepaint asks the window host for a new frame without blocking.
func (a *AppState) requestRepaint() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}
