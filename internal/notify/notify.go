// Package notify sends desktop notifications when the editor writes a sheet
// to disk, exports it or copies it to the clipboard.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/penmode/internal/config"
	"github.com/example/penmode/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave is emitted when a sheet is saved.
	EventSave Event = "save"
	// EventExport is emitted when a sheet or selection is exported.
	EventExport Event = "export"
	// EventCopy is emitted when the rendered sheet is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification behaviour.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification texts.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Penmode",
		Templates: map[Event]string{
			EventSave:   "Saved %s",
			EventExport: "Exported %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies PENMODE_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PENMODE_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventSave:   "PENMODE_NOTIFY_SAVE_TEXT",
		EventExport: "PENMODE_NOTIFY_EXPORT_TEXT",
		EventCopy:   "PENMODE_NOTIFY_COPY_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// SendFunc delivers a notification. platform.Notify is the default.
type SendFunc func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications for enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    SendFunc
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: maps.Clone(prefs.Templates)}
	if cloned.Templates == nil {
		cloned.Templates = map[Event]string{}
	}
	return &Notifier{prefs: cloned, enabled: map[Event]bool{}, send: platform.Notify}
}

// FromConfig creates a Notifier with the events enabled in cfg.
func FromConfig(prefs Preferences, cfg config.Notify) *Notifier {
	n := New(prefs)
	n.Enable(EventSave, cfg.Save)
	n.Enable(EventExport, cfg.Export)
	n.Enable(EventCopy, cfg.Copy)
	return n
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(fn SendFunc) *Notifier {
	n.send = fn
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event is delivered.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a written file.
func (n *Notifier) Save(path string) { n.file(EventSave, path) }

// Export announces an exported file.
func (n *Notifier) Export(path string) { n.file(EventExport, path) }

// Copy announces a clipboard copy with a preview of img when possible.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "sheet"
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) file(event Event, path string) {
	if !n.Enabled(event) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil && strings.EqualFold(filepath.Ext(abs), ".png") {
			opts.IconPath = abs
		}
	}
	n.dispatch(event, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts.AppName = n.prefs.Title
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "penmode-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
