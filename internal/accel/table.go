package accel

import (
	"fmt"
	"sort"

	"golang.org/x/mobile/event/key"

	"github.com/example/penmode/internal/action"
)

// Invoker runs commands by name. *action.Registry satisfies it.
type Invoker interface {
	Invoke(name string, v action.Variant) error
}

// Table maps shortcuts to bindings. It is built once at start-up.
type Table struct {
	bindings []Binding
	byKey    map[KeyShortcut]int
}

// NewTable parses chord/target pairs into a table. A target is a command
// name with an optional literal parameter, e.g. "current-pen('eraser')".
func NewTable(entries ...[2]string) (*Table, error) {
	t := &Table{byKey: map[KeyShortcut]int{}}
	for _, e := range entries {
		if err := t.Bind(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Bind adds a binding. Binding a chord twice is an error. A boolean
// parameter of true makes the binding momentary.
func (t *Table) Bind(chord, target string) error {
	ks, err := ParseChord(chord)
	if err != nil {
		return err
	}
	if i, dup := t.byKey[ks]; dup {
		return fmt.Errorf("chord %q already bound to %s", chord, t.bindings[i].Target())
	}
	name, param, err := ParseTarget(target)
	if err != nil {
		return err
	}
	on, isBool := param.Bool()
	t.byKey[ks] = len(t.bindings)
	t.bindings = append(t.bindings, Binding{
		Chord:     chord,
		Shortcut:  ks,
		Command:   name,
		Param:     param,
		Momentary: isBool && on,
	})
	return nil
}

// Bindings returns the bindings in command name order.
func (t *Table) Bindings() []Binding {
	out := append([]Binding(nil), t.bindings...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Command < out[j].Command })
	return out
}

// Lookup returns the binding for a shortcut.
func (t *Table) Lookup(ks KeyShortcut) (Binding, bool) {
	i, ok := t.byKey[ks]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// Dispatch invokes the command bound to e. Presses invoke with the bound
// parameter; releases of momentary bindings invoke with false. It reports
// whether a binding matched.
func (t *Table) Dispatch(inv Invoker, e key.Event) (bool, error) {
	b, ok := t.Lookup(FromEvent(e))
	if !ok {
		return false, nil
	}
	switch e.Direction {
	case key.DirPress:
		return true, inv.Invoke(b.Command, b.Param)
	case key.DirRelease:
		if b.Momentary {
			return true, inv.Invoke(b.Command, action.Bool(false))
		}
	}
	return true, nil
}

// Defaults returns the application's accelerator table.
func Defaults() *Table {
	t, err := NewTable(
		[2]string{"<Ctrl>question", "keyboard-shortcuts"},
		[2]string{"<Ctrl>q", "quit"},
		[2]string{"F9", "open-canvasmenu"},
		[2]string{"F10", "open-appmenu"},
		[2]string{"<Ctrl>n", "new-sheet"},
		[2]string{"<Ctrl>o", "open-sheet"},
		[2]string{"<Ctrl>s", "save-sheet"},
		[2]string{"<Ctrl><Shift>s", "save-sheet-as"},
		[2]string{"<Ctrl>l", "clear-sheet"},
		[2]string{"<Ctrl>p", "print-sheet"},
		[2]string{"<Ctrl>i", "import-file"},
		[2]string{"<Ctrl>c", "copy-sheet"},
		[2]string{"plus", "zoom-in"},
		[2]string{"minus", "zoom-out"},
		[2]string{"Delete", "delete-selection"},
		[2]string{"<Ctrl>v", "duplicate-selection"},
		[2]string{"d", "tmperaser(true)"},
	)
	if err != nil {
		panic(err)
	}
	return t
}
