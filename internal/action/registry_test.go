package action

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/example/penmode/internal/override"
	"github.com/example/penmode/internal/toolmode"
)

type fixture struct {
	reg     *Registry
	state   *toolmode.State
	devel   *toolmode.Flag
	eraser  *override.Controller
	cleared int
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		reg:   NewRegistry(opts...),
		state: toolmode.NewState(toolmode.BackendLibrsvg),
		devel: toolmode.NewFlag("devel", false),
	}
	f.eraser = override.New(f.state.Pen)
	cmds := []*Command{
		NewStateless("clear-sheet", func() { f.cleared++ }),
		NewBool("devel", f.devel),
		NewBool(override.CommandName, f.eraser),
		NewEnum(toolmode.AxisPen, f.state.Pen, toolmode.ParsePenStyle),
		NewEnum(toolmode.AxisShape, f.state.Shape, toolmode.ParseShape),
		NewEnum(toolmode.AxisDrawStyle, f.state.DrawStyle, toolmode.ParseDrawStyle),
		NewEnum(toolmode.AxisBackend, f.state.Backend, toolmode.ParseBackend),
	}
	for _, c := range cmds {
		if err := f.reg.Register(c); err != nil {
			t.Fatalf("register %s: %v", c.Name(), err)
		}
	}
	return f
}

func TestStatelessRunsOncePerInvoke(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		if err := f.reg.Invoke("clear-sheet", None); err != nil {
			t.Fatalf("invoke: %v", err)
		}
	}
	if f.cleared != 3 {
		t.Fatalf("callback ran %d times, want 3", f.cleared)
	}
}

func TestStatelessIgnoresValue(t *testing.T) {
	f := newFixture(t)
	for _, v := range []Variant{Bool(true), Str("x")} {
		if err := f.reg.Invoke("clear-sheet", v); err != nil {
			t.Fatalf("Invoke(%v): %v", v, err)
		}
	}
	if f.cleared != 2 {
		t.Fatalf("callback ran %d times, want 2", f.cleared)
	}
}

func TestStatelessParam(t *testing.T) {
	reg := NewRegistry()
	var got []string
	if err := reg.Register(NewStatelessParam("import-file", TypeString, func(v Variant) {
		s, _ := v.Str()
		got = append(got, s)
	})); err != nil {
		t.Fatal(err)
	}
	if err := reg.Invoke("import-file", Str("a.png")); err != nil {
		t.Fatal(err)
	}
	if err := reg.Invoke("import-file", Bool(true)); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if len(got) != 1 || got[0] != "a.png" {
		t.Fatalf("got %v", got)
	}
}

func TestSetStateOnStatelessIsMismatch(t *testing.T) {
	f := newFixture(t)
	err := f.reg.SetState("clear-sheet", None)
	var tme *TypeMismatchError
	if !errors.As(err, &tme) || tme.Want != TypeNone {
		t.Fatalf("expected TypeMismatchError wanting none, got %v", err)
	}
}

func TestEnumSetStateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	var seen []Variant
	if err := f.reg.Observe(toolmode.AxisPen, func(v Variant) { seen = append(seen, v) }); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := f.reg.SetState(toolmode.AxisPen, Str("eraser")); err != nil {
			t.Fatal(err)
		}
	}
	if len(seen) != 1 || seen[0] != Str("eraser") {
		t.Fatalf("observers saw %v, want one eraser", seen)
	}
	if v, _ := f.reg.State(toolmode.AxisPen); v != Str("eraser") {
		t.Fatalf("state = %v", v)
	}
}

func TestEnumInvalidVariantLeavesState(t *testing.T) {
	f := newFixture(t)
	notified := false
	_ = f.reg.Observe(toolmode.AxisShape, func(Variant) { notified = true })
	err := f.reg.SetState(toolmode.AxisShape, Str("triangle"))
	if !errors.Is(err, ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}
	if f.state.Shape.Current() != toolmode.ShapeRectangle || notified {
		t.Fatalf("rejected value changed state")
	}
}

func TestEnumRequiresString(t *testing.T) {
	f := newFixture(t)
	for _, v := range []Variant{None, Bool(true)} {
		if err := f.reg.Invoke(toolmode.AxisPen, v); !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("Invoke(%v): expected ErrTypeMismatch, got %v", v, err)
		}
	}
}

func TestBoolInvokeWithoutValueToggles(t *testing.T) {
	f := newFixture(t)
	if err := f.reg.Invoke("devel", None); err != nil {
		t.Fatal(err)
	}
	if !f.devel.Current() {
		t.Fatalf("devel should be on")
	}
	if err := f.reg.Invoke("devel", None); err != nil {
		t.Fatal(err)
	}
	if f.devel.Current() {
		t.Fatalf("devel should be off")
	}
}

// record subscribes to every stateful command and returns the notifications
// in the order they arrive.
func (f *fixture) record(t *testing.T) *[]string {
	t.Helper()
	var seen []string
	for _, name := range []string{"devel", override.CommandName, toolmode.AxisPen, toolmode.AxisShape, toolmode.AxisDrawStyle, toolmode.AxisBackend} {
		name := name
		if err := f.reg.Observe(name, func(v Variant) { seen = append(seen, name+"="+v.String()) }); err != nil {
			t.Fatalf("observe %s: %v", name, err)
		}
	}
	return &seen
}

// setStateFor returns the value SetState needs to match Invoke(name, v).
func (f *fixture) setStateFor(name string, v Variant) Variant {
	cmd, _ := f.reg.Lookup(name)
	if cmd.Kind() != KindBool || v.Type() != TypeNone {
		return v
	}
	cur, _ := f.reg.State(name)
	b, _ := cur.Bool()
	return Bool(!b)
}

func TestInvokeEqualsSetState(t *testing.T) {
	params := map[string][]Variant{
		"devel":                {Bool(true), None, Bool(false), Bool(true)},
		override.CommandName:   {Bool(true), Bool(true), None, None, None, Bool(false)},
		toolmode.AxisPen:       {Str("brush"), Str("eraser"), Str("eraser"), Str("crayon"), Str("selector")},
		toolmode.AxisShape:     {Str("line"), Str("ellipse")},
		toolmode.AxisDrawStyle: {Str("rough"), Str("smooth")},
		toolmode.AxisBackend:   {Str("resvg"), Str("resvg"), Str("librsvg")},
	}
	for name, seq := range params {
		t.Run(name, func(t *testing.T) {
			a, b := newFixture(t), newFixture(t)
			seenA, seenB := a.record(t), b.record(t)
			for _, v := range seq {
				errA := a.reg.Invoke(name, v)
				errB := b.reg.SetState(name, b.setStateFor(name, v))
				if (errA == nil) != (errB == nil) {
					t.Fatalf("errors diverge for %v: %v vs %v", v, errA, errB)
				}
				sa, _ := a.reg.State(name)
				sb, _ := b.reg.State(name)
				if sa != sb {
					t.Fatalf("state diverges for %v: %v vs %v", v, sa, sb)
				}
			}
			if len(*seenA) == 0 {
				t.Fatalf("no notifications")
			}
			if !slices.Equal(*seenA, *seenB) {
				t.Fatalf("notifications diverge:\ninvoke: %v\nset:    %v", *seenA, *seenB)
			}
		})
	}
}

func TestTmpEraserToggleRestoresPen(t *testing.T) {
	f := newFixture(t)
	if err := f.reg.SetState(toolmode.AxisPen, Str("brush")); err != nil {
		t.Fatal(err)
	}
	seen := f.record(t)
	for i := 0; i < 2; i++ {
		if err := f.reg.Invoke(override.CommandName, None); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{
		"current-pen='eraser'", "tmperaser=true",
		"current-pen='brush'", "tmperaser=false",
	}
	if !slices.Equal(*seen, want) {
		t.Fatalf("notifications = %v, want %v", *seen, want)
	}
}

type recordHandler struct {
	records *[]slog.Record
}

func (h recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}

func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h recordHandler) WithGroup(string) slog.Handler { return h }

func TestRejectionLogLevels(t *testing.T) {
	tests := []struct {
		name  string
		run   func(f *fixture) error
		want  error
		level slog.Level
	}{
		{"unknown", func(f *fixture) error { return f.reg.Invoke("curent-pen", Str("brush")) }, ErrUnknownCommand, slog.LevelWarn},
		{"invalid variant", func(f *fixture) error { return f.reg.SetState(toolmode.AxisPen, Str("crayon")) }, ErrInvalidVariant, slog.LevelWarn},
		{"disabled", func(f *fixture) error {
			if err := f.reg.SetEnabled("clear-sheet", false); err != nil {
				return err
			}
			return f.reg.Invoke("clear-sheet", None)
		}, ErrCommandDisabled, slog.LevelWarn},
		{"duplicate", func(f *fixture) error { return f.reg.Register(NewStateless("clear-sheet", func() {})) }, ErrDuplicateName, slog.LevelError},
		{"type mismatch", func(f *fixture) error { return f.reg.Invoke(toolmode.AxisPen, Bool(true)) }, ErrTypeMismatch, slog.LevelError},
		{"reentrant", func(f *fixture) error {
			var inner error
			if err := f.reg.Observe(toolmode.AxisPen, func(Variant) {
				inner = f.reg.SetState(toolmode.AxisPen, Str("brush"))
			}); err != nil {
				return err
			}
			if err := f.reg.SetState(toolmode.AxisPen, Str("eraser")); err != nil {
				return err
			}
			return inner
		}, ErrReentrantTransition, slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []slog.Record
			f := newFixture(t, WithLogger(slog.New(recordHandler{records: &records})))
			if err := tt.run(f); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var levels []slog.Level
			for _, r := range records {
				if r.Level > slog.LevelDebug {
					levels = append(levels, r.Level)
				}
			}
			if len(levels) != 1 || levels[0] != tt.level {
				t.Fatalf("levels = %v, want [%v]", levels, tt.level)
			}
		})
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	f := newFixture(t)
	err := f.reg.Invoke("curent-pen", Str("eraser"))
	var uce *UnknownCommandError
	if !errors.As(err, &uce) {
		t.Fatalf("expected UnknownCommandError, got %v", err)
	}
	if uce.Suggestion != toolmode.AxisPen {
		t.Fatalf("suggestion = %q", uce.Suggestion)
	}
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand")
	}
	if err := f.reg.SetState("zzzzzzzzzz", None); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	f := newFixture(t)
	err := f.reg.Register(NewStateless("clear-sheet", func() {}))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if err := f.reg.Invoke("clear-sheet", None); err != nil || f.cleared != 1 {
		t.Fatalf("original command replaced")
	}
}

func TestDisabledCommand(t *testing.T) {
	f := newFixture(t)
	if err := f.reg.SetEnabled("clear-sheet", false); err != nil {
		t.Fatal(err)
	}
	if err := f.reg.Invoke("clear-sheet", None); !errors.Is(err, ErrCommandDisabled) {
		t.Fatalf("expected ErrCommandDisabled, got %v", err)
	}
	if f.cleared != 0 {
		t.Fatalf("disabled command ran")
	}
}

func TestSetStateIgnoresDisabled(t *testing.T) {
	f := newFixture(t)
	if err := f.reg.SetEnabled("devel", false); err != nil {
		t.Fatal(err)
	}
	if err := f.reg.Invoke("devel", Bool(true)); !errors.Is(err, ErrCommandDisabled) {
		t.Fatalf("expected ErrCommandDisabled, got %v", err)
	}
	if err := f.reg.SetState("devel", Bool(true)); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if !f.devel.Current() {
		t.Fatalf("devel should be on")
	}
}

func TestReentrantObserverIsRejected(t *testing.T) {
	f := newFixture(t)
	var inner error
	_ = f.reg.Observe(toolmode.AxisPen, func(v Variant) {
		if v == Str("eraser") {
			inner = f.reg.SetState(toolmode.AxisPen, Str("marker"))
		}
	})
	if err := f.reg.SetState(toolmode.AxisPen, Str("eraser")); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrReentrantTransition) {
		t.Fatalf("expected ErrReentrantTransition, got %v", inner)
	}
	if f.state.Pen.Current() != toolmode.PenEraser {
		t.Fatalf("pen = %v", f.state.Pen.Current())
	}
}

func TestNamesSorted(t *testing.T) {
	f := newFixture(t)
	names := f.reg.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	if len(names) != 7 {
		t.Fatalf("got %d names", len(names))
	}
}
