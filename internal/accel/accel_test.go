package accel

import (
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/penmode/internal/action"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want KeyShortcut
	}{
		{"d", KeyShortcut{Rune: 'd'}},
		{"<Ctrl>q", KeyShortcut{Rune: 'q', Modifiers: key.ModControl}},
		{"<Ctrl><Shift>s", KeyShortcut{Rune: 's', Modifiers: key.ModControl | key.ModShift}},
		{"<Ctrl>question", KeyShortcut{Rune: '?', Modifiers: key.ModControl}},
		{"F9", KeyShortcut{Code: key.CodeF9}},
		{"plus", KeyShortcut{Rune: '+'}},
		{"Delete", KeyShortcut{Code: key.CodeDeleteForward}},
		{"<Primary>S", KeyShortcut{Rune: 's', Modifiers: key.ModControl}},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.in)
		if err != nil {
			t.Fatalf("ParseChord(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseChord(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseChordErrors(t *testing.T) {
	for _, in := range []string{"", "<Ctrl>", "<Ctrl", "<Hyper>a", "Nope"} {
		if _, err := ParseChord(in); err == nil {
			t.Errorf("ParseChord(%q) should fail", in)
		}
	}
}

func TestShortcutString(t *testing.T) {
	for _, in := range []string{"<Ctrl><Shift>s", "F9", "plus", "Delete", "d"} {
		ks, err := ParseChord(in)
		if err != nil {
			t.Fatal(err)
		}
		if ks.String() != in {
			t.Errorf("String() = %q, want %q", ks.String(), in)
		}
	}
}

func TestParseTarget(t *testing.T) {
	name, param, err := ParseTarget("tmperaser(true)")
	if err != nil || name != "tmperaser" || param != action.Bool(true) {
		t.Fatalf("got %q %v %v", name, param, err)
	}
	name, param, err = ParseTarget("current-pen('eraser')")
	if err != nil || name != "current-pen" || param != action.Str("eraser") {
		t.Fatalf("got %q %v %v", name, param, err)
	}
	if _, _, err := ParseTarget("current-pen('eraser'"); err == nil {
		t.Fatalf("expected error for missing parenthesis")
	}
}

type call struct {
	name string
	v    action.Variant
}

type recorder struct{ calls []call }

func (r *recorder) Invoke(name string, v action.Variant) error {
	r.calls = append(r.calls, call{name, v})
	return nil
}

func TestDispatchMomentary(t *testing.T) {
	tbl := Defaults()
	rec := &recorder{}
	press := key.Event{Rune: 'd', Code: key.CodeD, Direction: key.DirPress}
	release := press
	release.Direction = key.DirRelease

	if ok, err := tbl.Dispatch(rec, press); !ok || err != nil {
		t.Fatalf("press: %v %v", ok, err)
	}
	if ok, err := tbl.Dispatch(rec, release); !ok || err != nil {
		t.Fatalf("release: %v %v", ok, err)
	}
	want := []call{{"tmperaser", action.Bool(true)}, {"tmperaser", action.Bool(false)}}
	if len(rec.calls) != 2 || rec.calls[0] != want[0] || rec.calls[1] != want[1] {
		t.Fatalf("calls = %+v", rec.calls)
	}
}

func TestDispatchShiftedPunctuationAndRelease(t *testing.T) {
	tbl := Defaults()
	rec := &recorder{}
	e := key.Event{Rune: '?', Code: key.CodeSlash, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress}
	if ok, _ := tbl.Dispatch(rec, e); !ok {
		t.Fatalf("<Ctrl>question not matched")
	}
	e.Direction = key.DirRelease
	_, _ = tbl.Dispatch(rec, e)
	if len(rec.calls) != 1 || rec.calls[0].name != "keyboard-shortcuts" {
		t.Fatalf("calls = %+v", rec.calls)
	}
}

func TestDispatchSaveAs(t *testing.T) {
	tbl := Defaults()
	rec := &recorder{}
	e := key.Event{Rune: 'S', Code: key.CodeS, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress}
	_, _ = tbl.Dispatch(rec, e)
	if len(rec.calls) != 1 || rec.calls[0].name != "save-sheet-as" {
		t.Fatalf("calls = %+v", rec.calls)
	}
}

func TestDispatchUnbound(t *testing.T) {
	rec := &recorder{}
	ok, err := Defaults().Dispatch(rec, key.Event{Rune: 'z', Direction: key.DirPress})
	if ok || err != nil || len(rec.calls) != 0 {
		t.Fatalf("unbound key dispatched: %v %v %v", ok, err, rec.calls)
	}
}

func TestDuplicateChord(t *testing.T) {
	if _, err := NewTable([2]string{"d", "a"}, [2]string{"d", "b"}); err == nil {
		t.Fatalf("expected duplicate chord error")
	}
}
