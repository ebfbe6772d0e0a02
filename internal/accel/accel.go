// Package accel maps keyboard chords to commands.
//
// Chords use the accelerator notation of desktop toolkits: optional
// modifiers in angle brackets followed by a key name, for example
// "<Ctrl><Shift>s", "F9", "plus" or "Delete".
package accel

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"

	"github.com/example/penmode/internal/action"
)

// KeyShortcut describes a keyboard combination. Printable keys match on
// Rune, everything else on Code.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (k KeyShortcut) String() string {
	var b strings.Builder
	for _, m := range modifierNames {
		if k.Modifiers&m.mod != 0 {
			b.WriteString("<" + m.name + ">")
		}
	}
	if k.Rune != 0 {
		for name, r := range runeNames {
			if r == k.Rune {
				b.WriteString(name)
				return b.String()
			}
		}
		b.WriteRune(k.Rune)
		return b.String()
	}
	for name, c := range codeNames {
		if c == k.Code {
			b.WriteString(name)
			return b.String()
		}
	}
	fmt.Fprintf(&b, "code%d", int(k.Code))
	return b.String()
}

var modifierNames = []struct {
	name string
	mod  key.Modifiers
}{
	{"Ctrl", key.ModControl},
	{"Shift", key.ModShift},
	{"Alt", key.ModAlt},
	{"Super", key.ModMeta},
}

var runeNames = map[string]rune{
	"plus":     '+',
	"minus":    '-',
	"question": '?',
	"space":    ' ',
	"equal":    '=',
	"period":   '.',
	"comma":    ',',
	"slash":    '/',
}

var codeNames = map[string]key.Code{
	"F1":        key.CodeF1,
	"F2":        key.CodeF2,
	"F3":        key.CodeF3,
	"F4":        key.CodeF4,
	"F5":        key.CodeF5,
	"F6":        key.CodeF6,
	"F7":        key.CodeF7,
	"F8":        key.CodeF8,
	"F9":        key.CodeF9,
	"F10":       key.CodeF10,
	"F11":       key.CodeF11,
	"F12":       key.CodeF12,
	"Delete":    key.CodeDeleteForward,
	"BackSpace": key.CodeDeleteBackspace,
	"Escape":    key.CodeEscape,
	"Return":    key.CodeReturnEnter,
	"Tab":       key.CodeTab,
	"Home":      key.CodeHome,
	"End":       key.CodeEnd,
	"Left":      key.CodeLeftArrow,
	"Right":     key.CodeRightArrow,
	"Up":        key.CodeUpArrow,
	"Down":      key.CodeDownArrow,
}

// ParseChord parses an accelerator string.
func ParseChord(s string) (KeyShortcut, error) {
	var ks KeyShortcut
	rest := strings.TrimSpace(s)
	for strings.HasPrefix(rest, "<") {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return KeyShortcut{}, fmt.Errorf("chord %q: unterminated modifier", s)
		}
		name := rest[1:end]
		found := false
		for _, m := range modifierNames {
			if strings.EqualFold(m.name, name) || (m.mod == key.ModControl && strings.EqualFold(name, "Primary")) {
				ks.Modifiers |= m.mod
				found = true
				break
			}
		}
		if !found {
			return KeyShortcut{}, fmt.Errorf("chord %q: unknown modifier %q", s, name)
		}
		rest = rest[end+1:]
	}
	if rest == "" {
		return KeyShortcut{}, fmt.Errorf("chord %q: missing key", s)
	}
	if r, ok := runeNames[rest]; ok {
		ks.Rune = r
		return ks, nil
	}
	if c, ok := codeNames[rest]; ok {
		ks.Code = c
		return ks, nil
	}
	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		ks.Rune = unicode.ToLower(r)
		return ks, nil
	}
	return KeyShortcut{}, fmt.Errorf("chord %q: unknown key %q", s, rest)
}

// FromEvent returns the shortcut a key event matches. Shift is dropped for
// punctuation since it is needed to type the rune itself.
func FromEvent(e key.Event) KeyShortcut {
	mods := e.Modifiers
	if e.Rune > 0 && unicode.IsPrint(e.Rune) && e.Rune != ' ' {
		if !unicode.IsLetter(e.Rune) {
			mods &^= key.ModShift
		}
		return KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}
	}
	return KeyShortcut{Code: e.Code, Modifiers: mods}
}

// Binding ties a chord to a command invocation.
type Binding struct {
	Chord    string
	Shortcut KeyShortcut
	Command  string
	Param    action.Variant
	// Momentary bindings invoke the command with false when the key is
	// released.
	Momentary bool
}

// Target formats the command and parameter as written in tables, such as
// tmperaser(true).
func (b Binding) Target() string {
	if b.Param.Type() == action.TypeNone {
		return b.Command
	}
	return b.Command + "(" + b.Param.String() + ")"
}

// ParseTarget splits "name(param)" into a command name and literal parameter.
func ParseTarget(s string) (string, action.Variant, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, action.None, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", action.None, fmt.Errorf("target %q: missing closing parenthesis", s)
	}
	return s[:open], action.ParseLiteral(s[open+1 : len(s)-1]), nil
}
