// Package toolmode holds the exclusive-choice state of the editor: the active
// pen, the shaper's shape and draw style, the renderer backend, and the
// boolean editor flags.
//
// Every slot is an Axis. An axis always holds exactly one of its variants and
// only changes through Set, which ignores repeated values and notifies
// observers in the order they subscribed.
package toolmode

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidVariant indicates a value outside an axis' variant set.
	ErrInvalidVariant = errors.New("invalid variant")
	// ErrReentrantTransition indicates an observer tried to change the axis
	// that is currently notifying it.
	ErrReentrantTransition = errors.New("re-entrant transition")
)

// InvalidVariantError reports a rejected value for an axis.
type InvalidVariantError struct {
	Axis  string
	Value string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("%s: invalid variant %q", e.Axis, e.Value)
}

// Is reports whether target is ErrInvalidVariant.
func (e *InvalidVariantError) Is(target error) bool { return target == ErrInvalidVariant }

// Axis is a single exclusive choice among a closed set of variants.
type Axis[T comparable] struct {
	name      string
	current   T
	variants  []T
	observers []func(T)
	notifying bool
}

// NewAxis creates an axis starting at initial. It panics if initial is not
// one of variants, since that is a wiring mistake rather than user input.
func NewAxis[T comparable](name string, initial T, variants ...T) *Axis[T] {
	if !slices.Contains(variants, initial) {
		panic(fmt.Sprintf("toolmode: axis %s: initial value %v is not a variant", name, initial))
	}
	return &Axis[T]{
		name:     name,
		current:  initial,
		variants: slices.Clone(variants),
	}
}

// Name returns the axis name.
func (a *Axis[T]) Name() string { return a.name }

// Current returns the active variant.
func (a *Axis[T]) Current() T { return a.current }

// Variants returns a copy of the allowed variants.
func (a *Axis[T]) Variants() []T { return slices.Clone(a.variants) }

// Valid reports whether v is one of the axis variants.
func (a *Axis[T]) Valid(v T) bool { return slices.Contains(a.variants, v) }

// Observe subscribes fn to every accepted transition.
func (a *Axis[T]) Observe(fn func(T)) {
	if fn == nil {
		return
	}
	a.observers = append(a.observers, fn)
}

// Set moves the axis to v and reports whether it changed. Setting the
// current value is a no-op and notifies nobody. A rejected value leaves the
// axis untouched.
func (a *Axis[T]) Set(v T) (bool, error) {
	if !a.Valid(v) {
		return false, &InvalidVariantError{Axis: a.name, Value: fmt.Sprint(v)}
	}
	if v == a.current {
		return false, nil
	}
	if a.notifying {
		return false, fmt.Errorf("%s: %w", a.name, ErrReentrantTransition)
	}
	a.current = v
	a.notifying = true
	defer func() { a.notifying = false }()
	for _, fn := range a.observers {
		fn(v)
	}
	return true, nil
}

// Flag is a two-variant axis.
type Flag = Axis[bool]

// NewFlag creates a boolean axis.
func NewFlag(name string, initial bool) *Flag {
	return NewAxis(name, initial, false, true)
}
