package action

import "fmt"

// Kind classifies a command by the state it owns.
type Kind int

const (
	KindStateless Kind = iota
	KindBool
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindStateless:
		return "stateless"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	}
	return "unknown"
}

// Cell is a typed slot with idempotent, observable updates. toolmode axes
// and the override controller satisfy it.
type Cell[T comparable] interface {
	Current() T
	Set(T) (bool, error)
	Observe(func(T))
}

// State is the persistent value behind a stateful command.
type State interface {
	Type() VariantType
	Value() Variant
	// Apply validates v and moves the state to it, reporting whether it
	// changed. Observers run inside Apply.
	Apply(v Variant) (bool, error)
	Observe(fn func(Variant))
}

// Command is a named, invocable unit. Stateless commands run a callback;
// stateful commands own a State and every invocation is a state change.
type Command struct {
	name     string
	kind     Kind
	param    VariantType
	state    State
	activate func(Variant)
	enabled  bool
}

// NewStateless creates a command without parameter or state.
func NewStateless(name string, fn func()) *Command {
	return &Command{
		name:     name,
		kind:     KindStateless,
		activate: func(Variant) { fn() },
		enabled:  true,
	}
}

// NewStatelessParam creates a stateless command taking a parameter of type param.
func NewStatelessParam(name string, param VariantType, fn func(Variant)) *Command {
	return &Command{
		name:     name,
		kind:     KindStateless,
		param:    param,
		activate: fn,
		enabled:  true,
	}
}

// NewBool creates a boolean command backed by cell.
func NewBool(name string, cell Cell[bool]) *Command {
	return &Command{
		name:    name,
		kind:    KindBool,
		param:   TypeBool,
		state:   boolState{cell: cell},
		enabled: true,
	}
}

// NewEnum creates a command over an enum cell. Parameters are tags that
// parse turns into variants; the state is reported with the variant's
// String form.
func NewEnum[T comparable](name string, cell Cell[T], parse func(string) (T, error)) *Command {
	return &Command{
		name:    name,
		kind:    KindEnum,
		param:   TypeString,
		state:   enumState[T]{cell: cell, parse: parse},
		enabled: true,
	}
}

// Name returns the registry key.
func (c *Command) Name() string { return c.name }

// Kind returns the command kind.
func (c *Command) Kind() Kind { return c.kind }

// Param returns the accepted parameter type.
func (c *Command) Param() VariantType { return c.param }

// Enabled reports whether the command can be activated.
func (c *Command) Enabled() bool { return c.enabled }

// State returns the current value of a stateful command.
func (c *Command) State() (Variant, bool) {
	if c.state == nil {
		return None, false
	}
	return c.state.Value(), true
}

type boolState struct {
	cell Cell[bool]
}

func (s boolState) Type() VariantType { return TypeBool }

func (s boolState) Value() Variant { return Bool(s.cell.Current()) }

func (s boolState) Apply(v Variant) (bool, error) {
	b, _ := v.Bool()
	return s.cell.Set(b)
}

func (s boolState) Observe(fn func(Variant)) {
	s.cell.Observe(func(b bool) { fn(Bool(b)) })
}

type enumState[T comparable] struct {
	cell  Cell[T]
	parse func(string) (T, error)
}

func (s enumState[T]) Type() VariantType { return TypeString }

func (s enumState[T]) Value() Variant { return Str(fmt.Sprint(s.cell.Current())) }

func (s enumState[T]) Apply(v Variant) (bool, error) {
	tag, _ := v.Str()
	val, err := s.parse(tag)
	if err != nil {
		return false, err
	}
	return s.cell.Set(val)
}

func (s enumState[T]) Observe(fn func(Variant)) {
	s.cell.Observe(func(val T) { fn(Str(fmt.Sprint(val))) })
}
