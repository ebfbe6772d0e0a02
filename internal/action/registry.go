// Package action is the command registry of the editor. Every user-facing
// operation is a named command; commands that own state change it only
// through the registry so the idempotence guard is never bypassed.
//
// Invoking a stateful command is the same as setting its state: Invoke and
// SetState both end in applyTransition.
package action

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/example/penmode/internal/logging"
)

// Registry owns all commands of the application.
type Registry struct {
	commands map[string]*Command
	log      *slog.Logger
}

// Option modifies a Registry during creation.
type Option func(*Registry)

// WithLogger sets the logger rejected calls are reported to.
func WithLogger(l *slog.Logger) Option { return func(r *Registry) { r.log = l } }

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = logging.Logger()
	}
	return r
}

// Register adds cmd. A name can only be registered once.
func (r *Registry) Register(cmd *Command) error {
	if _, exists := r.commands[cmd.name]; exists {
		err := &DuplicateNameError{Name: cmd.name}
		r.log.Error("register command", "command", cmd.name, "err", err)
		return err
	}
	r.commands[cmd.name] = cmd
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke activates the named command. Stateless commands run their callback
// exactly once. Stateful commands apply v as their new state; a boolean
// command invoked without a value toggles.
func (r *Registry) Invoke(name string, v Variant) error {
	cmd, err := r.resolve(name)
	if err != nil {
		return err
	}
	if !cmd.enabled {
		err := &disabledError{name: name}
		r.log.Warn("invoke command", "command", name, "err", err)
		return err
	}
	if cmd.state == nil {
		if cmd.param != TypeNone && v.Type() != cmd.param {
			return r.mismatch(cmd, v)
		}
		r.log.Debug("activate", "command", name, "param", v.String())
		cmd.activate(v)
		return nil
	}
	if cmd.kind == KindBool && v.Type() == TypeNone {
		cur, _ := cmd.state.Value().Bool()
		v = Bool(!cur)
	}
	return r.applyTransition(cmd, v)
}

// SetState sets the state of the named stateful command to v. It ignores
// the enabled flag; SetEnabled only gates Invoke.
func (r *Registry) SetState(name string, v Variant) error {
	cmd, err := r.resolve(name)
	if err != nil {
		return err
	}
	if cmd.state == nil {
		return r.mismatch(cmd, v)
	}
	return r.applyTransition(cmd, v)
}

// State returns the state of the named command.
func (r *Registry) State(name string) (Variant, bool) {
	cmd, ok := r.commands[name]
	if !ok {
		return None, false
	}
	return cmd.State()
}

// Observe subscribes fn to every accepted state change of the named command.
func (r *Registry) Observe(name string, fn func(Variant)) error {
	cmd, err := r.resolve(name)
	if err != nil {
		return err
	}
	if cmd.state == nil {
		return r.mismatch(cmd, None)
	}
	cmd.state.Observe(fn)
	return nil
}

// SetEnabled enables or disables activation of the named command.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	cmd, err := r.resolve(name)
	if err != nil {
		return err
	}
	cmd.enabled = enabled
	return nil
}

func (r *Registry) applyTransition(cmd *Command, v Variant) error {
	if v.Type() != cmd.state.Type() {
		return r.mismatch(cmd, v)
	}
	changed, err := cmd.state.Apply(v)
	if err != nil {
		if errors.Is(err, ErrInvalidVariant) {
			r.log.Warn("set state", "command", cmd.name, "value", v.String(), "err", err)
		} else {
			r.log.Error("set state", "command", cmd.name, "value", v.String(), "err", err)
		}
		return err
	}
	r.log.Debug("set state", "command", cmd.name, "value", v.String(), "changed", changed)
	return nil
}

func (r *Registry) resolve(name string) (*Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	err := &UnknownCommandError{Name: name, Suggestion: r.suggest(name)}
	r.log.Warn("resolve command", "command", name, "err", err)
	return nil, err
}

func (r *Registry) mismatch(cmd *Command, v Variant) error {
	want := cmd.param
	if cmd.state != nil {
		want = cmd.state.Type()
	}
	err := &TypeMismatchError{Name: cmd.name, Want: want, Got: v.Type()}
	r.log.Error("command parameter", "command", cmd.name, "err", err)
	return err
}

// suggest returns the registered name closest to name, if it is within a
// third of the name's length.
func (r *Registry) suggest(name string) string {
	best := ""
	bestDist := len(name)/3 + 1
	for _, candidate := range r.Names() {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

type disabledError struct {
	name string
}

func (e *disabledError) Error() string { return "command " + e.name + " is disabled" }

func (e *disabledError) Is(target error) bool { return target == ErrCommandDisabled }
