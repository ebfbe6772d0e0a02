package action

import (
	"errors"
	"fmt"

	"github.com/example/penmode/internal/toolmode"
)

var (
	// ErrUnknownCommand indicates a name with no registered command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateName indicates a second registration under the same name.
	ErrDuplicateName = errors.New("command already registered")
	// ErrTypeMismatch indicates a parameter whose shape the command does not accept.
	ErrTypeMismatch = errors.New("parameter type mismatch")
	// ErrCommandDisabled indicates an activation of a disabled command.
	ErrCommandDisabled = errors.New("command is disabled")

	// ErrInvalidVariant is returned when a stateful command rejects a value.
	ErrInvalidVariant = toolmode.ErrInvalidVariant
	// ErrReentrantTransition is returned when an observer changes the
	// command it is being notified about.
	ErrReentrantTransition = toolmode.ErrReentrantTransition
)

// UnknownCommandError reports an Invoke or SetState on an unregistered name.
type UnknownCommandError struct {
	Name string
	// Suggestion is the closest registered name, if any is close enough.
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

// DuplicateNameError reports a second Register for the same name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("command %q already registered", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// TypeMismatchError reports a parameter of the wrong shape.
type TypeMismatchError struct {
	Name string
	Want VariantType
	Got  VariantType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("command %q: expected %s parameter, got %s", e.Name, e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
