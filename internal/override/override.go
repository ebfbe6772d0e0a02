// Package override implements the temporary eraser: while active the pen
// axis is forced to the eraser and the previously selected pen is restored
// exactly when the override ends.
package override

import (
	"log/slog"

	"github.com/example/penmode/internal/logging"
	"github.com/example/penmode/internal/toolmode"
)

// CommandName is the command the controller is registered under.
const CommandName = "tmperaser"

// frame holds the pen that was active when the override began.
type frame struct {
	saved toolmode.PenStyle
}

// Controller is a two state machine, Normal and Overridden, layered on the
// pen axis. It satisfies action.Cell[bool] so it can back the boolean
// tmperaser command directly.
type Controller struct {
	pen    *toolmode.Axis[toolmode.PenStyle]
	active *toolmode.Flag
	frame  *frame
	log    *slog.Logger
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.log = l } }

// New creates a controller over pen in the Normal state.
func New(pen *toolmode.Axis[toolmode.PenStyle], opts ...Option) *Controller {
	c := &Controller{
		pen:    pen,
		active: toolmode.NewFlag(CommandName, false),
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = logging.Logger()
	}
	return c
}

// Active reports whether an override is in effect.
func (c *Controller) Active() bool { return c.frame != nil }

// Saved returns the pen that End will restore.
func (c *Controller) Saved() (toolmode.PenStyle, bool) {
	if c.frame == nil {
		return 0, false
	}
	return c.frame.saved, true
}

// Begin saves the current pen and switches to the eraser. It does nothing
// while an override is already active, so the saved pen is never replaced
// by the eraser itself.
func (c *Controller) Begin() (bool, error) {
	if c.frame != nil {
		c.log.Debug("override already active", "saved", c.frame.saved)
		return false, nil
	}
	saved := c.pen.Current()
	if _, err := c.pen.Set(toolmode.PenEraser); err != nil {
		return false, err
	}
	c.frame = &frame{saved: saved}
	c.log.Debug("override begin", "saved", saved)
	return c.active.Set(true)
}

// End restores the saved pen and clears the frame. It does nothing when no
// override is active.
func (c *Controller) End() (bool, error) {
	if c.frame == nil {
		return false, nil
	}
	saved := c.frame.saved
	if _, err := c.pen.Set(saved); err != nil {
		return false, err
	}
	c.frame = nil
	c.log.Debug("override end", "restored", saved)
	return c.active.Set(false)
}

// Set begins or ends the override.
func (c *Controller) Set(on bool) (bool, error) {
	if on {
		return c.Begin()
	}
	return c.End()
}

// Toggle flips between Normal and Overridden.
func (c *Controller) Toggle() (bool, error) { return c.Set(!c.Active()) }

// Current reports whether an override is in effect.
func (c *Controller) Current() bool { return c.Active() }

// Name returns the command name of the override.
func (c *Controller) Name() string { return CommandName }

// Observe subscribes fn to override state changes.
func (c *Controller) Observe(fn func(bool)) { c.active.Observe(fn) }
