package config

import (
	"fmt"
	"strings"

	"github.com/example/penmode/internal/toolmode"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Config holds the persisted editor settings.
type Config struct {
	Righthanded      bool
	Devel            bool
	VisualDebug      bool
	Backend          toolmode.Backend
	FormatBorders    bool
	TouchDrawing     bool
	AutoexpandHeight bool
	SaveDir          string
	Notify           Notify
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Righthanded:   true,
		Backend:       toolmode.BackendLibrsvg,
		FormatBorders: true,
		Notify: Notify{
			Save: true,
		},
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "righthanded = %v\n", c.Righthanded)
	fmt.Fprintf(&sb, "devel = %v\n", c.Devel)
	fmt.Fprintf(&sb, "visual_debug = %v\n", c.VisualDebug)
	fmt.Fprintf(&sb, "renderer_backend = %s\n", c.Backend)
	fmt.Fprintf(&sb, "format_borders = %v\n", c.FormatBorders)
	fmt.Fprintf(&sb, "touch_drawing = %v\n", c.TouchDrawing)
	fmt.Fprintf(&sb, "autoexpand_height = %v\n", c.AutoexpandHeight)
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}
