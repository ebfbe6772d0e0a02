package main

import (
	"flag"
	"fmt"

	"github.com/example/penmode/internal/appstate"
	"github.com/example/penmode/internal/render"
	"github.com/example/penmode/internal/sheet"
)

type runCmd struct {
	r          *root
	fs         *flag.FlagSet
	output     string
	width      int
	height     int
	saveConfig bool
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &runCmd{r: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "file save-sheet writes to")
	fs.IntVar(&c.width, "width", 1024, "window width")
	fs.IntVar(&c.height, "height", 768, "window height")
	fs.BoolVar(&c.saveConfig, "save-config", true, "write changed settings back on exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", c.width, c.height)
	}
	return c, nil
}

func (c *runCmd) Program() string { return c.r.subcommand("run") }

func (c *runCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *runCmd) Run() error {
	doc := sheet.New(sheet.A4())
	canvas := render.NewCanvas(doc,
		render.WithBackend(c.r.config.Backend),
		render.WithViewport(c.width, c.height))
	st, err := c.r.newState(
		appstate.WithDocument(doc),
		appstate.WithRenderer(canvas),
		appstate.WithOutput(c.output),
	)
	if err != nil {
		return err
	}
	st.Run()
	if !c.saveConfig {
		return nil
	}
	path, err := c.r.loader.Save(st.Config())
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	fmt.Fprintf(c.r.stderr, "Configuration saved to %s\n", path)
	return nil
}
