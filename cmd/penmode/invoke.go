package main

import (
	"flag"
	"fmt"

	"github.com/example/penmode/internal/accel"
	"github.com/example/penmode/internal/appstate"
)

type invokeCmd struct {
	r          *root
	fs         *flag.FlagSet
	output     string
	saveConfig bool
}

func parseInvokeCmd(args []string, r *root) (*invokeCmd, error) {
	fs := flag.NewFlagSet("invoke", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &invokeCmd{r: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "file save-sheet writes to")
	fs.BoolVar(&c.saveConfig, "save-config", false, "write changed settings back after the last command")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *invokeCmd) Program() string { return c.r.subcommand("invoke") }

func (c *invokeCmd) FlagSet() *flag.FlagSet { return c.fs }

// Run invokes each target in order and prints the state of the stateful
// ones. It stops at the first failure.
func (c *invokeCmd) Run() error {
	st, err := c.r.newState(appstate.WithOutput(c.output))
	if err != nil {
		return err
	}
	for _, target := range c.fs.Args() {
		name, param, err := accel.ParseTarget(target)
		if err != nil {
			return err
		}
		if err := st.Invoke(name, param); err != nil {
			return fmt.Errorf("invoke %s: %w", target, err)
		}
		if v, ok := st.Registry.State(name); ok {
			fmt.Fprintf(c.r.stdout, "%s = %s\n", name, v)
		}
	}
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
