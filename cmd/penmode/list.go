package main

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/example/penmode/internal/accel"
)

type commandsCmd struct {
	r  *root
	fs *flag.FlagSet
}

func parseCommandsCmd(args []string, r *root) (*commandsCmd, error) {
	fs := flag.NewFlagSet("commands", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &commandsCmd{r: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *commandsCmd) Program() string { return c.r.subcommand("commands") }

func (c *commandsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *commandsCmd) Run() error {
	st, err := c.r.newState()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.r.stdout, 0, 4, 2, ' ', 0)
	for _, name := range st.Registry.Names() {
		cmd, _ := st.Registry.Lookup(name)
		state := ""
		if v, ok := cmd.State(); ok {
			state = v.String()
		}
		enabled := ""
		if !cmd.Enabled() {
			enabled = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, cmd.Kind(), state, enabled)
	}
	return w.Flush()
}

type accelsCmd struct {
	r  *root
	fs *flag.FlagSet
}

func parseAccelsCmd(args []string, r *root) (*accelsCmd, error) {
	fs := flag.NewFlagSet("accels", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &accelsCmd{r: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *accelsCmd) Program() string { return c.r.subcommand("accels") }

func (c *accelsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *accelsCmd) Run() error {
	w := tabwriter.NewWriter(c.r.stdout, 0, 4, 2, ' ', 0)
	for _, b := range accel.Defaults().Bindings() {
		fmt.Fprintf(w, "%s\t%s\n", b.Chord, b.Target())
	}
	return w.Flush()
}
