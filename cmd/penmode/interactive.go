package main

import (
	"bufio"
	"flag"
	"fmt"
	"strings"

	"github.com/example/penmode/internal/action"
	"github.com/example/penmode/internal/appstate"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type interactiveCmd struct {
	r     *root
	fs    *flag.FlagSet
	execs commandList

	state *appstate.AppState
	done  bool
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &interactiveCmd{r: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command line and exit (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *interactiveCmd) Program() string { return c.r.subcommand("interactive") }

func (c *interactiveCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *interactiveCmd) Run() error {
	st, err := c.r.newState(appstate.WithOnQuit(func() { c.done = true }))
	if err != nil {
		return err
	}
	c.state = st

	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.r.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.r.stdin)
	for {
		fmt.Fprint(c.r.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.r.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one line of the form "name [value]" or a builtin. It
// reports whether the session should end.
func (c *interactiveCmd) executeLine(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	switch name {
	case "exit":
		return true, nil
	case "help":
		c.printHelp()
		return false, nil
	case "state":
		c.printState(rest)
		return false, nil
	}

	cmd, ok := c.state.Registry.Lookup(name)
	if !ok {
		// Let the registry produce the suggestion.
		return false, c.state.Invoke(name, action.None)
	}
	v, err := action.ParseFor(cmd.Param(), rest)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	if err := c.state.Invoke(name, v); err != nil {
		return false, err
	}
	if s, ok := cmd.State(); ok {
		fmt.Fprintf(c.r.stdout, "%s = %s\n", name, s)
	}
	return c.done, nil
}

func (c *interactiveCmd) printHelp() {
	fmt.Fprintln(c.r.stdout, "builtins: help, state [name], exit")
	fmt.Fprintln(c.r.stdout, "commands: "+strings.Join(c.state.Registry.Names(), ", "))
}

func (c *interactiveCmd) printState(name string) {
	if name != "" {
		if v, ok := c.state.Registry.State(name); ok {
			fmt.Fprintf(c.r.stdout, "%s = %s\n", name, v)
		} else {
			fmt.Fprintf(c.r.stdout, "%s has no state\n", name)
		}
		return
	}
	var lines []string
	for _, n := range c.state.Registry.Names() {
		if v, ok := c.state.Registry.State(n); ok {
			lines = append(lines, fmt.Sprintf("%s = %s", n, v))
		}
	}
	fmt.Fprintln(c.r.stdout, strings.Join(lines, "\n"))
}
