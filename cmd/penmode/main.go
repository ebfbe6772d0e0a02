package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/penmode/internal/appstate"
	"github.com/example/penmode/internal/config"
	"github.com/example/penmode/internal/logging"
	"github.com/example/penmode/internal/notify"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	config   *config.Config
	loader   *config.Loader
	notifier *notify.Notifier

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose      bool
	configPath   string
	saveAlerts   bool
	exportAlerts bool
	copyAlerts   bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot(stdin io.Reader, stdout, stderr io.Writer) *root {
	r := &root{
		fs:      flag.NewFlagSet("penmode", flag.ContinueOnError),
		program: "penmode",
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
	r.fs.SetOutput(stderr)
	r.fs.BoolVar(&r.verbose, "v", false, "log debug output to stderr")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "settings file to read and write")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving a sheet")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the settings file. Notification flags given on the
// command line override the [notify] section.
func (r *root) loadConfig() {
	logging.SetLogger(logging.NewText(r.stderr, r.verbose))
	r.loader = config.NewLoader(version, r.configPath)
	cfg, err := r.loader.Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["notify-save"] {
		cfg.Notify.Save = r.saveAlerts
	}
	if set["notify-export"] {
		cfg.Notify.Export = r.exportAlerts
	}
	if set["notify-copy"] {
		cfg.Notify.Copy = r.copyAlerts
	}
	r.config = cfg
	r.notifier = notify.FromConfig(notify.LoadPreferences(), cfg.Notify)
}

// newState builds the editor state over the loaded settings with dialogs
// answered on the terminal.
func (r *root) newState(opts ...appstate.Option) (*appstate.AppState, error) {
	dialogs := &termDialogs{out: r.stdout, saveDir: r.config.SaveDir}
	base := []appstate.Option{
		appstate.WithLogger(logging.Logger()),
		appstate.WithConfig(r.config),
		appstate.WithNotifier(r.notifier),
		appstate.WithDialogs(dialogs),
	}
	st, err := appstate.New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	dialogs.state = st
	return st, nil
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "run":
		cmd, err = parseRunCmd(subArgs, r)
	case "invoke":
		cmd, err = parseInvokeCmd(subArgs, r)
	case "commands":
		cmd, err = parseCommandsCmd(subArgs, r)
	case "accels":
		cmd, err = parseAccelsCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot(os.Stdin, os.Stdout, os.Stderr)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.Is(err, flag.ErrHelp):
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
