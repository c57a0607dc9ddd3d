package cli

import (
	"strings"
	"sync"

	"utester/internal/cli/list"
	"utester/internal/cli/run"
	"utester/internal/registry"
	"utester/internal/reporter"
	"utester/internal/runner"
	"utester/pkg/utester/core"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type commands struct {
	Run  run.RunCmd   `cmd:"" help:"Run the tests matching a pattern"`
	List list.ListCmd `cmd:"" help:"List the tests matching a pattern"`
}

// Dispatcher handles the `<prefix> run|list` command lines sent to the host.
type Dispatcher struct {
	prefix   string
	registry *registry.Registry
	runner   *runner.Runner
	log      *logrus.Logger
	verbose  bool

	mu   sync.Mutex
	last reporter.Totals
}

func NewDispatcher(prefix string, reg *registry.Registry, r *runner.Runner, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		prefix:   prefix,
		registry: reg,
		runner:   r,
		log:      log,
	}
}

// SetVerbose makes every `run` behave as if `-v` was given.
func (d *Dispatcher) SetVerbose(verbose bool) {
	d.verbose = verbose
}

func (d *Dispatcher) Prefix() string {
	return d.prefix
}

// LastRun returns the totals of the latest `run` command.
func (d *Dispatcher) LastRun() reporter.Totals {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

type exitCode int

// Handle parses command and runs it, replying to src. It has the signature
// of a host command handler.
func (d *Dispatcher) Handle(src core.CommandSource, command string) (err error) {
	args := strings.Fields(command)
	if len(args) > 0 && args[0] == d.prefix {
		args = args[1:]
	}
	d.log.Debugf("Dispatching %v", args)

	out := &replyWriter{src: src}
	defer out.Flush()

	// Help and usage output call Exit; unwind instead of ending the process.
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(exitCode); !ok {
				panic(r)
			}
			err = nil
		}
	}()

	cmds := commands{}
	parser, err := kong.New(&cmds,
		kong.Name(d.prefix),
		kong.Description("Run and list the registered tests."),
		kong.Writers(out, out),
		kong.Exit(func(code int) { panic(exitCode(code)) }),
		kong.ConfigureHelp(kong.HelpOptions{NoAppSummary: true}),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create parser")
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		src.Reply(core.NewRText(err.Error(), core.ColorRed))
		return errors.Wrapf(err, "invalid command '%s'", command)
	}

	if d.verbose {
		cmds.Run.Verbose = true
	}

	var totals reporter.Totals
	ctx.BindTo(src, (*core.CommandSource)(nil))
	err = ctx.Run(d.registry, d.runner, d.log, &totals)
	if err != nil {
		return err
	}

	if strings.HasPrefix(ctx.Command(), "run") {
		d.mu.Lock()
		d.last = totals
		d.mu.Unlock()
	}
	return nil
}

// replyWriter turns the parser's text output into one reply per line.
type replyWriter struct {
	src core.CommandSource
	buf strings.Builder
}

func (w *replyWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		text := w.buf.String()
		line, rest, found := strings.Cut(text, "\n")
		if !found {
			break
		}
		if strings.TrimSpace(line) != "" {
			w.src.Reply(core.Text(line))
		}
		w.buf.Reset()
		w.buf.WriteString(rest)
	}
	return len(p), nil
}

func (w *replyWriter) Flush() {
	if line := w.buf.String(); strings.TrimSpace(line) != "" {
		w.src.Reply(core.Text(line))
	}
	w.buf.Reset()
}
