// Package utester lets extensions of a host register test suites and drive
// the host from inside their testers.
package utester

import (
	"sync"
	"time"

	"utester/internal/cli"
	"utester/internal/config"
	"utester/internal/metrics"
	"utester/internal/registry"
	"utester/internal/runner"
	"utester/internal/testmgr"
	"utester/pkg/utester/core"
	"utester/pkg/utester/host"
	"utester/pkg/utester/recorder"
	"utester/pkg/utester/source"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// PluginID is the plugin the dispatch command is registered under.
const PluginID = "utester"

type TestContext = core.TestContext
type Suite = core.Suite
type TestRegistrar = core.TestRegistrar
type TesterFunc = core.TesterFunc

type TestCase = testmgr.TestCase
type Recorder = recorder.Recorder

type Preference = core.Preference

// Framework logger. Test case registration and runs log here.
var Log = logrus.StandardLogger()

var defaultMetrics = sync.OnceValue(func() *metrics.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
})

// Registers suite as owned by pluginID. Registering the same suite id twice
// returns the test case created first.
func RegisterSuite(server core.Server, pluginID string, suite core.Suite) (*TestCase, error) {
	return registry.Default.Register(server, pluginID, suite)
}

type executeOptions struct {
	at         time.Time
	preference *core.Preference
}

type ExecuteOption func(*executeOptions)

// At sets the time the synthetic command claims to have been sent.
func At(at time.Time) ExecuteOption {
	return func(o *executeOptions) {
		o.at = at
	}
}

func WithPreference(preference *core.Preference) ExecuteOption {
	return func(o *executeOptions) {
		o.preference = preference
	}
}

func newExecuteOptions(opts []ExecuteOption) executeOptions {
	o := executeOptions{at: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ExecuteByPlayer dispatches command as if player typed it in chat. The
// returned source holds every reply the command produced.
func ExecuteByPlayer(t core.TestContext, player string, command string, opts ...ExecuteOption) (*source.FakePlayerSource, error) {
	o := newExecuteOptions(opts)
	info := host.NewPlayerInfo(player, command, o.at)
	src := source.NewFakePlayerSource(t.Server(), info, player, o.preference)
	return src, t.Server().ExecuteCommand(command, src)
}

// ExecuteByConsole dispatches command as if it was typed in the host console.
func ExecuteByConsole(t core.TestContext, command string, opts ...ExecuteOption) (*source.FakeConsoleSource, error) {
	o := newExecuteOptions(opts)
	src := source.NewFakeConsoleSource(host.NewConsoleInfo(command), o.preference)
	return src, t.Server().ExecuteCommand(command, src)
}

// WithRecords returns a recorder for the server of t. It is not started.
func WithRecords(t core.TestContext) *Recorder {
	return recorder.New(t.Server())
}

// Load registers the dispatch command on server as described by cfg.
func Load(server *host.Local, cfg config.Config) *cli.Dispatcher {
	Log.SetLevel(cfg.LogLevel)
	Log.Info("Unit Tester is loading")

	m := metrics.New(nil)
	if cfg.Metrics {
		m = defaultMetrics()
	}

	d := cli.NewDispatcher(cfg.Prefix, registry.Default, runner.NewRunner(Log, m), Log)
	d.SetVerbose(cfg.Verbose)
	server.RegisterCommand(PluginID, d.Prefix(), d.Handle)
	return d
}
