package cli

import (
	"io"
	"testing"

	"utester/internal/registry"
	"utester/internal/reporter"
	"utester/internal/runner"
	"utester/internal/uterror"
	"utester/pkg/utester/core"
	"utester/pkg/utester/host"
	"utester/pkg/utester/source"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mathSuite struct{}

func (mathSuite) Name() string { return "Math" }

func (mathSuite) RegisterTesters(r core.TestRegistrar) error {
	r.RegisterTester("add", func(t core.TestContext) {
		t.Assert(1+1 == 2, core.Assertion{})
	})
	r.RegisterTester("div", func(t core.TestContext) {
		t.Log(core.Text("dividing by zero"))
		t.Assert(false, core.Assertion{Message: "cannot divide by zero"})
	})
	return nil
}

type stringSuite struct{}

func (stringSuite) Name() string { return "Strings" }

func (stringSuite) RegisterTesters(r core.TestRegistrar) error {
	r.RegisterTester("concat", func(t core.TestContext) {})
	return nil
}

func newDispatcher(t *testing.T) (*Dispatcher, *host.Local) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	server := host.NewLocal(log, io.Discard)

	reg := registry.New(log)
	_, err := reg.Register(server, "calc", mathSuite{})
	require.NoError(t, err)
	_, err = reg.Register(server, "text", stringSuite{})
	require.NoError(t, err)

	d := NewDispatcher("!!ut", reg, runner.NewRunner(log, nil), log)
	server.RegisterCommand("utester", d.Prefix(), d.Handle)
	return d, server
}

func TestRunCommand(t *testing.T) {
	d, server := newDispatcher(t)
	src := source.NewFakeSource(nil)

	require.NoError(t, server.ExecuteCommand("!!ut run calc.", src))
	assert.Equal(t, "=== calc:Math 2 tests\n"+
		"add - PASSED\n"+
		"dividing by zero\n"+
		"div - FAILED\n"+
		"1 / 2 passed", src.ReplyText())
	assert.Equal(t, reporter.Totals{Passed: 1, Ran: 2}, d.LastRun())
}

func TestRunCommandTesterPattern(t *testing.T) {
	_, server := newDispatcher(t)
	src := source.NewFakeSource(nil)

	// No dot: the whole pattern filters tester names in every suite.
	require.NoError(t, server.ExecuteCommand("!!ut run div", src))
	assert.Equal(t, "=== calc:Math 2 tests\n"+
		"add - SKIPPED\n"+
		"dividing by zero\n"+
		"div - FAILED\n"+
		"=== text:Strings 1 tests\n"+
		"concat - SKIPPED\n"+
		"0 / 1 passed", src.ReplyText())
}

func TestRunCommandVerbose(t *testing.T) {
	d, server := newDispatcher(t)
	src := source.NewFakeSource(nil)

	require.NoError(t, server.ExecuteCommand("!!ut run -v text.", src))
	assert.Equal(t, "=== text:Strings 1 tests\nconcat - PASSED\n1 / 1 passed", src.ReplyText())
	assert.Equal(t, reporter.Totals{Passed: 1, Ran: 1}, d.LastRun())
}

func TestRunCommandNoMatch(t *testing.T) {
	_, server := newDispatcher(t)
	src := source.NewFakeSource(nil)

	require.NoError(t, server.ExecuteCommand("!!ut run nothing.", src))
	assert.Equal(t, "0 / 0 passed", src.ReplyText())
}

func TestRunCommandWhileRunning(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	server := host.NewLocal(log, io.Discard)
	reg := registry.New(log)
	d := NewDispatcher("!!ut", reg, runner.NewRunner(log, nil), log)
	server.RegisterCommand("utester", d.Prefix(), d.Handle)

	var nested error
	tc, err := reg.Register(server, "calc", stringSuite{})
	require.NoError(t, err)
	_, err = tc.Attach("reenter", func(t core.TestContext) {
		nested = server.ExecuteCommand("!!ut run calc.", source.NewFakeSource(nil))
	})
	require.NoError(t, err)

	require.NoError(t, server.ExecuteCommand("!!ut run calc.", source.NewFakeSource(nil)))
	assert.True(t, errors.Is(nested, uterror.ErrAlreadyRunning))
}

func TestListCommand(t *testing.T) {
	_, server := newDispatcher(t)

	src := source.NewFakeSource(nil)
	require.NoError(t, server.ExecuteCommand("!!ut list", src))
	assert.Equal(t, "==== Found 3 match tests\ncalc:Math.add\ncalc:Math.div\ntext:Strings.concat", src.ReplyText())

	filtered := source.NewFakeSource(nil)
	require.NoError(t, server.ExecuteCommand("!!ut list calc.di", filtered))
	assert.Equal(t, "==== Found 1 match tests\ncalc:Math.div", filtered.ReplyText())

	// Tester names match by substring: "d" is in both "add" and "div".
	substring := source.NewFakeSource(nil)
	require.NoError(t, server.ExecuteCommand("!!ut list calc.d", substring))
	assert.Equal(t, "==== Found 2 match tests\ncalc:Math.add\ncalc:Math.div", substring.ReplyText())

	header := filtered.Replies()[0].(core.RText)
	assert.Equal(t, core.ColorLightPurple, header.Color)
}

func TestListCommandYaml(t *testing.T) {
	_, server := newDispatcher(t)
	src := source.NewFakeSource(nil)

	require.NoError(t, server.ExecuteCommand("!!ut list -o yaml calc.", src))
	assert.Equal(t, "==== Found 2 match tests\n"+
		"- suite: calc:Math\n"+
		"  tester: add\n"+
		"- suite: calc:Math\n"+
		"  tester: div", src.ReplyText())
}

func TestInvalidCommand(t *testing.T) {
	_, server := newDispatcher(t)
	src := source.NewFakeSource(nil)

	err := server.ExecuteCommand("!!ut run", src)
	assert.Error(t, err)
	assert.NotEmpty(t, src.Replies())

	err = server.ExecuteCommand("!!ut frobnicate", source.NewFakeSource(nil))
	assert.Error(t, err)
}

func TestHelpDoesNotExit(t *testing.T) {
	_, server := newDispatcher(t)
	src := source.NewFakeSource(nil)

	require.NoError(t, server.ExecuteCommand("!!ut --help", src))
	assert.Contains(t, src.ReplyText(), "run")
	assert.Contains(t, src.ReplyText(), "list")
}

func TestParseCommandLine(t *testing.T) {
	opts, command, err := ParseCommandLine("utester-demo", []string{"-l", "debug", "run", "-v", "calc."})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, opts.Verbosity)
	assert.Equal(t, []string{"run", "-v", "calc."}, command)
}
