package testmgr

import (
	"fmt"
	"slices"
	"sync"

	"utester/pkg/utester/core"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Tester is a named test function of a suite.
type Tester struct {
	Name string
	F    core.TesterFunc
}

// TestCase is the registered form of a suite. There is exactly one per suite
// id in the process.
type TestCase struct {
	name     string
	pluginID string
	server   core.Server
	log      *logrus.Logger

	mu       sync.Mutex
	testers  []Tester
	executor core.CommandSource
}

func NewTestCase(name string, pluginID string, server core.Server, log *logrus.Logger, testers []Tester) *TestCase {
	return &TestCase{
		name:     name,
		pluginID: pluginID,
		server:   server,
		log:      log,
		testers:  slices.Clone(testers),
	}
}

func (tc *TestCase) Name() string {
	return tc.name
}

func (tc *TestCase) PluginID() string {
	return tc.pluginID
}

func (tc *TestCase) ID() string {
	return fmt.Sprintf("%s:%s", tc.pluginID, tc.name)
}

func (tc *TestCase) Server() core.Server {
	return tc.server
}

func (tc *TestCase) Logger() *logrus.Logger {
	return tc.log
}

// Attach appends a tester after the ones the suite registered. It returns f
// so it can wrap a function literal. Testers rejected by ValidateTester are
// not attached.
func (tc *TestCase) Attach(name string, f core.TesterFunc) (core.TesterFunc, error) {
	if err := ValidateTester(name, f); err != nil {
		return nil, errors.Wrapf(err, "failed to attach tester to %s", tc.ID())
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.log.Debugf("Attaching tester '%s' to '%s'", name, tc.ID())
	tc.testers = append(tc.testers, Tester{Name: name, F: f})
	return f, nil
}

// Testers returns a snapshot of the testers in run order.
func (tc *TestCase) Testers() []Tester {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return slices.Clone(tc.testers)
}

// CurrentExecutor returns the source of the run in progress, nil when idle.
func (tc *TestCase) CurrentExecutor() core.CommandSource {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.executor
}

func (tc *TestCase) SetCurrentExecutor(src core.CommandSource) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.executor = src
}

var _ core.SuiteMetadata = (*TestCase)(nil)
