// Package registry keeps every test suite registered in the process.
package registry

import (
	"slices"
	"sync"

	"utester/internal/collector"
	"utester/internal/testmgr"
	"utester/internal/uterror"
	"utester/pkg/utester/core"
	"utester/pkg/utester/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Registry is an ordered, append-only list of test cases.
type Registry struct {
	log *logrus.Logger

	mu    sync.RWMutex
	cases []*testmgr.TestCase
}

// Default is the process-wide registry.
var Default = New(logrus.StandardLogger())

func New(log *logrus.Logger) *Registry {
	return &Registry{log: log}
}

// Register collects the testers of suite and adds it under
// `<pluginID>:<suite name>`. Registering an id twice returns the test case
// created the first time.
func (r *Registry) Register(server core.Server, pluginID string, suite core.Suite) (*testmgr.TestCase, error) {
	if server == nil {
		return nil, errors.Wrap(uterror.ErrNoHostContext, "server is not initialized yet")
	}
	if pluginID == "" {
		return nil, errors.Wrap(uterror.ErrNoHostContext, "there is no plugin in context")
	}
	if suite == nil || suite.Name() == "" {
		return nil, errors.Wrapf(uterror.ErrNoHostContext, "suite of plugin '%s' has no name", pluginID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := pluginID + ":" + suite.Name()
	if existing := r.lookup(id); existing != nil {
		r.log.Debugf("Test case %s is already registered", id)
		return existing, nil
	}

	testers, err := collector.CollectTesters(suite)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to collect testers of %s", id)
	}

	tc := testmgr.NewTestCase(suite.Name(), pluginID, server, r.log, testers)
	r.log.Infof("Registering test case %s", tc.ID())
	r.log.Tracef("Testers: %d", len(testers))
	r.cases = append(r.cases, tc)
	return tc, nil
}

// TestCases returns all test cases in registration order.
func (r *Registry) TestCases() []*testmgr.TestCase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.cases)
}

// Lookup returns the test case with the given id, nil if there is none.
func (r *Registry) Lookup(id string) *testmgr.TestCase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(id)
}

func (r *Registry) lookup(id string) *testmgr.TestCase {
	for _, tc := range r.cases {
		if tc.ID() == id {
			return tc
		}
	}
	return nil
}

// Match returns the test cases whose id passes filter.
func (r *Registry) Match(filter *utils.SubstringFilter) []*testmgr.TestCase {
	var matched []*testmgr.TestCase
	for _, tc := range r.TestCases() {
		if filter.Match(tc.ID()) {
			matched = append(matched, tc)
		}
	}
	return matched
}

// Entry names a single tester of a registered suite.
type Entry struct {
	SuiteID string `yaml:"suite"`
	Tester  string `yaml:"tester"`
}

func (e Entry) String() string {
	return e.SuiteID + "." + e.Tester
}

// List returns every tester matching a `<suite>.<tester>` pattern without
// running anything.
func (r *Registry) List(pattern string) []Entry {
	suiteFilter, testerFilter := utils.FiltersFromPattern(pattern)

	var entries []Entry
	for _, tc := range r.Match(suiteFilter) {
		for _, tester := range tc.Testers() {
			if testerFilter.Match(tester.Name) {
				entries = append(entries, Entry{SuiteID: tc.ID(), Tester: tester.Name})
			}
		}
	}
	return entries
}
