package runner

import (
	"fmt"
	"runtime/debug"
	"sync"

	"utester/internal/metrics"
	"utester/internal/reporter"
	"utester/internal/testmgr"
	"utester/internal/uterror"
	"utester/pkg/utester/core"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Runner struct {
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewRunner(log *logrus.Logger, m *metrics.Metrics) *Runner {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Runner{log: log, metrics: m}
}

// DoTests runs the testers of tc whose name passes filter, one after the
// other, reporting to executor. A nil filter runs every tester; the others
// are reported as skipped without being invoked. The only
// error it returns is a rejected start because another run is in progress.
func (r *Runner) DoTests(tc *testmgr.TestCase, executor core.CommandSource, filter func(string) bool, verbose bool) (reporter.Totals, error) {
	var totals reporter.Totals

	if err := acquireToken(tc.ID()); err != nil {
		r.metrics.ObserveRun("rejected")
		return totals, err
	}
	defer releaseToken()

	tc.SetCurrentExecutor(executor)
	defer tc.SetCurrentExecutor(nil)

	log := r.log.WithFields(logrus.Fields{
		"run":   uuid.New().String(),
		"suite": tc.ID(),
	})

	testers := tc.Testers()
	rep := reporter.NewReporter(executor)
	rep.Header(tc.ID(), len(testers))
	log.Debugf("Running %d testers", len(testers))

	for _, tester := range testers {
		if filter != nil && !filter(tester.Name) {
			log.Tracef("Tester '%s' filtered out", tester.Name)
			rep.Tester(tester.Name, testmgr.Result{Status: testmgr.TestCaseStatusSkipped}, nil, verbose)
			continue
		}

		setToken(fmt.Sprintf("%s.%s", tc.ID(), tester.Name))
		run := testmgr.NewTesterRun(tc, tester.Name, executor, verbose)
		result := r.executeTester(tc, run, tester.F)
		setToken(tc.ID())

		log.WithField("tester", tester.Name).Logf(result.Status.LogLevel(), "%s %s", tester.Name, result.Status.String())
		for _, err := range result.Errors {
			if pe, ok := err.(uterror.PanicError); ok {
				log.WithField("tester", tester.Name).Errorf("Tester panicked with %v\n%s", pe.Value(), pe.Stack)
				continue
			}
			log.WithField("tester", tester.Name).Debug(err)
		}

		rep.Tester(tester.Name, result, run.Logs(), run.Verbose())
		totals.Record(result.Status)
		r.metrics.ObserveTester(tc.ID(), result.Status.String(), run.RunTime())
	}

	if totals.Failed() > 0 {
		r.metrics.ObserveRun("failed")
	} else {
		r.metrics.ObserveRun("ok")
	}

	return totals, nil
}

func (r *Runner) executeTester(tc *testmgr.TestCase, run *testmgr.TesterRun, f core.TesterFunc) testmgr.Result {
	var err error
	var wg sync.WaitGroup

	// Run the tester in a separate goroutine so that runtime.Goexit() can be
	// called to stop it. The plugin context is popped by deferred code, so it
	// survives Goexit as well.
	wg.Add(1)
	go func() {
		defer wg.Done()
		err = runCatchPanic(func() error {
			tc.Server().WithPluginContext(tc.PluginID(), func() {
				f(run)
			})
			return nil
		})
	}()

	// Wait for the goroutine to finish and close the run with whatever
	// error we receive, if any.
	wg.Wait()

	return run.Finish(err)
}

func runCatchPanic(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = uterror.NewPanicError(r, debug.Stack())
		}
	}()

	return f()
}
