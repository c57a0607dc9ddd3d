package testmgr

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"utester/pkg/utester/core"

	"github.com/sirupsen/logrus"
)

// ForceField marks a logrus entry as always visible.
const ForceField = "force"

// LogEntry is a buffered log line of a tester.
type LogEntry struct {
	Force   bool
	Message core.Message
}

// TesterRun holds everything that belongs to a single tester invocation. It
// is the core.TestContext handed to the tester.
type TesterRun struct {
	suite    *TestCase
	name     string
	executor core.CommandSource
	log      *logrus.Logger

	mu        sync.Mutex
	verbose   bool
	logs      []LogEntry
	errors    []error
	status    TestCaseStatus
	startTime time.Time
	endTime   time.Time
}

// Implementer of logrus.Hook interface to capture the tester's log lines in
// its buffer and tee them to the suite logger
type testerLogTee struct {
	run         *TesterRun
	suiteLogger *logrus.Logger
	testerId    string
}

func (tee testerLogTee) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (tee testerLogTee) Fire(entry *logrus.Entry) error {
	force, _ := entry.Data[ForceField].(bool)
	tee.run.bufferLog(force, core.Text(formatEntry(entry)))

	// Make a shallow copy so that we can modify the logger pointer
	newEntry := tee.suiteLogger.WithFields(entry.Data)
	newEntry.Caller = entry.Caller
	newEntry.Log(entry.Level, fmt.Sprintf("[%s] > %s", tee.testerId, entry.Message))
	return nil
}

// Formats an entry as `[LEVEL] message key=value ...`.
func formatEntry(entry *logrus.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", strings.ToUpper(entry.Level.String()), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != ForceField {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
	}

	return sb.String()
}

func NewTesterRun(suite *TestCase, name string, executor core.CommandSource, verbose bool) *TesterRun {
	r := &TesterRun{
		suite:     suite,
		name:      name,
		executor:  executor,
		verbose:   verbose,
		status:    TestCaseStatusRunning,
		startTime: time.Now(),
		log:       logrus.New(),
	}

	r.log.SetLevel(logrus.TraceLevel)
	r.log.SetOutput(io.Discard)
	r.log.AddHook(testerLogTee{
		run:         r,
		suiteLogger: suite.Logger(),
		testerId:    r.id(),
	})

	return r
}

func (r *TesterRun) id() string {
	return fmt.Sprintf("%s.%s", r.suite.ID(), r.name)
}

func (r *TesterRun) Name() string {
	return r.name
}

func (r *TesterRun) Suite() core.SuiteMetadata {
	return r.suite
}

func (r *TesterRun) Server() core.Server {
	return r.suite.Server()
}

func (r *TesterRun) Executor() core.CommandSource {
	return r.executor
}

func (r *TesterRun) Logger() *logrus.Entry {
	return logrus.NewEntry(r.log)
}

func (r *TesterRun) Log(msg core.Message) {
	r.bufferLog(false, msg)
}

func (r *TesterRun) LogForce(msg core.Message) {
	r.bufferLog(true, msg)
}

func (r *TesterRun) bufferLog(force bool, msg core.Message) {
	r.mu.Lock()
	if r.verbose {
		r.mu.Unlock()
		r.executor.Reply(msg)
		return
	}
	r.logs = append(r.logs, LogEntry{Force: force, Message: msg})
	r.mu.Unlock()
}

func (r *TesterRun) SetVerbose() {
	r.mu.Lock()
	logs := r.logs
	r.logs = nil
	r.verbose = true
	r.mu.Unlock()

	for _, entry := range logs {
		r.executor.Reply(entry.Message)
	}
}

// Verbose reports whether logs go straight to the executor.
func (r *TesterRun) Verbose() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verbose
}

// Logs returns the lines still buffered.
func (r *TesterRun) Logs() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.logs)
}

func (r *TesterRun) PushError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

// Records err unless it already is the last recorded error.
func (r *TesterRun) pushErrorOnce(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) > 0 && sameError(r.errors[len(r.errors)-1], err) {
		return
	}
	r.errors = append(r.errors, err)
}

// Errors holding uncomparable values are never the same.
func sameError(a, b error) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) {
		return a == nil && b == nil
	}
	return ta.Comparable() && a == b
}

func (r *TesterRun) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.errors)
}

// Fail(nil) behaves like Abort.
func (r *TesterRun) Fail(err error) {
	if err == nil {
		r.Abort()
		return
	}
	r.pushErrorOnce(err)
	r.close(TestCaseStatusFailed)
	r.stopTestExecution()
}

func (r *TesterRun) Skip() {
	r.close(TestCaseStatusSkipped)
	r.stopTestExecution()
}

func (r *TesterRun) Abort() {
	r.close(TestCaseStatusFailed)
	r.stopTestExecution()
}

func (r *TesterRun) Assert(ok bool, a core.Assertion) bool {
	if ok {
		return true
	}

	message := a.Message
	if message == "" {
		message = fmt.Sprintf("want %v, got %v", a.Want, a.Got)
	}

	r.PushError(&core.AssertionError{
		TestID:  r.suite.ID(),
		Want:    a.Want,
		Got:     a.Got,
		Message: message,
	})

	if !a.Continue {
		r.close(TestCaseStatusFailed)
		r.stopTestExecution()
	}
	return false
}

// Finish closes the run once the tester returned or was stopped and returns
// its result. A non-nil err is what the tester panicked with.
func (r *TesterRun) Finish(err error) Result {
	if err != nil {
		r.pushErrorOnce(err)
		r.close(TestCaseStatusFailed)
	}

	r.mu.Lock()
	running, failed := r.status.IsRunning(), len(r.errors) > 0
	r.mu.Unlock()

	if running && failed {
		r.close(TestCaseStatusFailed)
	} else if running {
		r.close(TestCaseStatusPassed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return Result{
		Status: r.status,
		Errors: slices.Clone(r.errors),
	}
}

func (r *TesterRun) RunTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status.IsRunning() {
		return time.Since(r.startTime)
	}

	return r.endTime.Sub(r.startTime)
}

func (r *TesterRun) close(status TestCaseStatus) {
	if status == TestCaseStatusRunning {
		panic("cannot close tester run with status running")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.status.IsRunning() {
		r.suite.Logger().Tracef(
			"Tester [%s] already closed with status '%s', ignoring '%s'",
			r.id(),
			r.status.String(),
			status.String(),
		)
		return
	}

	r.status = status
	r.endTime = time.Now()
}

// Calls runtime.Goexit() to unwind the tester goroutine.
// THIS SHOULD ONLY BE CALLED AFTER CLOSING THE RUN!
func (r *TesterRun) stopTestExecution() {
	r.suite.Logger().Tracef("Stopping execution of [%s]", r.id())
	runtime.Goexit()
}

var _ core.TestContext = (*TesterRun)(nil)
