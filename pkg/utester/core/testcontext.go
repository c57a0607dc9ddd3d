package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// TestContext is handed to every tester invocation. It carries the state of
// that single invocation only.
type TestContext interface {
	// Returns the name of the running tester.
	Name() string

	// Returns information about the suite the tester belongs to.
	Suite() SuiteMetadata

	// Returns the host server the suite was registered against.
	Server() Server

	// Returns the source that started the run.
	Executor() CommandSource

	// Buffer a message. It is shown when the run is verbose or the tester
	// fails.
	Log(msg Message)

	// Buffer a message that is always shown.
	LogForce(msg Message)

	// Returns a logger whose lines end up in the same buffer as Log. Set the
	// field "force" to true to make a line always visible.
	Logger() *logrus.Entry

	// Flush the buffered logs to the executor and print every further line
	// immediately.
	SetVerbose()

	// Record an error without stopping the tester.
	PushError(err error)

	// Returns the errors recorded so far.
	Errors() []error

	// Record err and stop the tester. The error is not recorded a second time
	// if it already is the last recorded one.
	Fail(err error)

	// Stop the tester and mark it as skipped. Implementations stop execution
	// by calling runtime.Goexit(), which then runs all deferred calls in the
	// current goroutine.
	Skip()

	// Stop the tester and mark it as failed without recording an error.
	// Implementations stop execution by calling runtime.Goexit().
	Abort()

	// Assert is the primitive every assertion is built on. When ok is false
	// an *AssertionError is recorded and, unless a.Continue is set, the tester
	// is stopped. Returns ok.
	Assert(ok bool, a Assertion) bool
}

// Assertion describes the check passed to TestContext.Assert.
type Assertion struct {
	Want    any
	Got     any
	Message string

	// Keep running the tester when the assertion fails.
	Continue bool
}

type AssertionError struct {
	TestID  string
	Want    any
	Got     any
	Message string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assert failed when testing %s: %s", e.TestID, e.Message)
}
