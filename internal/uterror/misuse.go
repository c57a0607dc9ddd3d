// Package uterror holds the errors raised when the framework itself is used
// incorrectly. They are never retried nor converted into test results.
package uterror

import "github.com/pkg/errors"

var (
	// A test run is already in progress somewhere in the process.
	ErrAlreadyRunning = errors.New("a test is already running")

	// Start was called while a recorder is patched in.
	ErrRecorderActive = errors.New("record patch is already applied")

	// Stop was called while no recorder is patched in.
	ErrRecorderInactive = errors.New("record patch had not been applied")

	// A suite was registered without a server or an owning plugin.
	ErrNoHostContext = errors.New("no host context")

	// The host was asked to dispatch a command nobody registered.
	ErrUnknownCommand = errors.New("unknown command")
)

func AlreadyRunning(running string) error {
	return errors.Wrapf(ErrAlreadyRunning, "test %s is running", running)
}
