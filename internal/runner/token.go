package runner

import (
	"sync"

	"utester/internal/uterror"
)

// The run token names the suite or tester currently executing. Holding it
// means no other run may start anywhere in the process.
var (
	tokenLock sync.Mutex
	token     string
	tokenHeld bool
)

func acquireToken(name string) error {
	tokenLock.Lock()
	defer tokenLock.Unlock()

	if tokenHeld {
		return uterror.AlreadyRunning(token)
	}
	token, tokenHeld = name, true
	return nil
}

// Renames the held token, e.g. to the tester in progress and back.
func setToken(name string) {
	tokenLock.Lock()
	defer tokenLock.Unlock()
	token = name
}

func releaseToken() {
	tokenLock.Lock()
	defer tokenLock.Unlock()
	token, tokenHeld = "", false
}

// Running returns the name of the test in progress, if any.
func Running() (string, bool) {
	tokenLock.Lock()
	defer tokenLock.Unlock()
	return token, tokenHeld
}
