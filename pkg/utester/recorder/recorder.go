// Package recorder captures what an extension sends through the host's
// outbound primitives while a tester runs.
//
// A Recorder is installed in front of the real primitives with Start and
// removed with Stop. While it is active every command, tell and broadcast is
// recorded and only forwarded to the real server when the matching predicate
// (OnExecute, OnTell, OnSay) returns true. Only one Recorder can be active in
// the process at a time.
//
//	rec := recorder.New(t.Server())
//	rec.OnSay(func(core.Message) bool { return true })
//	if err := rec.Scope(func() {
//		utester.ExecuteByPlayer(t, "Steve", "!!calc announce hi")
//	}); err != nil {
//		t.Fail(err)
//	}
//	rec.RequireSaid(t, []core.Message{core.Text("hi")})
package recorder

import (
	"slices"
	"sync"

	"utester/internal/uterror"
	"utester/pkg/utester/core"

	"github.com/pkg/errors"
)

var (
	patchLock sync.Mutex
	active    *Recorder
)

// Told is a recorded tell or broadcast.
type Told struct {
	// Target player, empty for broadcasts.
	Target    string
	Broadcast bool
	Message   core.Message
}

type Recorder struct {
	server core.Interceptor

	mu        sync.Mutex
	real      core.Outbound
	release   func()
	executed  []string
	told      []Told
	said      []core.Message
	onExecute func(command string) bool
	onTell    func(player string, msg core.Message) bool
	onSay     func(msg core.Message) bool
}

func New(server core.Interceptor) *Recorder {
	return &Recorder{server: server}
}

// Start installs the recorder in front of the server's outbound primitives.
func (r *Recorder) Start() error {
	patchLock.Lock()
	defer patchLock.Unlock()

	if active != nil {
		return uterror.ErrRecorderActive
	}

	release, err := r.server.Intercept(func(real core.Outbound) core.Outbound {
		r.mu.Lock()
		r.real = real
		r.mu.Unlock()
		return recording{r}
	})
	if err != nil {
		return errors.Wrap(err, "failed to install recorder")
	}

	r.release = release
	active = r
	return nil
}

// Stop restores the primitives that were in place before Start.
func (r *Recorder) Stop() error {
	patchLock.Lock()
	defer patchLock.Unlock()

	if active == nil {
		return uterror.ErrRecorderInactive
	}
	if active != r {
		return errors.Wrap(uterror.ErrRecorderInactive, "another recorder is active")
	}

	r.release()
	r.release = nil
	active = nil
	return nil
}

// Scope runs fn with the recorder active. The recorder is stopped even when
// fn stops the tester.
func (r *Recorder) Scope(fn func()) (err error) {
	if err := r.Start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := r.Stop(); err == nil {
			err = stopErr
		}
	}()

	fn()
	return nil
}

// OnExecute sets the predicate deciding whether an executed command also
// reaches the server. It replaces any previous predicate.
func (r *Recorder) OnExecute(cb func(command string) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onExecute = cb
}

// OnTell sets the predicate deciding whether a tell also reaches the player.
func (r *Recorder) OnTell(cb func(player string, msg core.Message) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTell = cb
}

// OnSay sets the predicate deciding whether a broadcast also reaches the
// players.
func (r *Recorder) OnSay(cb func(msg core.Message) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSay = cb
}

func (r *Recorder) Executed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.executed)
}

func (r *Recorder) Told() []Told {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.told)
}

func (r *Recorder) Said() []core.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.said)
}

// recording is the outbound implementation installed by Start.
type recording struct {
	r *Recorder
}

func (o recording) Execute(command string) {
	r := o.r
	r.mu.Lock()
	r.executed = append(r.executed, command)
	cb, real := r.onExecute, r.real
	r.mu.Unlock()

	if cb != nil && cb(command) {
		real.Execute(command)
	}
}

func (o recording) Tell(player string, msg core.Message) {
	r := o.r
	r.mu.Lock()
	r.told = append(r.told, Told{Target: player, Message: msg})
	cb, real := r.onTell, r.real
	r.mu.Unlock()

	if cb != nil && cb(player, msg) {
		real.Tell(player, msg)
	}
}

func (o recording) Say(msg core.Message) {
	r := o.r
	r.mu.Lock()
	r.told = append(r.told, Told{Broadcast: true, Message: msg})
	r.said = append(r.said, msg)
	cb, real := r.onSay, r.real
	r.mu.Unlock()

	if cb != nil && cb(msg) {
		real.Say(msg)
	}
}
