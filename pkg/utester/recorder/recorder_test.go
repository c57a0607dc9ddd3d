package recorder

import (
	"io"
	"runtime"
	"testing"

	"utester/internal/uterror"
	"utester/pkg/utester/core"
	"utester/pkg/utester/host"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHost() *host.Local {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return host.NewLocal(log, io.Discard)
}

func texts(s ...string) []core.Message {
	messages := make([]core.Message, len(s))
	for i, t := range s {
		messages[i] = core.Text(t)
	}
	return messages
}

func TestStartStop(t *testing.T) {
	h := newHost()
	r := New(h)

	require.NoError(t, r.Start())
	assert.ErrorIs(t, New(h).Start(), uterror.ErrRecorderActive)
	assert.ErrorIs(t, r.Start(), uterror.ErrRecorderActive)
	assert.ErrorIs(t, New(h).Stop(), uterror.ErrRecorderInactive)
	require.NoError(t, r.Stop())
	assert.ErrorIs(t, r.Stop(), uterror.ErrRecorderInactive)

	// A stopped recorder releases the patch for the next one.
	other := New(h)
	require.NoError(t, other.Start())
	require.NoError(t, other.Stop())
}

func TestRecordsWithoutForwarding(t *testing.T) {
	h := newHost()
	r := New(h)

	require.NoError(t, r.Scope(func() {
		h.Execute("say hi")
		h.Tell("Steve", core.Text("psst"))
		h.Say(core.Text("hello all"))
	}))

	assert.Equal(t, []string{"say hi"}, r.Executed())
	assert.Equal(t, []Told{
		{Target: "Steve", Message: core.Text("psst")},
		{Broadcast: true, Message: core.Text("hello all")},
	}, r.Told())
	assert.Equal(t, texts("hello all"), r.Said())

	assert.Empty(t, h.Executed())
	assert.Empty(t, h.Inbox("Steve"))
	assert.Empty(t, h.Broadcasts())

	// After the scope the real primitives are back.
	h.Execute("list")
	assert.Equal(t, []string{"list"}, h.Executed())
	assert.Len(t, r.Executed(), 1)
}

func TestForwardingPredicates(t *testing.T) {
	h := newHost()
	r := New(h)
	r.OnExecute(func(command string) bool { return command == "keep" })
	r.OnTell(func(player string, _ core.Message) bool { return player == "Alex" })
	r.OnSay(func(core.Message) bool { return false })
	// Last registration wins.
	r.OnSay(func(core.Message) bool { return true })

	require.NoError(t, r.Scope(func() {
		h.Execute("keep")
		h.Execute("drop")
		h.Tell("Alex", core.Text("a"))
		h.Tell("Steve", core.Text("s"))
		h.Say(core.Text("all"))
	}))

	assert.Equal(t, []string{"keep", "drop"}, r.Executed())
	assert.Equal(t, []string{"keep"}, h.Executed())
	assert.Len(t, h.Inbox("Alex"), 1)
	assert.Empty(t, h.Inbox("Steve"))
	assert.Len(t, h.Broadcasts(), 1)
}

func TestScopeStopsWhenFnExitsEarly(t *testing.T) {
	h := newHost()
	r := New(h)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Scope(func() {
			runtime.Goexit()
		})
	}()
	<-done

	// Goexit ran the deferred Stop, so a new recorder can start.
	next := New(h)
	require.NoError(t, next.Start())
	require.NoError(t, next.Stop())
}
