// Package host provides Local, an in-memory implementation of the host
// runtime the test framework is embedded in. It routes commands by prefix to
// the plugin that registered them and keeps what it sent to players so it can
// stand in for a real server.
package host

import (
	"io"
	"slices"
	"strings"
	"sync"

	"utester/internal/uterror"
	"utester/pkg/utester/core"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CommandHandler handles a command line whose first word matched the prefix
// it was registered for.
type CommandHandler func(src core.CommandSource, command string) error

type registeredCommand struct {
	pluginID string
	prefix   string
	handler  CommandHandler
}

// Local is a host living entirely in the current process.
type Local struct {
	Log     *logrus.Logger
	console io.Writer

	mu       sync.Mutex
	commands []registeredCommand
	outbound core.Outbound
	plugins  []pluginContext
	nextCtx  uint64

	// What reached the managed server.
	delivered deliveries
}

type deliveries struct {
	mu       sync.Mutex
	executed []string
	inbox    map[string][]core.Message
	said     []core.Message
}

func NewLocal(log *logrus.Logger, console io.Writer) *Local {
	h := &Local{
		Log:     log,
		console: console,
	}
	h.delivered.inbox = make(map[string][]core.Message)
	h.outbound = &serverOutbound{host: h}
	return h
}

// RegisterCommand routes every command line starting with prefix to handler,
// running it in the context of pluginID.
func (h *Local) RegisterCommand(pluginID string, prefix string, handler CommandHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Log.Debugf("Plugin '%s' registered command '%s'", pluginID, prefix)
	h.commands = append(h.commands, registeredCommand{
		pluginID: pluginID,
		prefix:   prefix,
		handler:  handler,
	})
}

// Console returns a command source for the host console.
func (h *Local) Console(command string) *ConsoleSource {
	return NewConsoleSource(h.console, NewConsoleInfo(command))
}

func (h *Local) ExecuteCommand(command string, src core.CommandSource) error {
	prefix, _, _ := strings.Cut(strings.TrimSpace(command), " ")

	h.mu.Lock()
	idx := slices.IndexFunc(h.commands, func(c registeredCommand) bool {
		return c.prefix == prefix
	})
	var cmd registeredCommand
	if idx >= 0 {
		cmd = h.commands[idx]
	}
	h.mu.Unlock()

	if idx < 0 {
		return errors.Wrapf(uterror.ErrUnknownCommand, "'%s'", prefix)
	}

	var err error
	h.WithPluginContext(cmd.pluginID, func() {
		err = cmd.handler(src, command)
	})
	return err
}

type pluginContext struct {
	id       uint64
	pluginID string
}

// WithPluginContext runs f with pluginID entered as plugin context. Contexts
// are tracked for the whole host, not per goroutine: when calls overlap on
// different goroutines, CurrentPlugin reports the most recently entered one
// that is still active. Leaving a context only removes that context.
func (h *Local) WithPluginContext(pluginID string, f func()) {
	h.mu.Lock()
	h.nextCtx++
	ctx := pluginContext{id: h.nextCtx, pluginID: pluginID}
	h.plugins = append(h.plugins, ctx)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.plugins = slices.DeleteFunc(h.plugins, func(c pluginContext) bool {
			return c.id == ctx.id
		})
		h.mu.Unlock()
	}()

	f()
}

// CurrentPlugin returns the plugin whose context is active, or "" if none.
func (h *Local) CurrentPlugin() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.plugins) == 0 {
		return ""
	}
	return h.plugins[len(h.plugins)-1].pluginID
}

func (h *Local) Intercept(wrap func(real core.Outbound) core.Outbound) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	previous := h.outbound
	h.outbound = wrap(previous)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			h.outbound = previous
			h.mu.Unlock()
		})
	}, nil
}

func (h *Local) current() core.Outbound {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outbound
}

func (h *Local) Execute(command string) {
	h.current().Execute(command)
}

func (h *Local) Tell(player string, msg core.Message) {
	h.current().Tell(player, msg)
}

func (h *Local) Say(msg core.Message) {
	h.current().Say(msg)
}

// Executed returns the commands that reached the managed server.
func (h *Local) Executed() []string {
	h.delivered.mu.Lock()
	defer h.delivered.mu.Unlock()
	return slices.Clone(h.delivered.executed)
}

// Inbox returns the messages delivered to player, broadcasts excluded.
func (h *Local) Inbox(player string) []core.Message {
	h.delivered.mu.Lock()
	defer h.delivered.mu.Unlock()
	return slices.Clone(h.delivered.inbox[strings.ToLower(player)])
}

// Broadcasts returns the messages delivered to every player.
func (h *Local) Broadcasts() []core.Message {
	h.delivered.mu.Lock()
	defer h.delivered.mu.Unlock()
	return slices.Clone(h.delivered.said)
}

// serverOutbound is the real implementation of the outbound primitives.
type serverOutbound struct {
	host *Local
}

func (o *serverOutbound) Execute(command string) {
	d := &o.host.delivered
	d.mu.Lock()
	d.executed = append(d.executed, command)
	d.mu.Unlock()

	o.host.Log.WithField("plugin", o.host.CurrentPlugin()).Debugf("Executing '%s'", command)
}

func (o *serverOutbound) Tell(player string, msg core.Message) {
	d := &o.host.delivered
	key := strings.ToLower(player)
	d.mu.Lock()
	d.inbox[key] = append(d.inbox[key], msg)
	d.mu.Unlock()

	o.host.Log.WithField("player", player).Debugf("Tell: %s", msg.PlainText())
}

func (o *serverOutbound) Say(msg core.Message) {
	d := &o.host.delivered
	d.mu.Lock()
	d.said = append(d.said, msg)
	d.mu.Unlock()

	o.host.Log.Debugf("Say: %s", msg.PlainText())
}
