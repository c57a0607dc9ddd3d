// Package calc is a small extension used to show how an extension tests its
// own commands with utester.
package calc

import (
	"fmt"
	"strconv"
	"strings"

	"utester/pkg/utester/core"
	"utester/pkg/utester/host"

	"github.com/sirupsen/logrus"
)

const (
	PluginID = "calc"
	Prefix   = "!!calc"
)

type Extension struct {
	server core.Server
	log    *logrus.Logger
}

// Register installs the `!!calc` command on server.
func Register(server *host.Local, log *logrus.Logger) *Extension {
	ext := &Extension{server: server, log: log}
	server.RegisterCommand(PluginID, Prefix, ext.Handle)
	return ext
}

// Returns the player name of src, "console" for anything else.
func sourceName(src core.CommandSource) string {
	if p, ok := src.(interface{ Player() string }); ok && src.IsPlayer() {
		return p.Player()
	}
	return "console"
}

func errorMessage(format string, args ...any) core.RText {
	return core.NewRText(fmt.Sprintf(format, args...), core.ColorRed)
}

// Handle serves `!!calc add|div <a> <b>` and `!!calc announce <text>`.
func (e *Extension) Handle(src core.CommandSource, command string) error {
	args := strings.Fields(command)[1:]
	if len(args) == 0 {
		src.Reply(core.Text("usage: !!calc add|div <a> <b> | announce <text>"))
		return nil
	}

	e.log.Debugf("calc %v from %s", args, sourceName(src))

	switch args[0] {
	case "add", "div":
		e.arithmetic(src, args[0], args[1:])
	case "announce":
		e.announce(src, strings.Join(args[1:], " "))
	default:
		src.Reply(errorMessage("unknown operation '%s'", args[0]))
	}
	return nil
}

func (e *Extension) arithmetic(src core.CommandSource, op string, args []string) {
	if len(args) != 2 {
		src.Reply(errorMessage("%s needs exactly two numbers", op))
		return
	}

	var operands [2]int
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			src.Reply(errorMessage("invalid number '%s'", arg))
			return
		}
		operands[i] = n
	}
	a, b := operands[0], operands[1]

	switch op {
	case "add":
		sum := a + b
		src.Reply(core.Text(fmt.Sprintf("%d + %d = %d", a, b, sum)))
		e.server.Execute(fmt.Sprintf("scoreboard players add %s calc %d", sourceName(src), sum))
	case "div":
		if b == 0 {
			src.Reply(errorMessage("division by zero"))
			return
		}
		src.Reply(core.Text(fmt.Sprintf("%d / %d = %d", a, b, a/b)))
	}
}

func (e *Extension) announce(src core.CommandSource, text string) {
	if text == "" {
		src.Reply(errorMessage("nothing to announce"))
		return
	}

	e.server.Say(core.NewRText(text, core.ColorGold, core.StyleBold))
	if src.IsPlayer() {
		e.server.Tell(sourceName(src), core.Text("announced"))
	}
}
