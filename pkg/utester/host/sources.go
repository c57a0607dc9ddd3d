package host

import (
	"fmt"
	"io"

	"utester/pkg/utester/core"
)

// PlayerSource is a command source backed by an in-game player. Replies are
// told to the player through the server.
type PlayerSource struct {
	server core.Server
	info   *Info
	player string
}

func NewPlayerSource(server core.Server, info *Info, player string) *PlayerSource {
	return &PlayerSource{
		server: server,
		info:   info,
		player: player,
	}
}

func (s *PlayerSource) Player() string {
	return s.player
}

func (s *PlayerSource) Info() *Info {
	return s.info
}

func (s *PlayerSource) Reply(msg core.Message) {
	s.server.Tell(s.player, msg)
}

func (s *PlayerSource) IsPlayer() bool {
	return true
}

func (s *PlayerSource) IsConsole() bool {
	return false
}

func (s *PlayerSource) Preference() *core.Preference {
	return nil
}

func (s *PlayerSource) String() string {
	return fmt.Sprintf("Player %s", s.player)
}

// ConsoleSource is the host console. Replies are rendered to its writer.
type ConsoleSource struct {
	out  io.Writer
	info *Info
}

func NewConsoleSource(out io.Writer, info *Info) *ConsoleSource {
	return &ConsoleSource{
		out:  out,
		info: info,
	}
}

func (s *ConsoleSource) Info() *Info {
	return s.info
}

func (s *ConsoleSource) Reply(msg core.Message) {
	fmt.Fprintln(s.out, core.Render(msg))
}

func (s *ConsoleSource) IsPlayer() bool {
	return false
}

func (s *ConsoleSource) IsConsole() bool {
	return true
}

func (s *ConsoleSource) Preference() *core.Preference {
	return nil
}

func (s *ConsoleSource) String() string {
	return "Console"
}
