package host

import (
	"fmt"
	"time"
)

type InfoSource int

const (
	InfoSourceServer InfoSource = iota
	InfoSourceConsole
)

func (s InfoSource) String() string {
	switch s {
	case InfoSourceServer:
		return "server"
	case InfoSourceConsole:
		return "console"
	default:
		return "unknown"
	}
}

// Info is a single line of input the host received, either from the managed
// server output or from its own console.
type Info struct {
	Source  InfoSource
	Raw     string
	Content string
	Player  string
	Time    time.Time
}

// Builds the info of a chat line typed by player at the given time.
func NewPlayerInfo(player string, content string, at time.Time) *Info {
	return &Info{
		Source:  InfoSourceServer,
		Raw:     fmt.Sprintf("[%02d:%02d:%02d] <%s> %s", at.Hour(), at.Minute(), at.Second(), player, content),
		Content: content,
		Player:  player,
		Time:    at,
	}
}

// Builds the info of a line typed in the host console.
func NewConsoleInfo(content string) *Info {
	return &Info{
		Source:  InfoSourceConsole,
		Raw:     content,
		Content: content,
		Time:    time.Now(),
	}
}

func (i *Info) IsPlayer() bool {
	return i.Source == InfoSourceServer && i.Player != ""
}
