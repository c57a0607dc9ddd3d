// Package source implements command sources that capture replies instead of
// delivering them, so testers can inspect what a command answered.
package source

import (
	"slices"
	"sync"

	"utester/pkg/utester/core"
	"utester/pkg/utester/host"
	"utester/pkg/utester/utils"
)

// FakeSource accumulates every reply it receives.
type FakeSource struct {
	mu         sync.Mutex
	replies    []core.Message
	preference *core.Preference
}

func NewFakeSource(preference *core.Preference) *FakeSource {
	return &FakeSource{preference: preference}
}

func (s *FakeSource) IsFake() bool {
	return true
}

func (s *FakeSource) Preference() *core.Preference {
	return s.preference
}

// A bare FakeSource is neither a player nor the console.
func (s *FakeSource) IsPlayer() bool {
	return false
}

func (s *FakeSource) IsConsole() bool {
	return false
}

func (s *FakeSource) Reply(msg core.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, msg)
}

// Replies returns a copy of the replies received so far.
func (s *FakeSource) Replies() []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.replies)
}

func (s *FakeSource) ReplyText() string {
	return utils.StripANSI(core.JoinPlainText(s.Replies()))
}

// FakePlayerSource looks like a player to the host but keeps its replies.
type FakePlayerSource struct {
	*host.PlayerSource
	*FakeSource
}

func NewFakePlayerSource(server core.Server, info *host.Info, player string, preference *core.Preference) *FakePlayerSource {
	return &FakePlayerSource{
		PlayerSource: host.NewPlayerSource(server, info, player),
		FakeSource:   NewFakeSource(preference),
	}
}

func (s *FakePlayerSource) Reply(msg core.Message) {
	s.FakeSource.Reply(msg)
}

func (s *FakePlayerSource) Preference() *core.Preference {
	return s.FakeSource.Preference()
}

func (s *FakePlayerSource) IsPlayer() bool {
	return s.PlayerSource.IsPlayer()
}

func (s *FakePlayerSource) IsConsole() bool {
	return s.PlayerSource.IsConsole()
}

// FakeConsoleSource looks like the host console but keeps its replies.
type FakeConsoleSource struct {
	*host.ConsoleSource
	*FakeSource
}

func NewFakeConsoleSource(info *host.Info, preference *core.Preference) *FakeConsoleSource {
	return &FakeConsoleSource{
		ConsoleSource: host.NewConsoleSource(nil, info),
		FakeSource:    NewFakeSource(preference),
	}
}

func (s *FakeConsoleSource) Reply(msg core.Message) {
	s.FakeSource.Reply(msg)
}

func (s *FakeConsoleSource) Preference() *core.Preference {
	return s.FakeSource.Preference()
}

func (s *FakeConsoleSource) IsPlayer() bool {
	return s.ConsoleSource.IsPlayer()
}

func (s *FakeConsoleSource) IsConsole() bool {
	return s.ConsoleSource.IsConsole()
}

var (
	_ core.FakeSource = (*FakeSource)(nil)
	_ core.FakeSource = (*FakePlayerSource)(nil)
	_ core.FakeSource = (*FakeConsoleSource)(nil)
)
