package core

// Preference holds per-source display preferences.
type Preference struct {
	Language string
}

// CommandSource is the actor a command was issued by. Replies go back to it.
type CommandSource interface {
	Reply(msg Message)

	IsPlayer() bool

	IsConsole() bool

	// Returns the display preference of the source, nil means host defaults.
	Preference() *Preference
}

// FakeSource is a command source that keeps its replies instead of delivering
// them.
type FakeSource interface {
	CommandSource

	// Always true for fake sources.
	IsFake() bool

	// Returns all replies received so far, flattened to plain text and joined
	// with newlines.
	ReplyText() string
}
