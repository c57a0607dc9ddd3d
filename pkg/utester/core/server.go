package core

// Outbound is the set of primitives an extension uses to talk to the outside
// world.
type Outbound interface {
	// Issue a raw command to the managed server.
	Execute(command string)

	// Send a message to a single player.
	Tell(player string, msg Message)

	// Broadcast a message to every player.
	Say(msg Message)
}

// Interceptor allows a decorator to be placed in front of the outbound
// primitives. The wrap function receives the implementation currently in use
// and returns the one that should be used until release is called.
type Interceptor interface {
	Intercept(wrap func(real Outbound) Outbound) (release func(), err error)
}

// Server is the surface of the host runtime the test framework relies on.
type Server interface {
	Outbound
	Interceptor

	// Dispatch a command line through the host command tree as if it was
	// typed by src.
	ExecuteCommand(command string, src CommandSource) error

	// Run f with pluginID as the current plugin so host calls made by f are
	// attributed to it.
	WithPluginContext(pluginID string, f func())
}
