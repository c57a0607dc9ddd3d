package core

// TesterFunc is a single test function within a suite.
type TesterFunc = func(TestContext)

type TestRegistrar interface {
	// Register a tester with the given name. Names MUST be accepted by the
	// regular expression `^[a-zA-Z0-9_]+$`. Registering the same name twice
	// keeps both testers.
	RegisterTester(name string, f TesterFunc)
}

// Suite is a named collection of testers owned by one extension.
type Suite interface {
	Named

	// Registers all testers of the suite, in the order they should run.
	RegisterTesters(r TestRegistrar) error
}

// SuiteMetadata describes a registered suite.
type SuiteMetadata interface {
	Named

	// Returns the process-wide unique id, `<plugin>:<suite>`.
	ID() string

	// Returns the id of the plugin owning the suite.
	PluginID() string
}
