package cli

import (
	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

type GlobalOpts struct {
	Verbosity   log.Level `short:"l" name:"log-level" help:"Set log level" default:"info"`
	Config      string    `short:"c" help:"Path to a YAML configuration file" type:"path"`
	AzureDevops bool      `short:"a" help:"Enable Azure DevOps integration" env:"TF_BUILD"`
}

type cli struct {
	Global  GlobalOpts `embed:""`
	Command []string   `arg:"" passthrough:"all" help:"Command to dispatch, e.g. 'run calc' or 'list'"`
}

// ParseCommandLine splits the arguments of a binary hosting the framework into
// its global options and the words of the command to dispatch.
func ParseCommandLine(name string, args []string) (GlobalOpts, []string, error) {
	// Force display help if no arguments are provided
	if len(args) == 0 {
		args = []string{"--help"}
	}

	c := cli{}
	parser, err := kong.New(&c, kong.Name(name))
	if err != nil {
		return GlobalOpts{}, nil, err
	}

	_, err = parser.Parse(args)
	if err != nil {
		return GlobalOpts{}, nil, err
	}
	return c.Global, c.Command, nil
}
