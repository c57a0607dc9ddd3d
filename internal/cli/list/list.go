package list

import (
	"strings"

	"utester/internal/registry"
	"utester/internal/reporter"
	"utester/pkg/utester/core"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type ListCmd struct {
	Pattern string `arg:"" name:"pattern" optional:"" help:"Tests to list, as <suite>.<tester> substrings"`
	Output  string `short:"o" enum:"text,yaml" default:"text" help:"Output format (text, yaml)"`
}

func (cmd *ListCmd) Run(src core.CommandSource, reg *registry.Registry, log *logrus.Logger) error {
	log.Infof("Listing tests matching '%s'", cmd.Pattern)

	entries := reg.List(cmd.Pattern)
	src.Reply(reporter.ListHeaderMessage(len(entries)))

	if cmd.Output == "yaml" {
		return outputEntriesAsYaml(src, entries)
	}

	for _, entry := range entries {
		src.Reply(core.Text(entry.String()))
	}
	return nil
}

func outputEntriesAsYaml(src core.CommandSource, entries []registry.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "failed to marshal tests to YAML")
	}

	src.Reply(core.Text(strings.TrimRight(string(data), "\n")))
	return nil
}
