package run

import (
	"utester/internal/registry"
	"utester/internal/reporter"
	"utester/internal/runner"
	"utester/pkg/utester/core"
	"utester/pkg/utester/utils"

	"github.com/sirupsen/logrus"
)

type RunCmd struct {
	Pattern string `arg:"" name:"pattern" help:"Tests to run, as <suite>.<tester> substrings"`
	Verbose bool   `short:"v" help:"Show the logs of every tester"`
}

func (cmd *RunCmd) Run(src core.CommandSource, reg *registry.Registry, r *runner.Runner, log *logrus.Logger, totals *reporter.Totals) error {
	suiteFilter, testerFilter := utils.FiltersFromPattern(cmd.Pattern)
	log.Infof("Running tests matching '%s'", cmd.Pattern)

	for _, tc := range reg.Match(suiteFilter) {
		t, err := r.DoTests(tc, src, testerFilter.Match, cmd.Verbose)
		if err != nil {
			return err
		}
		*totals = totals.Add(t)
	}

	log.Infof("%s (%s)", totals.String(), totals.Status().String())
	reporter.NewReporter(src).Summary(*totals)
	return nil
}
