// Package reporter builds the messages a test run sends back to the source
// that started it.
package reporter

import (
	"fmt"

	"utester/internal/testmgr"
	"utester/pkg/utester/core"
)

type Reporter struct {
	executor core.CommandSource
}

func NewReporter(executor core.CommandSource) *Reporter {
	return &Reporter{executor: executor}
}

func HeaderMessage(suiteID string, testers int) core.RText {
	return core.NewRText(fmt.Sprintf("=== %s %d tests", suiteID, testers), core.ColorGold, core.StyleItalic)
}

func StatusMessage(tester string, status testmgr.TestCaseStatus) core.RText {
	return core.NewRText(fmt.Sprintf("%s - %s", tester, status.String()), status.Color(), core.StyleUnderlined)
}

func ListHeaderMessage(found int) core.RText {
	return core.NewRText(fmt.Sprintf("==== Found %d match tests", found), core.ColorLightPurple)
}

// Header announces a suite run.
func (r *Reporter) Header(suiteID string, testers int) {
	r.executor.Reply(HeaderMessage(suiteID, testers))
}

// Tester replays the buffered logs of a finished tester and prints its status
// line. Failed testers always show every buffered line.
func (r *Reporter) Tester(name string, result testmgr.Result, logs []testmgr.LogEntry, verbose bool) {
	showAll := verbose || result.Status.Failed()
	for _, entry := range logs {
		if showAll || entry.Force {
			r.executor.Reply(entry.Message)
		}
	}
	r.executor.Reply(StatusMessage(name, result.Status))
}

// Summary prints the totals of a run over one or more suites.
func (r *Reporter) Summary(totals Totals) {
	r.executor.Reply(core.Text(totals.String()))
}
