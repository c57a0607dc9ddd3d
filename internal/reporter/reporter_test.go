package reporter

import (
	"bytes"
	"testing"

	"utester/internal/testmgr"
	"utester/internal/uterror"
	"utester/pkg/utester/core"
	"utester/pkg/utester/source"

	"github.com/stretchr/testify/assert"
)

func logs(entries ...testmgr.LogEntry) []testmgr.LogEntry {
	return entries
}

func TestTesterVisibility(t *testing.T) {
	buffered := logs(
		testmgr.LogEntry{Message: core.Text("quiet")},
		testmgr.LogEntry{Force: true, Message: core.Text("loud")},
	)

	cases := []struct {
		name    string
		status  testmgr.TestCaseStatus
		verbose bool
		want    string
	}{
		{"passed quiet", testmgr.TestCaseStatusPassed, false, "loud\nt - PASSED"},
		{"passed verbose", testmgr.TestCaseStatusPassed, true, "quiet\nloud\nt - PASSED"},
		{"skipped quiet", testmgr.TestCaseStatusSkipped, false, "loud\nt - SKIPPED"},
		{"failed always shows all", testmgr.TestCaseStatusFailed, false, "quiet\nloud\nt - FAILED"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := source.NewFakeSource(nil)
			NewReporter(src).Tester("t", testmgr.Result{Status: c.status}, buffered, c.verbose)
			assert.Equal(t, c.want, src.ReplyText())
		})
	}
}

func TestStatusMessageStyle(t *testing.T) {
	msg := StatusMessage("add", testmgr.TestCaseStatusFailed)
	assert.Equal(t, core.ColorRed, msg.Color)
	assert.Equal(t, []core.Style{core.StyleUnderlined}, msg.Styles)

	header := HeaderMessage("pkg:S", 2)
	assert.Equal(t, "=== pkg:S 2 tests", header.PlainText())
	assert.Equal(t, core.ColorGold, header.Color)
}

func TestTotals(t *testing.T) {
	var totals Totals
	totals.Record(testmgr.TestCaseStatusPassed)
	totals.Record(testmgr.TestCaseStatusFailed)
	totals.Record(testmgr.TestCaseStatusSkipped)

	assert.Equal(t, Totals{Passed: 1, Ran: 2, Skipped: 1}, totals)
	assert.Equal(t, "1 / 2 passed", totals.String())
	assert.Equal(t, TestStatusFailed, totals.Status())
	assert.Equal(t, Totals{Passed: 2, Ran: 3, Skipped: 1}, totals.Add(Totals{Passed: 1, Ran: 1}))
	assert.Equal(t, TestStatusOk, Totals{}.Status())
	assert.Panics(t, func() { totals.Record(testmgr.TestCaseStatusRunning) })
}

func TestSeparators(t *testing.T) {
	var buf bytes.Buffer
	PrintSeparatorWithTitle(&buf, "Run", 12)
	PrintSeparator(&buf, 4)
	assert.Equal(t, "--- Run ----\n----\n", buf.String())

	buf.Reset()
	PrintSeparatorWithTitle(&buf, "a very long title", 5)
	assert.Equal(t, "--- a very long title \n", buf.String())
}

func TestRunStatus(t *testing.T) {
	assert.Equal(t, TestStatusOk, RunStatus(Totals{Passed: 1, Ran: 1}, nil))
	assert.Equal(t, TestStatusFailed, RunStatus(Totals{Passed: 0, Ran: 1}, nil))

	status := RunStatus(Totals{Passed: 1, Ran: 1}, uterror.AlreadyRunning("calc:Math"))
	assert.Equal(t, TestStatusError, status)
	assert.True(t, status.IsBad())
	assert.Equal(t, "ERROR", status.String())
}
