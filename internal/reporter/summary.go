package reporter

import (
	"fmt"

	"utester/internal/testmgr"
)

// Totals counts tester results. Skipped testers are not part of Ran.
type Totals struct {
	Passed  int
	Ran     int
	Skipped int
}

func (t *Totals) Record(status testmgr.TestCaseStatus) {
	switch {
	case status.Passed():
		t.Passed++
		t.Ran++
	case status.Failed():
		t.Ran++
	case status.Skipped():
		t.Skipped++
	default:
		panic("Invalid tester status")
	}
}

func (t Totals) Add(other Totals) Totals {
	return Totals{
		Passed:  t.Passed + other.Passed,
		Ran:     t.Ran + other.Ran,
		Skipped: t.Skipped + other.Skipped,
	}
}

func (t Totals) Failed() int {
	return t.Ran - t.Passed
}

func (t Totals) Status() TestSummaryStatus {
	if t.Failed() > 0 {
		return TestStatusFailed
	}
	return TestStatusOk
}

// RunStatus is the overall status of a command that ran tests. A run that
// was rejected or aborted by err is an error whatever the totals say.
func RunStatus(totals Totals, err error) TestSummaryStatus {
	if err != nil {
		return TestStatusError
	}
	return totals.Status()
}

func (t Totals) String() string {
	return fmt.Sprintf("%d / %d passed", t.Passed, t.Ran)
}
