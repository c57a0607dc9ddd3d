package testmgr

import (
	"utester/pkg/utester/core"

	"github.com/sirupsen/logrus"
)

type TestCaseStatus int

const (
	TestCaseStatusRunning TestCaseStatus = iota
	TestCaseStatusPassed
	TestCaseStatusFailed
	TestCaseStatusSkipped
)

func (tcs TestCaseStatus) String() string {
	switch tcs {
	case TestCaseStatusRunning:
		return "RUNNING"
	case TestCaseStatusPassed:
		return "PASSED"
	case TestCaseStatusFailed:
		return "FAILED"
	case TestCaseStatusSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

func (tcs TestCaseStatus) Color() core.Color {
	switch tcs {
	case TestCaseStatusPassed:
		return core.ColorGreen
	case TestCaseStatusFailed:
		return core.ColorRed
	case TestCaseStatusSkipped:
		return core.ColorGray
	default:
		return core.ColorNone
	}
}

func (tcs TestCaseStatus) LogLevel() logrus.Level {
	switch tcs {
	case TestCaseStatusPassed:
		return logrus.InfoLevel
	case TestCaseStatusFailed:
		return logrus.ErrorLevel
	case TestCaseStatusSkipped:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

func (tcs TestCaseStatus) IsRunning() bool {
	return tcs == TestCaseStatusRunning
}

func (tcs TestCaseStatus) Passed() bool {
	return tcs == TestCaseStatusPassed
}

func (tcs TestCaseStatus) Failed() bool {
	return tcs == TestCaseStatusFailed
}

func (tcs TestCaseStatus) Skipped() bool {
	return tcs == TestCaseStatusSkipped
}

// Result is the outcome of one tester invocation.
type Result struct {
	Status TestCaseStatus
	Errors []error
}
