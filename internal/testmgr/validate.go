package testmgr

import (
	"fmt"
	"regexp"

	"utester/pkg/utester/core"
)

var testerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Validates the name of a tester. Names are not required to be unique within
// a suite; duplicates are kept and all of them run.
func ValidateTesterName(name string) error {
	if !testerNameRegex.MatchString(name) {
		return fmt.Errorf("tester name '%s' is invalid, must match %s", name, testerNameRegex.String())
	}
	return nil
}

// ValidateTester checks what every tester of a suite must satisfy.
func ValidateTester(name string, f core.TesterFunc) error {
	if err := ValidateTesterName(name); err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("tester '%s' has no function", name)
	}
	return nil
}
