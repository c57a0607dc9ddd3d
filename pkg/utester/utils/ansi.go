package utils

import (
	"regexp"
)

var (
	// ANSI escape code cleaner
	ANSI_CLEANER = regexp.MustCompile(`(\x9B|\x1B\[)[0-?]*[ -\/]*[@-~]`)
)

// Removes every ANSI escape sequence from s.
func StripANSI(s string) string {
	return ANSI_CLEANER.ReplaceAllString(s, "")
}
