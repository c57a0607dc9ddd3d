package reporter

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

const SEPARATOR_CHAR = "-"

// Returns the width of the terminal behind fd. If it cannot be determined, it
// returns a default value of 80.
func TermWidth(fd int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Prints a separator line with a title, sized to width.
// The title is more or less left aligned.
//
// Example:
//
//	--- MyTitle ---------------------------------------
func PrintSeparatorWithTitle(w io.Writer, title string, width int) {
	preTitle := "--- "
	titleWidth := len(title) + len(preTitle)
	separatorWidth := width - titleWidth - 1
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	fmt.Fprintf(w, "%s%s %s\n", preTitle, title, strings.Repeat(SEPARATOR_CHAR, separatorWidth))
}

// Prints a separator line.
func PrintSeparator(w io.Writer, width int) {
	fmt.Fprintf(w, "%s\n", strings.Repeat(SEPARATOR_CHAR, width))
}
