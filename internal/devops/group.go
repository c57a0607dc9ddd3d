// Package devops emits Azure DevOps logging commands so that CI runs of the
// demo binary are folded and failures show up as pipeline issues.
package devops

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

type Printer struct {
	w io.Writer

	// Groups function as a stack, so we keep track of the groups in a stack.
	mu     sync.Mutex
	groups []*Group
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Opens a new group and adds it to the stack.
func (p *Printer) OpenGroup(name string) *Group {
	p.mu.Lock()
	defer p.mu.Unlock()

	newGroup := &Group{printer: p}
	p.groups = append(p.groups, newGroup)
	fmt.Fprintf(p.w, "##[group]%s\n", name)
	return newGroup
}

type Group struct {
	printer *Printer
}

// Closes the group and removes all groups above it from the stack.
// This is done by popping the stack until we reach the group we want to close.
func (g *Group) Close() {
	p := g.printer
	p.mu.Lock()
	defer p.mu.Unlock()

	if !slices.Contains(p.groups, g) {
		return
	}

	for index := len(p.groups) - 1; index >= 0; index-- {
		// Pop the last group from the stack
		last := p.groups[index]
		p.groups = p.groups[:index]
		fmt.Fprintln(p.w, "##[endgroup]")
		if last == g {
			break
		}
	}
}
