package devops

import (
	"fmt"
)

func (p *Printer) LogError(msg string, a ...any) {
	fmt.Fprintf(p.w, "##vso[task.logissue type=error]%s\n", fmt.Sprintf(msg, a...))
}

func (p *Printer) LogWarning(msg string, a ...any) {
	fmt.Fprintf(p.w, "##vso[task.logissue type=warning]%s\n", fmt.Sprintf(msg, a...))
}
