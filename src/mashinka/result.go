package mashinka

import (
	"fmt"
	"io"
	"strings"

	color "git.handmade.network/hmn/mashinka/src/ansicolor"
)

type Detail struct {
	Name  string
	Value string
}

// CommandResult is what a finished command reports back to the user.
type CommandResult struct {
	Command string
	Details []Detail
}

func (r *CommandResult) Add(name, value string) {
	r.Details = append(r.Details, Detail{Name: name, Value: value})
}

func (r CommandResult) Summarize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Command `%s` successfully completed.\n", r.Command)
	for _, d := range r.Details {
		fmt.Fprintf(&b, "  %s %s\n", color.Paint(d.Name+":", color.Bold), d.Value)
	}
	return b.String()
}

// Report prints the summary of r to w.
func Report(w io.Writer, r CommandResult) {
	io.WriteString(w, r.Summarize())
}
