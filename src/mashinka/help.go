package mashinka

import (
	"fmt"
	"io"
	"strings"

	color "git.handmade.network/hmn/mashinka/src/ansicolor"
	"github.com/spf13/cobra"
)

var helpExamples = []string{
	"mashinka publish --draft-path ./draft.md",
	"mashinka index --dry-run",
	"mashinka deploy --build-path ./public",
}

// PrintHelp writes the overview shown by "mashinka help".
func PrintHelp(w io.Writer, root *cobra.Command) {
	var b strings.Builder

	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(color.Paint(title+":", color.Bold, color.Yellow))
		b.WriteString("\n")
	}

	b.WriteString(color.Paint("mashinka", color.Bold, color.Green))
	b.WriteString(" " + Version + "\n")
	b.WriteString(root.Short + "\n")

	section("Usage")
	fmt.Fprintf(&b, "  %s <command> [flags]\n", root.Name())

	section("Example")
	for _, example := range helpExamples {
		b.WriteString("  " + example + "\n")
	}

	section("Available commands")
	width := 0
	for _, cmd := range root.Commands() {
		if len(cmd.Name()) > width {
			width = len(cmd.Name())
		}
	}
	for _, cmd := range root.Commands() {
		if !cmd.IsAvailableCommand() && cmd.Name() != "help" {
			continue
		}
		fmt.Fprintf(&b, "  %s  %s\n", color.Paint(fmt.Sprintf("%-*s", width, cmd.Name()), color.Green), cmd.Short)
	}

	section("Miscellaneous")
	b.WriteString(root.PersistentFlags().FlagUsages())

	io.WriteString(w, b.String())
}
