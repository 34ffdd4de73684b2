package plannerviz

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	commandPathStyle = lipgloss.NewStyle().Bold(true)
	commandDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// CommandInfo is one row of the command listing.
type CommandInfo struct {
	Path        string
	Depth       int
	Description string
}

// ListCommands prints the command tree in two aligned columns.
func ListCommands(out io.Writer, commands []CommandInfo) {
	width := 0
	for _, c := range commands {
		width = max(width, lipgloss.Width(indent(c)))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, c := range commands {
		path := indent(c)
		pad := strings.Repeat(" ", width-lipgloss.Width(path)+2)
		fmt.Fprintf(out, "  %s%s%s\n", commandPathStyle.Render(path), pad, commandDescStyle.Render(c.Description))
	}
}

func indent(c CommandInfo) string {
	return strings.Repeat("  ", c.Depth) + c.Path
}
