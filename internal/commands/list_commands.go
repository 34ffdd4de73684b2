// internal/commands/list_commands.go
package plannerviz

import (
	"strings"

	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands', which prints the command tree with
// each command's short description.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Run: func(cmd *cobra.Command, args []string) {
		var rows []CommandInfo
		for _, data := range collectCommandData(rootCmd, "", 0) {
			if strings.Contains(data.Path, "completion") || strings.Contains(data.Path, "help") {
				continue
			}
			rows = append(rows, data)
		}
		ListCommands(cmd.OutOrStdout(), rows)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// collectCommandData walks the command tree depth first.
func collectCommandData(cmd *cobra.Command, parent string, depth int) []CommandInfo {
	path := cmd.Name()
	if parent != "" {
		path = parent + " " + cmd.Name()
	}
	all := []CommandInfo{{Path: path, Depth: depth, Description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, path, depth+1)...)
	}
	return all
}
