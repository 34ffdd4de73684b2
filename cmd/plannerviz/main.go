// cmd/plannerviz/main.go
package main

import (
	"os"

	cmd "github.com/mwiater/plannerviz/internal/commands"
)

// Build metadata, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
	exit           = os.Exit
)

// main injects build metadata and exits with the code of the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	exit(executeCmd())
}
