// Command recompute is the admin CLI entry point for C9/C10, grounded on
// bbak-mcs-mcp's cmd/mcs-mcp/commands/root.go idiom (cobra root command,
// PersistentPreRun loading config+logging before any subcommand runs).
package main

import (
	"os"

	"github.com/aquarian247/AquaMind-sub005/cmd/recompute/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
