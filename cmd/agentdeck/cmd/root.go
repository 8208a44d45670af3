package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "agentdeck",
	Short: "Manage conversational AI agents as local config files",
	Long: `Agentdeck keeps a fleet of conversational AI agents in sync with their
local configuration.

Declare agents in agents.json, edit their JSON config documents, and run
sync: agentdeck hashes each document, compares it against the lock file,
and creates or updates the remote agent only when the content changed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agentdeck %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
