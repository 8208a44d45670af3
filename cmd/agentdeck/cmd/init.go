package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize an agent management project",
	Long: `Create agents.json, the lock file, and the agent_configs directory in the
given path (default: current directory). Existing files are left untouched,
so init is safe to re-run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		created, err := core.InitProject(absDir)
		if err != nil {
			return err
		}

		for _, name := range created {
			fmt.Fprintf(os.Stdout, "Created %s\n", name)
		}
		fmt.Fprintf(os.Stdout, "Initialized agent management project in %s\n", absDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
