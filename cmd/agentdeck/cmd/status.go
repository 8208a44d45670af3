package cmd

import (
	"fmt"
	"os"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync state of all agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		statuses, err := core.CollectStatus(dir, resolveEnvironment(cmd))
		if err != nil {
			return err
		}

		if len(statuses) == 0 {
			fmt.Fprintln(os.Stdout, "No agents configured")
			return nil
		}

		fmt.Fprintln(os.Stdout, "Agent Status:")
		for _, st := range statuses {
			fmt.Fprintf(os.Stdout, "\n%s\n", st.Name)
			id := st.ID
			if id == "" {
				id = "not set"
			}
			fmt.Fprintf(os.Stdout, "  ID:     %s\n", id)
			fmt.Fprintf(os.Stdout, "  Config: %s\n", st.ConfigPath)
			if st.Hash != "" {
				fmt.Fprintf(os.Stdout, "  Hash:   %s...\n", core.ShortHash(st.Hash))
			}
			fmt.Fprintf(os.Stdout, "  Status: %s\n", stateLabel(st))
			if st.IDMismatch {
				fmt.Fprintf(os.Stdout, "  Warning: agents.json and the lock file disagree on the remote id; 'agentdeck fetch' re-imports remote state\n")
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().String("env", "", "Environment tag to check against (default: \"default\")")
	addDirFlag(statusCmd)
	rootCmd.AddCommand(statusCmd)
}
