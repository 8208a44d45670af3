package cmd

import (
	"fmt"
	"os"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize agents with the remote service",
	Long: `Run one sync pass over every declared agent.

Each agent's config document is hashed and compared against the lock file:
unchanged agents are skipped, new ones are created remotely, changed ones
are updated. Per-agent failures are reported but do not abort the pass or
change the exit code; missing agents.json or a missing API key do.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")

		var gateway core.Gateway
		if !dryRun {
			gw, err := newGateway(dir)
			if err != nil {
				return err
			}
			gateway = gw
		}

		engine := core.NewEngine(dir, gateway)
		report, err := engine.Sync(cmd.Context(), core.SyncOptions{
			DryRun:      dryRun,
			Environment: resolveEnvironment(cmd),
		})
		if err != nil {
			return err
		}

		printSyncReport(report)
		return nil
	},
}

func printSyncReport(report *core.SyncReport) {
	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "  %s: error: %v\n", res.Name, res.Err)
		case res.Action == core.ActionNone:
			fmt.Fprintf(os.Stdout, "  %s: unchanged\n", res.Name)
		case report.DryRun:
			fmt.Fprintf(os.Stdout, "  %s: would %s\n", res.Name, res.Action)
		case res.Action == core.ActionCreate:
			fmt.Fprintf(os.Stdout, "  %s: created (ID: %s)\n", res.Name, res.ID)
		case res.Action == core.ActionUpdate:
			fmt.Fprintf(os.Stdout, "  %s: updated (ID: %s)\n", res.Name, res.ID)
		}
	}

	fmt.Fprintf(os.Stdout, "Sync complete: %d created, %d updated, %d unchanged, %d failed\n",
		report.Created(), report.Updated(), report.Unchanged(), report.Failed())
	if report.LedgerSaved {
		fmt.Fprintln(os.Stdout, "Updated lock file")
	}
}

func init() {
	syncCmd.Flags().Bool("dry-run", false, "Show what would be done without making changes")
	syncCmd.Flags().String("env", "", "Environment tag to sync under (default: \"default\")")
	addDirFlag(syncCmd)
	rootCmd.AddCommand(syncCmd)
}
