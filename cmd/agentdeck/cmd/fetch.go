package cmd

import (
	"fmt"
	"os"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Import remote agents into the local project",
	Long: `List agents on the remote service and import any that are not declared
locally: write their config document under agent_configs/, add a
declaration to agents.json, and record them in the lock file so the next
sync reports them unchanged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		gw, err := newGateway(dir)
		if err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		results, err := core.Fetch(cmd.Context(), dir, gw, core.FetchOptions{
			Search: search,
			DryRun: dryRun,
		})
		if err != nil {
			return err
		}

		imported := 0
		for _, res := range results {
			switch {
			case res.Err != nil:
				fmt.Fprintf(os.Stderr, "  %s: error: %v\n", res.Name, res.Err)
			case res.Skipped:
				fmt.Fprintf(os.Stdout, "  %s: already declared\n", res.Name)
			case dryRun:
				fmt.Fprintf(os.Stdout, "  %s: would import to %s\n", res.Name, res.ConfigPath)
			default:
				fmt.Fprintf(os.Stdout, "  %s: imported to %s\n", res.Name, res.ConfigPath)
				imported++
			}
		}
		if !dryRun {
			fmt.Fprintf(os.Stdout, "Imported %d agent(s)\n", imported)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("search", "", "Only consider remote agents matching this search term")
	fetchCmd.Flags().Bool("dry-run", false, "Show what would be imported without writing anything")
	addDirFlag(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}
