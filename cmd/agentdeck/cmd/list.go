package cmd

import (
	"fmt"
	"os"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list-agents",
	Aliases: []string{"list"},
	Short:   "List all declared agents",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		reg, err := core.ReadRegistry(dir)
		if err != nil {
			return err
		}

		if len(reg.Agents) == 0 {
			fmt.Fprintln(os.Stdout, "No agents configured")
			return nil
		}

		fmt.Fprintln(os.Stdout, "Configured Agents:")
		for i, def := range reg.Agents {
			fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, def.Name)
			fmt.Fprintf(os.Stdout, "   Config: %s\n", def.Config)
			if def.ID != "" {
				fmt.Fprintf(os.Stdout, "   ID: %s\n", def.ID)
			}
		}
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available config templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := core.Templates()
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Fprintf(os.Stdout, "%-10s %s\n", info.Name, info.Description)
		}
		return nil
	},
}

func init() {
	addDirFlag(listCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(templatesCmd)
}
