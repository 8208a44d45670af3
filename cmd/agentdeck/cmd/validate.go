package cmd

import (
	"fmt"
	"os"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate an agent config document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		doc, err := core.ReadDocument(path)
		if err != nil {
			return err
		}

		issues := core.ValidateDocument(doc)
		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Fprintf(os.Stderr, "  %s\n", issue)
			}
			return fmt.Errorf("%s: %d issue(s)", path, len(issues))
		}

		fmt.Fprintf(os.Stdout, "%s is valid (hash %s...)\n", path, core.ShortHash(core.Fingerprint(doc)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
