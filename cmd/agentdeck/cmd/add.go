package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Declare a new agent",
	Long: `Declare a new agent: write a config document from a template, create the
agent remotely, and record its id in agents.json and the lock file.

With --skip-upload only the local files are written; the next sync pass
creates the remote agent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		reg, err := core.ReadRegistry(dir)
		if err != nil {
			return err
		}
		if _, ok := reg.Find(name); ok {
			return fmt.Errorf("agent %q already exists", name)
		}

		configPath, _ := cmd.Flags().GetString("config-path")
		if configPath == "" {
			configPath = core.DeriveConfigPath(name)
		}
		template, _ := cmd.Flags().GetString("template")
		skipUpload, _ := cmd.Flags().GetBool("skip-upload")

		doc, err := core.RenderTemplate(template, name)
		if err != nil {
			return err
		}

		absConfig := filepath.Join(dir, filepath.FromSlash(configPath))
		if err := core.WriteDocument(absConfig, doc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Created config file: %s\n", configPath)

		def := core.AgentDef{Name: name, Config: filepath.ToSlash(configPath)}

		if !skipUpload {
			gw, err := newGateway(dir)
			if err != nil {
				_ = os.Remove(absConfig)
				return err
			}

			sections := core.ExtractSections(doc, name)
			id, err := gw.CreateAgent(cmd.Context(), core.AgentRequest{
				Name:               sections.Name,
				ConversationConfig: sections.ConversationConfig,
				PlatformSettings:   sections.PlatformSettings,
				Tags:               sections.Tags,
			})
			if err != nil {
				// Don't leave a half-added agent behind.
				_ = os.Remove(absConfig)
				return fmt.Errorf("creating agent %q: %w", name, err)
			}
			def.ID = id
			fmt.Fprintf(os.Stdout, "Created remote agent with ID: %s\n", id)

			lf := core.ReadLockFile(dir)
			lf.Upsert(name, core.DefaultEnvironment, id, core.Fingerprint(doc))
			if err := core.WriteLockFile(dir, lf); err != nil {
				return err
			}
		}

		if err := reg.Add(def); err != nil {
			return err
		}
		if err := core.WriteRegistry(dir, reg); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Added agent %q to agents.json\n", name)
		fmt.Fprintf(os.Stdout, "Edit %s to customize the agent, then run 'agentdeck sync'\n", configPath)
		return nil
	},
}

func init() {
	addCmd.Flags().String("config-path", "", "Custom config file location (default: agent_configs/<name>.json)")
	addCmd.Flags().String("template", "default", "Config template to start from (see 'agentdeck templates')")
	addCmd.Flags().Bool("skip-upload", false, "Write local files only; create the remote agent on next sync")
	addDirFlag(addCmd)
	rootCmd.AddCommand(addCmd)
}
