package cmd

import (
	"fmt"
	"os"

	"github.com/barysiuk/agentdeck/internal/convai"
	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/spf13/cobra"
)

// resolveTargetDir resolves the --dir flag or falls back to cwd.
func resolveTargetDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// addDirFlag adds the shared --dir flag to a project-scoped command.
func addDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
}

// newGateway builds an API client for the given project directory.
// A missing API key is a fatal precondition.
func newGateway(dir string) (*convai.Client, error) {
	resolver := core.NewEnvResolver(dir, "")
	key, err := resolver.APIKey()
	if err != nil {
		return nil, err
	}
	return convai.NewClient(key, resolveAPIURL(resolver)), nil
}

// resolveAPIURL picks the API base URL: env var, then global config, then
// the built-in default (empty string makes the client use its default).
func resolveAPIURL(resolver *core.EnvResolver) string {
	if u, ok := resolver.Lookup(core.EnvAPIURL); ok && u != "" {
		return u
	}
	if cm, err := core.NewConfigManager(); err == nil {
		if cfg, err := cm.Load(); err == nil && cfg.APIURL != "" {
			return cfg.APIURL
		}
	}
	return ""
}

// resolveEnvironment picks the environment tag: the --env flag, then the
// global config default, then empty (which the core maps to "default").
func resolveEnvironment(cmd *cobra.Command) string {
	env, _ := cmd.Flags().GetString("env")
	if env != "" {
		return env
	}
	if cm, err := core.NewConfigManager(); err == nil {
		if cfg, err := cm.Load(); err == nil {
			return cfg.DefaultEnvironment
		}
	}
	return ""
}

// stateLabel maps an agent state to the status line shown to the user.
func stateLabel(st core.AgentStatus) string {
	switch st.State {
	case core.StateSynced:
		return "synced"
	case core.StateChanged:
		return "config changed (needs sync)"
	case core.StateNew:
		return "new (needs sync)"
	case core.StateMissingConfig:
		return "config file not found"
	case core.StateInvalidConfig:
		return fmt.Sprintf("config error: %v", st.Err)
	}
	return string(st.State)
}
