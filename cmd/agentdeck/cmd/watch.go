package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/barysiuk/agentdeck/internal/core"
	"github.com/barysiuk/agentdeck/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch config files and auto-sync on change",
	Long: `Poll agents.json and every declared config document, running a sync pass
whenever one changes.

By default this opens a live dashboard showing each agent's sync state.
Use --plain for a line-oriented loop suitable for logs and non-TTY use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		// Fatal preconditions are checked once up front: the loop itself
		// only ever reports per-agent problems.
		if _, err := core.ReadRegistry(dir); err != nil {
			return err
		}
		gw, err := newGateway(dir)
		if err != nil {
			return err
		}

		interval, _ := cmd.Flags().GetInt("interval")
		if interval < 1 {
			return fmt.Errorf("--interval must be at least 1 second")
		}
		env := resolveEnvironment(cmd)
		engine := core.NewEngine(dir, gw)

		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			return watchPlain(cmd, dir, env, time.Duration(interval)*time.Second, engine)
		}

		model := tui.NewWatch(dir, env, time.Duration(interval)*time.Second, engine)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

// watchPlain is the non-TTY watch loop: poll, sync on change, print.
func watchPlain(cmd *cobra.Command, dir, env string, interval time.Duration, engine *core.Engine) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stdout, "Watching for config changes (checking every %s)...\n", interval)
	fmt.Fprintln(os.Stdout, "Press Ctrl+C to stop")

	tracker := core.NewChangeTracker(dir)
	tracker.Prime()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stdout, "\nStopping watch")
			return nil
		case <-ticker.C:
			changed := tracker.Changed()
			if len(changed) == 0 {
				continue
			}
			for _, path := range changed {
				fmt.Fprintf(os.Stdout, "Detected change in %s\n", path)
			}

			report, err := engine.Sync(ctx, core.SyncOptions{Environment: env})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Sync error: %v\n", err)
				continue
			}
			printSyncReport(report)
		}
	}
}

func init() {
	watchCmd.Flags().String("env", "", "Environment tag to sync under (default: \"default\")")
	watchCmd.Flags().Int("interval", 5, "Check interval in seconds")
	watchCmd.Flags().Bool("plain", false, "Line-oriented output instead of the dashboard")
	addDirFlag(watchCmd)
	rootCmd.AddCommand(watchCmd)
}
