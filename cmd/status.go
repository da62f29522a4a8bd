package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyrec/internal/record"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session",
	Long: `Show the running session if one exists.

Displays category, content, start time, elapsed studied time, and whether
the session is paused.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showStatus()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func showStatus() {
	snapStore, ok := sessionStore()
	if !ok {
		return
	}
	t, ok := recoverTimer(snapStore)
	if !ok {
		return
	}
	if t == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "No session running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start one with: studyrec start <category> <content>")
		return
	}
	defer t.Stop()

	category, content, location := t.Session()
	state := "Studying"
	if t.Paused() {
		state = "Paused"
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s: %s / %s\n", state, category, content)
	if location != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Location: %s\n", location)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Started:  %s\n", record.ClockOf(t.StartedAt()))
	_, _ = fmt.Fprintf(deps.Stdout, "Elapsed:  %s\n", formatElapsed(t.ElapsedAt(time.Now())))
}
