package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyrec/internal/record"
	"studyrec/internal/timer"
)

var startLocation string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <category> <content>",
	Short: "Start a study session",
	Long: `Start a study session for the given category and content.
The session keeps running across terminal sessions until you finish it
with 'studyrec finish'.

Examples:
  studyrec start Math "Linear algebra ch. 3"
  studyrec start English vocabulary --location library`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		startSession(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVar(&startLocation, "location", "", "where the session takes place")
}

func startSession(category, content string) {
	snapStore, ok := sessionStore()
	if !ok {
		return
	}

	existing, ok := recoverTimer(snapStore)
	if !ok {
		return
	}
	if existing != nil {
		existing.Stop()
		fail("A session is already active", nil, "Finish it with 'studyrec finish' or check 'studyrec status'")
		return
	}

	t := timer.New(snapStore)
	if err := t.Start(category, content, startLocation); err != nil {
		if errors.Is(err, timer.ErrMissingFields) {
			fail("Category and content are required", nil, "Usage: studyrec start <category> <content>")
			return
		}
		fail("Failed to start session", err, "")
		return
	}
	t.Stop()

	_, _ = fmt.Fprintf(deps.Stdout, "Session started: %s / %s at %s\n",
		category, content, record.ClockOf(t.StartedAt()))
}
