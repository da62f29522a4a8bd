package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyrec/internal/timer"
)

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running session",
	Long:  `Pause the running session. Paused time does not count as studied time.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pauseSession()
	},
}

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused session",
	Long:  `Resume a paused session and continue counting studied time.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resumeSession()
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
}

func pauseSession() {
	t, ok := activeTimer()
	if !ok {
		return
	}
	defer t.Stop()

	if err := t.Pause(); err != nil {
		if errors.Is(err, timer.ErrAlreadyPaused) {
			fail("Session is already paused", nil, "Resume it with 'studyrec resume'")
			return
		}
		fail("Failed to pause session", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Session paused (studied %s so far)\n",
		formatElapsed(t.ElapsedAt(time.Now())))
}

func resumeSession() {
	t, ok := activeTimer()
	if !ok {
		return
	}
	defer t.Stop()

	if err := t.Resume(); err != nil {
		if errors.Is(err, timer.ErrNotPaused) {
			fail("Session is not paused", nil, "")
			return
		}
		fail("Failed to resume session", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Session resumed (studied %s so far)\n",
		formatElapsed(t.ElapsedAt(time.Now())))
}

// activeTimer recovers the running session or reports that none exists.
func activeTimer() (*timer.Timer, bool) {
	snapStore, ok := sessionStore()
	if !ok {
		return nil, false
	}
	t, ok := recoverTimer(snapStore)
	if !ok {
		return nil, false
	}
	if t == nil {
		fail("No session running", nil, "Start one with 'studyrec start <category> <content>'")
		return nil, false
	}
	return t, true
}
