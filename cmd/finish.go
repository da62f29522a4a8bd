package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyrec/internal/message"
	"studyrec/internal/timer"
)

var finishExtra timer.Extra

// finishCmd represents the finish command
var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the session and record it",
	Long: `End the running session, record it, and show a finish message.

The studied duration is the wall time since start minus paused time,
rounded to whole minutes. The record is attributed to the day the session
started on, with anything before 4 AM counting toward the previous day.

Examples:
  studyrec finish
  studyrec finish --condition focused --comment "finished ch. 3"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		finishSession()
	},
}

func init() {
	rootCmd.AddCommand(finishCmd)
	finishCmd.Flags().StringVar(&finishExtra.Condition, "condition", "", "how the session went")
	finishCmd.Flags().StringVar(&finishExtra.Comment, "comment", "", "free-form note")
	finishCmd.Flags().StringVar(&finishExtra.Location, "location", "", "override the session location")
	finishCmd.Flags().StringVar(&finishExtra.Enthusiasm, "enthusiasm", "", "enthusiasm level")
}

func finishSession() {
	// Open the store before committing so a config problem leaves the
	// session recoverable.
	cfg, ok := loadConfig()
	if !ok {
		return
	}
	store, ok := openStore(cfg)
	if !ok {
		return
	}
	defer store.Close()

	t, ok := activeTimer()
	if !ok {
		return
	}

	draft, err := t.Finish()
	if err != nil {
		fail("Failed to finish session", err, "")
		return
	}
	rec, err := t.Commit(finishExtra)
	if err != nil {
		fail("Failed to record session", err, "The session snapshot is kept; try again")
		return
	}

	refreshStore(store)

	// The just-finished record is not in the mirror yet.
	todayTotal := store.TodayTotalMinutes() + rec.Duration
	finishMsg := message.Select(store.MasterData().FinishMessages, rec.Duration, todayTotal)

	if err := store.Create(rec); err != nil {
		fail("Failed to record session", err, "")
		return
	}
	flushStore(store)

	_, _ = fmt.Fprintln(deps.Stdout, finishMsg)
	_, _ = fmt.Fprintf(deps.Stdout, "Studied %s (%s-%s), %s today\n",
		formatMinutes(rec.Duration), draft.StartTime, rec.EndTime, formatMinutes(todayTotal))
}
