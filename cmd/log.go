package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyrec/internal/daybound"
	"studyrec/internal/record"
)

var logFlags struct {
	date       string
	start      string
	end        string
	location   string
	condition  string
	comment    string
	enthusiasm string
}

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log <category> <content>",
	Short: "Record a past session manually",
	Long: `Record a session that was not timed. Start and end times are
required; the duration is computed from them, treating an end before the
start as crossing midnight. The date defaults to the current logical day
and is stored as given.

Examples:
  studyrec log Math "practice exam" --start 21:00 --end 22:30
  studyrec log Reading novel --date 2026/08/20 --start 23:30 --end 01:00`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logSession(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logFlags.date, "date", "", "calendar date (YYYY/MM/DD, default: today)")
	logCmd.Flags().StringVar(&logFlags.start, "start", "", "start time (HH:MM)")
	logCmd.Flags().StringVar(&logFlags.end, "end", "", "end time (HH:MM)")
	logCmd.Flags().StringVar(&logFlags.location, "location", "", "where the session took place")
	logCmd.Flags().StringVar(&logFlags.condition, "condition", "", "how the session went")
	logCmd.Flags().StringVar(&logFlags.comment, "comment", "", "free-form note")
	logCmd.Flags().StringVar(&logFlags.enthusiasm, "enthusiasm", "", "enthusiasm level")
	_ = logCmd.MarkFlagRequired("start")
	_ = logCmd.MarkFlagRequired("end")
}

func logSession(category, content string) {
	duration, err := record.DurationBetween(logFlags.start, logFlags.end)
	if err != nil {
		fail("Invalid time", err, "Use 24-hour HH:MM, e.g. --start 21:00 --end 22:30")
		return
	}

	date := logFlags.date
	if date == "" {
		date = daybound.LogicalDate(time.Now())
	} else {
		date = record.NormalizeDate(date)
	}

	cfg, ok := loadConfig()
	if !ok {
		return
	}
	store, ok := openStore(cfg)
	if !ok {
		return
	}
	defer store.Close()

	rec := record.Record{
		Date:       date,
		StartTime:  logFlags.start,
		EndTime:    logFlags.end,
		Duration:   duration,
		Category:   category,
		Content:    content,
		Location:   logFlags.location,
		Condition:  logFlags.condition,
		Comment:    logFlags.comment,
		Enthusiasm: logFlags.enthusiasm,
	}
	if err := store.Create(rec); err != nil {
		fail("Failed to record session", err, "Category and content cannot be empty")
		return
	}
	flushStore(store)

	_, _ = fmt.Fprintf(deps.Stdout, "Recorded %s / %s on %s (%s)\n",
		category, content, daybound.BelongingDate(date, logFlags.start), formatMinutes(duration))
}
