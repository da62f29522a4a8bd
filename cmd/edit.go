package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyrec/internal/record"
	"studyrec/internal/recordstore"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing record",
	Long: `Edit fields of an existing record by id (shown by 'studyrec list').
When the start or end time changes, the duration is recomputed. The change
reaches the local view on the reconciling refetch shortly after.

Examples:
  studyrec edit 3f2a... --content "ch. 4 instead"
  studyrec edit 3f2a... --start 20:00 --end 21:15`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editRecord(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("date", "", "calendar date (YYYY/MM/DD)")
	editCmd.Flags().String("start", "", "start time (HH:MM)")
	editCmd.Flags().String("end", "", "end time (HH:MM)")
	editCmd.Flags().String("category", "", "new category")
	editCmd.Flags().String("content", "", "new content")
	editCmd.Flags().String("location", "", "new location")
	editCmd.Flags().String("condition", "", "new condition")
	editCmd.Flags().String("comment", "", "new comment")
	editCmd.Flags().String("enthusiasm", "", "new enthusiasm")
}

func editRecord(cmd *cobra.Command, id string) {
	cfg, ok := loadConfig()
	if !ok {
		return
	}
	store, ok := openStore(cfg)
	if !ok {
		return
	}
	defer store.Close()
	refreshStore(store)

	var rec record.Record
	found := false
	for _, r := range store.Records() {
		if r.ID == id {
			rec = r
			found = true
			break
		}
	}
	if !found {
		fail("Record not found", nil, "List ids with 'studyrec list'")
		return
	}

	apply := func(flag string, dst *string) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	apply("date", &rec.Date)
	apply("start", &rec.StartTime)
	apply("end", &rec.EndTime)
	apply("category", &rec.Category)
	apply("content", &rec.Content)
	apply("location", &rec.Location)
	apply("condition", &rec.Condition)
	apply("comment", &rec.Comment)
	apply("enthusiasm", &rec.Enthusiasm)
	rec.Date = record.NormalizeDate(rec.Date)

	if cmd.Flags().Changed("start") || cmd.Flags().Changed("end") {
		duration, err := record.DurationBetween(rec.StartTime, rec.EndTime)
		if err != nil {
			fail("Invalid time", err, "Use 24-hour HH:MM")
			return
		}
		rec.Duration = duration
	}

	if err := store.Update(rec); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			fail("Record not found", nil, "List ids with 'studyrec list'")
			return
		}
		fail("Failed to update record", err, "")
		return
	}
	flushStore(store)

	_, _ = fmt.Fprintf(deps.Stdout, "Updated %s (%s %s-%s, %s)\n",
		rec.ID, rec.Date, rec.StartTime, rec.EndTime, formatMinutes(rec.Duration))
}
