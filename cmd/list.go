package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyrec/internal/daybound"
	"studyrec/internal/record"
)

var listAll bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [date]",
	Short: "List records with their ids",
	Long: `List the records of one logical day (default: today), including the
ids needed by 'studyrec edit' and 'studyrec delete'. Records crossing the
4 AM boundary are shown split, marked with *.

Examples:
  studyrec list
  studyrec list 2026/08/20
  studyrec list --all`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		day := ""
		if len(args) == 1 {
			day = record.NormalizeDate(args[0])
		}
		listRecords(day)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAll, "all", false, "list every record")
}

func listRecords(day string) {
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

	if day == "" && !listAll {
		day = daybound.LogicalDate(time.Now())
	}

	var rows []record.Record
	for _, r := range store.Expanded() {
		if listAll || daybound.BelongingDate(r.Date, r.StartTime) == day {
			rows = append(rows, r)
		}
	}

	if listAll {
		_, _ = fmt.Fprintln(deps.Stdout, "All records")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Records for %s\n", day)
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "  (none)")
		return
	}

	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = "(pending)"
		}
		marker := ""
		if r.Split {
			marker = " *"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "  %-38s %s %s-%s  %-12s %s (%s)%s\n",
			id, r.Date, r.StartTime, r.EndTime, r.Category, r.Content,
			formatMinutes(r.Duration), marker)
	}
}
