package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"studyrec/internal/recordstore"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [day|week|month]",
	Short: "Aggregate studied time",
	Long: `Aggregate studied time per logical day, ISO week, or month, with a
per-category breakdown. Time is attributed to logical days, so a session
crossing 4 AM is counted on both sides of the boundary.

Examples:
  studyrec report
  studyrec report week`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"day", "week", "month"},
	Run: func(cmd *cobra.Command, args []string) {
		period := recordstore.PeriodDay
		if len(args) == 1 {
			period = recordstore.Period(args[0])
		}
		showReport(period)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func showReport(period recordstore.Period) {
	switch period {
	case recordstore.PeriodDay, recordstore.PeriodWeek, recordstore.PeriodMonth:
	default:
		fail(fmt.Sprintf("Unknown period %q", period), nil, "Use day, week, or month")
		return
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
	refreshStore(store)

	buckets := recordstore.Aggregate(period, store.Records())
	if len(buckets) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No records")
		return
	}

	for _, b := range buckets {
		_, _ = fmt.Fprintf(deps.Stdout, "%-12s %s\n", b.Label, formatMinutes(b.Minutes))

		categories := make([]string, 0, len(b.ByCategory))
		for c := range b.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			_, _ = fmt.Fprintf(deps.Stdout, "  %-12s %s\n", c, formatMinutes(b.ByCategory[c]))
		}
	}
}
