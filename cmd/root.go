package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"studyrec/internal/daybound"
	"studyrec/internal/logging"
	"studyrec/internal/record"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "studyrec",
	Short: "A study session recorder",
	Long: `studyrec times study sessions and records them to a shared record store.

A day runs from 4 AM to 4 AM, so a late night session before 4 AM counts
toward the previous day.

Usage:
  studyrec start <category> <content>   Start a session
  studyrec                              List today's records
  studyrec status                       Show the running session
  studyrec pause / resume               Suspend and continue the session
  studyrec finish                       End the session and record it
  studyrec log <category> <content>     Record a past session manually
  studyrec report [day|week|month]      Aggregate studied time
  studyrec tui                          Interactive session screen`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		listToday()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")
}

func initLogging() {
	path, err := deps.ConfigPath()
	if err != nil {
		return
	}
	if err := logging.Init(logging.Config{Debug: debugFlag, ConfigDir: filepath.Dir(path)}); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: logging disabled (%v)\n", err)
	}
}

// listToday prints the current logical day's records and total.
func listToday() {
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

	today := daybound.LogicalDate(time.Now())
	var rows []record.Record
	for _, r := range store.Expanded() {
		if daybound.BelongingDate(r.Date, r.StartTime) == today {
			rows = append(rows, r)
		}
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Records for %s\n", today)
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "  (none)")
		return
	}

	total := 0
	for _, r := range rows {
		marker := ""
		if r.Split {
			marker = " *"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "  %s-%s  %-12s %s (%s)%s\n",
			r.StartTime, r.EndTime, r.Category, r.Content, formatMinutes(r.Duration), marker)
		total += r.Duration
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", formatMinutes(total))
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"studyrec version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
