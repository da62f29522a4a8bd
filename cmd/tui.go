package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"studyrec/internal/timer"
	"studyrec/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive session screen",
	Long: `Open the interactive session screen: start a session, watch the
elapsed time, pause, and finish, with a rotating support message. An
active session started from the CLI is picked up automatically, and
quitting the screen leaves a running session in place.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() {
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

	snapStore, ok := sessionStore()
	if !ok {
		return
	}
	t, ok := recoverTimer(snapStore)
	if !ok {
		return
	}
	if t == nil {
		t = timer.New(snapStore)
	}

	model := tui.NewModel(t, store, cfg.MessageInterval())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail("TUI error", err, "")
		return
	}
	flushStore(store)
}
