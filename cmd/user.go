package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studyrec/internal/config"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user [name]",
	Short: "Show or set the user name",
	Long: `Show or set the name records are filed under. The name is a plain
identity, not an account; anyone using the same name shares records.

Examples:
  studyrec user
  studyrec user alice`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			showUser()
			return
		}
		setUser(args[0])
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}

func showUser() {
	cfg, ok := loadConfig()
	if !ok {
		return
	}
	if cfg.UserName == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "No user name set")
		_, _ = fmt.Fprintln(deps.Stdout, "Set one with: studyrec user <name>")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, cfg.UserName)
}

func setUser(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		fail("User name cannot be empty", nil, "Usage: studyrec user <name>")
		return
	}

	cfg, ok := loadConfig()
	if !ok {
		return
	}
	cfg.UserName = name

	path, err := deps.ConfigPath()
	if err != nil {
		fail("Failed to determine config location", err, "")
		return
	}
	if err := config.Save(path, cfg); err != nil {
		fail("Failed to save config", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Recording as %s\n", name)
}
