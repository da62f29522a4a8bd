package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyrec/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show the current configuration, or change it with flags.

Examples:
  studyrec config
  studyrec config --api-url https://example.com/api
  studyrec config --message-interval 30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfig(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("api-url", "", "record API endpoint")
	configCmd.Flags().Int("message-interval", 0, "support message rotation period in seconds")
	configCmd.Flags().Int("refetch-delay-ms", 0, "delay before the post-mutation refetch")
}

func runConfig(cmd *cobra.Command) {
	cfg, ok := loadConfig()
	if !ok {
		return
	}

	changed := false
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL, _ = cmd.Flags().GetString("api-url")
		changed = true
	}
	if cmd.Flags().Changed("message-interval") {
		v, _ := cmd.Flags().GetInt("message-interval")
		if v <= 0 {
			fail("message-interval must be positive", nil, "")
			return
		}
		cfg.MessageIntervalSeconds = v
		changed = true
	}
	if cmd.Flags().Changed("refetch-delay-ms") {
		v, _ := cmd.Flags().GetInt("refetch-delay-ms")
		if v <= 0 {
			fail("refetch-delay-ms must be positive", nil, "")
			return
		}
		cfg.RefetchDelayMs = v
		changed = true
	}

	if changed {
		path, err := deps.ConfigPath()
		if err != nil {
			fail("Failed to determine config location", err, "")
			return
		}
		if err := config.Save(path, cfg); err != nil {
			fail("Failed to save config", err, "")
			return
		}
	}

	_, _ = fmt.Fprintf(deps.Stdout, "api_url:                  %s\n", valueOrUnset(cfg.APIURL))
	_, _ = fmt.Fprintf(deps.Stdout, "user_name:                %s\n", valueOrUnset(cfg.UserName))
	_, _ = fmt.Fprintf(deps.Stdout, "message_interval_seconds: %d\n", cfg.MessageIntervalSeconds)
	_, _ = fmt.Fprintf(deps.Stdout, "refetch_delay_ms:         %d\n", cfg.RefetchDelayMs)
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
