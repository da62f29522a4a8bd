package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyrec/internal/remote"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the latest records",
	Long: `Fetch the user's records and suggestion data from the record
service, replacing the local view and refreshing the disk cache.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		syncRecords()
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func syncRecords() {
	cfg, ok := loadConfig()
	if !ok {
		return
	}
	store, ok := openStore(cfg)
	if !ok {
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), remote.DefaultTimeout)
	defer cancel()
	if err := store.RefetchAll(ctx); err != nil {
		fail("Failed to fetch records", err, "Check api_url and your network connection")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Synced %d records for %s\n",
		len(store.Records()), store.UserName())
}
