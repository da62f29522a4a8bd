package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studyrec/internal/recordstore"
)

var deleteForce bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Long: `Delete a record by id (shown by 'studyrec list'). Asks for
confirmation unless --force is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteRecord(args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
}

func deleteRecord(id string) {
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

	if !deleteForce {
		_, _ = fmt.Fprintf(deps.Stdout, "Delete record %s? [y/N] ", id)
		reader := bufio.NewReader(deps.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
	}

	if err := store.Delete(id); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			fail("Record not found", nil, "List ids with 'studyrec list'")
			return
		}
		fail("Failed to delete record", err, "")
		return
	}
	flushStore(store)

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted %s\n", id)
}
