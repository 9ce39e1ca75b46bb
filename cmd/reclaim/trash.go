package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fenilsonani/reclaim/internal/logging"
	"github.com/fenilsonani/reclaim/internal/platform"
	"github.com/fenilsonani/reclaim/internal/trash"
	"github.com/fenilsonani/reclaim/pkg/utils"
)

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Manage reversibly deleted items",
}

// openTrash opens the trash and opportunistically drops expired items, so
// every trash command sees a current journal.
func openTrash() (*trash.Trash, error) {
	info, err := platform.GetInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get platform info: %w", err)
	}
	tr, err := trash.Open(info.TrashRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open trash: %w", err)
	}
	if _, err := tr.CleanupExpired(); err != nil {
		logging.L().WithError(err).Warn("trash expiry sweep incomplete")
	}
	return tr, nil
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trashed items",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := openTrash()
		if err != nil {
			return err
		}

		data := tr.Items()
		if data.TotalItems == 0 {
			fmt.Println("Trash is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tORIGINAL PATH\tSIZE\tEXPIRES")
		for _, item := range data.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				item.ID, item.OriginalPath,
				utils.FormatBytes(item.Size),
				item.ExpiresAt.Format(time.RFC3339))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d items, %s\n", data.TotalItems, utils.FormatBytes(data.TotalSize))
		return nil
	},
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a trashed item to its original path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := openTrash()
		if err != nil {
			return err
		}
		if err := tr.Restore(args[0]); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Println("Restored.")
		return nil
	},
}

var trashDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Permanently delete one trashed item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := openTrash()
		if err != nil {
			return err
		}
		if err := tr.Delete(args[0]); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		fmt.Println("Deleted permanently.")
		return nil
	},
}

var trashEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Permanently delete everything in the trash",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := openTrash()
		if err != nil {
			return err
		}
		removed, err := tr.Empty()
		fmt.Printf("Removed %d items.\n", removed)
		return err
	},
}

func init() {
	trashCmd.AddCommand(trashListCmd)
	trashCmd.AddCommand(trashRestoreCmd)
	trashCmd.AddCommand(trashDeleteCmd)
	trashCmd.AddCommand(trashEmptyCmd)
}
