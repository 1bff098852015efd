package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribble/internal/adapters/sqlite"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index",
	Long: `Rebuild the SQLite search index from the notebook. Normally not
needed — search syncs the index itself — but useful after restoring a
backup or editing the notebook file by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := store.Load()
		if err != nil {
			return err
		}

		idx, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return err
		}
		defer idx.Close()

		if err := idx.Sync(nb); err != nil {
			return err
		}
		fmt.Printf("Indexed %d notes\n", len(nb.Notes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
