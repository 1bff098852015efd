package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribble/internal/adapters/sqlite"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes",
	Long: `Search titles, content and tags through the SQLite index.

The index is rebuilt from the notebook before each query, so results
always reflect the latest saved state.

Examples:
  scribble-cli search groceries`,
	Args: cobra.ExactArgs(1),
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

		hits, err := idx.Search(args[0])
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%s  %s\n", h.ID, h.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
