package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribble/internal/adapters/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export all notes as markdown files",
	Long: `Write every note to the given directory as a .md file with a
metadata header. Filenames are derived from sanitized note titles.

Examples:
  scribble-cli export ~/notes-backup`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := store.Load()
		if err != nil {
			return err
		}

		count, err := export.NewExchange().Export(nb, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d notes to %s\n", count, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
