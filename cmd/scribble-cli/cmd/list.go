package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribble/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notebook tree",
	Long: `Print the folder and note hierarchy.

Collapsed folders are expanded for listing purposes.

Examples:
  scribble-cli list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := store.Load()
		if err != nil {
			return err
		}

		// Expand everything so the full structure is visible.
		for _, f := range nb.Folders {
			f.Expanded = true
		}

		items := nb.TreeItems()
		if len(items) == 0 {
			fmt.Println("The notebook is empty")
			return nil
		}
		for _, item := range items {
			marker := "-"
			if item.Type == domain.TreeItemFolder {
				marker = "+"
			}
			fmt.Printf("%s%s %s\n", strings.Repeat("  ", item.Depth), marker, item.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
