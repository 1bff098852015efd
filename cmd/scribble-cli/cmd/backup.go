package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the notebook",
	Long: `Copy the persisted notebook file into a timestamped archive
under the data directory.

Examples:
  scribble-cli backup
  scribble-cli backup --list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listBackups {
			backups, err := store.ListBackups()
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println("No backups found")
				return nil
			}
			for _, b := range backups {
				fmt.Println(b)
			}
			return nil
		}

		if restorePath != "" {
			if err := store.Restore(restorePath); err != nil {
				return err
			}
			fmt.Printf("Restored notebook from %s\n", restorePath)
			return nil
		}

		path, err := store.Backup()
		if err != nil {
			return err
		}
		fmt.Printf("Backup created: %s\n", path)
		return nil
	},
}

var (
	listBackups bool
	restorePath string
)

func init() {
	backupCmd.Flags().BoolVar(&listBackups, "list", false, "list existing backups, newest first")
	backupCmd.Flags().StringVar(&restorePath, "restore", "", "restore the notebook from a backup file")
	rootCmd.AddCommand(backupCmd)
}
