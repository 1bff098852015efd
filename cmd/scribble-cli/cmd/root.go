package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scribble/internal/adapters/storage"
	"scribble/internal/config"
)

var (
	dataDir string
	store   *storage.Store
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scribble-cli",
	Short: "CLI for managing Scribble notebooks",
	Long: `scribble-cli works with the same notebook as the Scribble TUI.

It provides commands to list, search, export, import and back up notes
without entering the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(config.DefaultPath())
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		store, err = storage.NewStore(cfg.DataDir)
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "notebook data directory (default from config)")
}
