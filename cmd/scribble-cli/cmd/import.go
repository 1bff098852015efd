package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribble/internal/adapters/export"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import markdown files as notes",
	Long: `Read every .md file in the directory into the notebook. A file
whose first line is a level-1 heading uses that heading as the note
title; otherwise the filename is used. Files whose title collides with
an existing note are skipped and reported.

Examples:
  scribble-cli import ~/Downloads/notes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := store.Load()
		if err != nil {
			return err
		}

		report, err := export.NewExchange().Import(nb, args[0])
		if err != nil {
			return err
		}
		if err := store.Save(nb); err != nil {
			return err
		}

		fmt.Printf("Imported %d notes\n", report.Imported)
		for _, skipped := range report.Skipped {
			fmt.Printf("Skipped: %s\n", skipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
