package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tbxark/intakeflow/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the symptom and FAQ catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cat.SymptomsMarkdown())
		fmt.Fprintln(out, cat.FAQMarkdown())
		return nil
	},
}
