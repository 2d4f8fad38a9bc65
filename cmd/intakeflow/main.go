package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "intakeflow",
	Short: "Service request intake for a local AC repair business",
	Long: `intakeflow runs the intake flow of an AC repair landing page in the terminal:
quick triage, the service request form, submission with acknowledgment and the FAQ.

Available subcommands:
  run     - Start an interactive intake session
  catalog - Print the symptom and FAQ catalog
  schema  - Print the JSON schema of the request form`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(runCmd, catalogCmd, schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
