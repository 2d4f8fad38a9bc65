package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tbxark/intakeflow/form"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the request form",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := form.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}
