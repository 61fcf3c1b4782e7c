package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender/pkg/card"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the card JSON schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := card.GenerateJSONSchema()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(schema, '\n'))
			return err
		},
	}
}
