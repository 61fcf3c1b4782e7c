package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/orchestrator"
)

func validateCmd() *cobra.Command {
	var cardPath string
	var hostPath string
	var strict bool

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a card against the schema and report render warnings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := parseSource(cardPath)
			if err != nil {
				return err
			}
			host, err := loadHost(hostPath)
			if err != nil {
				return err
			}

			loader := card.NewLoader(card.LoaderOptions{AllowHTTP: true, RequestTimeout: 30 * time.Second})
			data, err := loader.Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			if err := card.Validate(data); err != nil {
				return err
			}

			rc, _, err := orchestrator.New(orchestrator.WithHostConfig(host)).Prepare(cmd.Context(), orchestrator.Request{Document: data})
			if err != nil {
				return err
			}
			warnings := rc.Warnings()
			for _, warning := range warnings {
				fmt.Fprintln(cmd.OutOrStdout(), warning.String())
			}
			if strict && len(warnings) > 0 {
				return fmt.Errorf("%d render warning(s)", len(warnings))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	c.Flags().StringVarP(&cardPath, "card", "c", "", "Card document path or URL (required)")
	c.Flags().StringVar(&hostPath, "host", "", "Host config file (.yaml, .toml or .json)")
	c.Flags().BoolVar(&strict, "strict", false, "Fail when the render pass reports warnings")

	_ = c.MarkFlagRequired("card")
	return c
}
