package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/orchestrator"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/renderers/html"
	"github.com/goliatone/go-cardrender/pkg/renderers/tui"
	"github.com/goliatone/go-cardrender/pkg/visibility"
)

type renderFlags struct {
	cardPath     string
	hostPath     string
	dataPath     string
	renderer     string
	format       string
	output       string
	action       string
	locale       string
	themeName    string
	themeVariant string
	showWarnings bool
}

func renderCmd() *cobra.Command {
	var flags renderFlags

	c := &cobra.Command{
		Use:   "render",
		Short: "Render a card with the html or tui renderer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := parseSource(flags.cardPath)
			if err != nil {
				return err
			}
			host, err := loadHost(flags.hostPath)
			if err != nil {
				return err
			}
			data, err := loadData(flags.dataPath)
			if err != nil {
				return err
			}
			registry, err := cliRegistry(cmd, tui.OutputFormat(flags.format))
			if err != nil {
				return err
			}

			orch := orchestrator.New(
				orchestrator.WithLoader(card.NewLoader(card.LoaderOptions{AllowHTTP: true, RequestTimeout: 30 * time.Second})),
				orchestrator.WithRegistry(registry),
				orchestrator.WithHostConfig(host),
			)
			out, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Source:       src,
				Data:         visibility.Context{Values: data},
				Renderer:     flags.renderer,
				ThemeName:    flags.themeName,
				ThemeVariant: flags.themeVariant,
				RenderOptions: render.RenderOptions{
					Action:       flags.action,
					Locale:       flags.locale,
					ShowWarnings: flags.showWarnings,
				},
			})
			if err != nil {
				return err
			}

			if flags.output != "" {
				if err := os.WriteFile(flags.output, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Card written to %s\n", flags.output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}

	c.Flags().StringVarP(&flags.cardPath, "card", "c", "", "Card document path or URL (required)")
	c.Flags().StringVar(&flags.hostPath, "host", "", "Host config file (.yaml, .toml or .json)")
	c.Flags().StringVar(&flags.dataPath, "data", "", "YAML or JSON file with $when data")
	c.Flags().StringVarP(&flags.renderer, "renderer", "r", "html", "Renderer to use (html, tui)")
	c.Flags().StringVar(&flags.format, "format", string(tui.OutputFormatJSON), "tui output format (json, form, pretty)")
	c.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (stdout if empty)")
	c.Flags().StringVar(&flags.action, "action", "", "Form action URL for html output")
	c.Flags().StringVar(&flags.locale, "locale", "", "Locale for renderer chrome")
	c.Flags().StringVar(&flags.themeName, "theme", "", "Theme name override")
	c.Flags().StringVar(&flags.themeVariant, "variant", "", "Theme variant override")
	c.Flags().BoolVar(&flags.showWarnings, "show-warnings", false, "Include render warnings in the output")

	_ = c.MarkFlagRequired("card")
	return c
}

func cliRegistry(cmd *cobra.Command, format tui.OutputFormat) (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New(
		tui.WithOutputFormat(format),
		tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
	)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(htmlRenderer, tuiRenderer)
}
