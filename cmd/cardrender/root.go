package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardrender/internal/logging"
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
)

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:           "cardrender",
		Short:         "Render declarative cards to HTML or the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if debug {
				level = "debug"
			}
			return logging.Configure(level, cmd.ErrOrStderr())
		},
	}
	cmd.SetContext(context.Background())

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.AddCommand(renderCmd(), validateCmd(), schemaCmd())
	return cmd
}

// parseSource treats http(s) locations as URLs and anything else as a file.
func parseSource(raw string) (card.Source, error) {
	location := strings.TrimSpace(raw)
	if location == "" {
		return nil, fmt.Errorf("card location is required")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return card.SourceFromURL(location)
	}
	return card.SourceFromFile(location), nil
}

func loadHost(path string) (hostconfig.Config, error) {
	if strings.TrimSpace(path) == "" {
		return hostconfig.Default(), nil
	}
	return hostconfig.Load(path)
}

// loadData reads $when data from a YAML or JSON file.
func loadData(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode data %s: %w", path, err)
	}
	return data, nil
}
