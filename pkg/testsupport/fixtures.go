// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-cardrender/internal/logging"
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/engine"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
	"github.com/goliatone/go-cardrender/pkg/visibility"
)

// LoadCard reads and parses a card fixture. Testing helpers fail the test on
// error to keep contract tests concise.
func LoadCard(t *testing.T, path string) *card.Card {
	t.Helper()

	c, err := LoadCardFromPath(path)
	if err != nil {
		t.Fatalf("load card: %v", err)
	}
	return c
}

// LoadCardFromPath returns a parsed card without requiring testing.T.
func LoadCardFromPath(path string) (*card.Card, error) {
	if path == "" {
		return nil, errors.New("testsupport: card path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read card: %w", err)
	}
	c, err := card.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse card: %w", err)
	}
	return c, nil
}

// RenderCard parses doc and runs a render pass with a silent logger.
func RenderCard(t *testing.T, doc string, host hostconfig.Config, data map[string]any, options ...engine.Option) *engine.RenderedCard {
	t.Helper()

	c, err := card.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse card: %v", err)
	}
	options = append([]engine.Option{engine.WithLogger(logging.Discard())}, options...)
	rc, err := engine.New(options...).Render(Context(), c, host, visibility.Context{Values: data})
	if err != nil {
		t.Fatalf("render pass: %v", err)
	}
	return rc
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
