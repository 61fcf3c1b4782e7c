// Package hostconfig holds the read-only host configuration consulted by a
// render pass: interactivity policy, action limits, input presentation and
// the resolved theme.
package hostconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultMaxActions mirrors the common host limit on card-level actions.
const DefaultMaxActions = 5

// Config is shared read-only by every renderer in a pass.
type Config struct {
	// SupportsInteractivity gates every input and action renderer.
	SupportsInteractivity bool `json:"supportsInteractivity" yaml:"supportsInteractivity" toml:"supportsInteractivity"`

	Actions ActionsConfig `json:"actions" yaml:"actions" toml:"actions"`
	Inputs  InputsConfig  `json:"inputs" yaml:"inputs" toml:"inputs"`

	// ThemeName and ThemeVariant select a go-theme manifest for output
	// renderers. Theme holds the resolved configuration.
	ThemeName    string                `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	ThemeVariant string                `json:"themeVariant,omitempty" yaml:"themeVariant,omitempty" toml:"themeVariant,omitempty"`
	Theme        *theme.RendererConfig `json:"-" yaml:"-" toml:"-"`
}

// ActionsConfig limits the action set.
type ActionsConfig struct {
	MaxActions int `json:"maxActions" yaml:"maxActions" toml:"maxActions"`
}

// InputsConfig tunes input presentation.
type InputsConfig struct {
	// ReadOnlyFallback renders a static text view for inputs that support it
	// when interactivity is disallowed, instead of dropping them.
	ReadOnlyFallback bool `json:"readOnlyFallback" yaml:"readOnlyFallback" toml:"readOnlyFallback"`
	// ShowRangeHint attaches the handler's constraint hint to ranged inputs.
	ShowRangeHint bool `json:"showRangeHint" yaml:"showRangeHint" toml:"showRangeHint"`
}

// Default returns an interactive host with range hints enabled.
func Default() Config {
	return Config{
		SupportsInteractivity: true,
		Actions:               ActionsConfig{MaxActions: DefaultMaxActions},
		Inputs:                InputsConfig{ShowRangeHint: true},
	}
}

// Validate rejects configurations no renderer can honour.
func (c Config) Validate() error {
	if c.Actions.MaxActions < 0 {
		return fmt.Errorf("hostconfig: actions.maxActions must be >= 0, got %d", c.Actions.MaxActions)
	}
	return nil
}

// Load reads a config file, choosing the decoder from its extension (.yaml,
// .yml, .toml or .json). Keys missing from the file keep their Default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("hostconfig: read %s: %w", path, err)
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses data in the format named by ext.
func Decode(data []byte, ext string) (Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&cfg); errors.Is(err, io.EOF) {
			err = nil
		}
	case "toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	default:
		return Config{}, fmt.Errorf("hostconfig: unsupported config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("hostconfig: decode %s: %w", ext, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
