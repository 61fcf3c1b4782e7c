package hostconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoad_Formats(t *testing.T) {
	want := Config{
		SupportsInteractivity: false,
		Actions:               ActionsConfig{MaxActions: 2},
		Inputs:                InputsConfig{ReadOnlyFallback: true, ShowRangeHint: true},
		ThemeName:             "acme",
	}

	files := map[string]string{
		"host.yaml": "supportsInteractivity: false\nactions:\n  maxActions: 2\ninputs:\n  readOnlyFallback: true\ntheme: acme\n",
		"host.toml": "supportsInteractivity = false\ntheme = \"acme\"\n\n[actions]\nmaxActions = 2\n\n[inputs]\nreadOnlyFallback = true\nshowRangeHint = true\n",
		"host.json": `{"supportsInteractivity": false, "actions": {"maxActions": 2}, "inputs": {"readOnlyFallback": true}, "theme": "acme"}`,
	}

	dir := t.TempDir()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Config{}, "Theme")); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte("{}"), ".ini"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if _, err := Decode([]byte(`{"actions": {"maxActions": -1}}`), ".json"); err == nil {
		t.Fatalf("expected validation error for negative maxActions")
	}
	if _, err := Decode([]byte(`{"unknownKey": 1}`), ".json"); err == nil {
		t.Fatalf("expected unknown field error")
	}
	for ext, doc := range map[string]string{
		".yaml": "unknownKey: 1\n",
		".toml": "unknownKey = 1\n",
	} {
		if _, err := Decode([]byte(doc), ext); err == nil {
			t.Fatalf("%s: expected unknown field error", ext)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestDecode_EmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Decode(nil, ".yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Actions.MaxActions != DefaultMaxActions {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.SupportsInteractivity || cfg.Actions.MaxActions != DefaultMaxActions || !cfg.Inputs.ShowRangeHint {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
