package testsupport

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-cardrender/pkg/hostconfig"
)

func TestLoadCardFromPath(t *testing.T) {
	if _, err := LoadCardFromPath(""); err == nil {
		t.Fatalf("expected error for empty path")
	}

	path := filepath.Join(t.TempDir(), "card.json")
	if err := os.WriteFile(path, []byte(`{"type":"AdaptiveCard","body":[{"type":"Input.Number","id":"qty"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := LoadCard(t, path)
	if len(c.Inputs()) != 1 {
		t.Fatalf("expected one input, got %d", len(c.Inputs()))
	}
}

func TestRenderCard(t *testing.T) {
	rc := RenderCard(t, `{"type":"AdaptiveCard","body":[{"type":"Input.Text","id":"name"}]}`, hostconfig.Default(), nil)
	if len(rc.Inputs()) != 1 {
		t.Fatalf("expected one bound input")
	}
}

func TestCaptureTemplateOutput(t *testing.T) {
	out, written := CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		_, err := io.WriteString(w, "hi")
		return "hi", err
	})
	if out != written {
		t.Fatalf("mismatch %q vs %q", out, written)
	}
}
