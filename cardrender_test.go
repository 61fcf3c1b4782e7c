package cardrender

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-cardrender/pkg/card"
)

const quantityCard = `{"type":"AdaptiveCard","body":[
  {"type":"Input.Number","id":"qty","label":"Quantity","min":1,"max":10,"value":2}
]}`

func TestGenerateFromDocument(t *testing.T) {
	out, err := GenerateFromDocument(context.Background(), []byte(quantityCard), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`name="qty"`, `inputmode="decimal"`, `value="2"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestGenerateHTML_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantity.json")
	if err := os.WriteFile(path, []byte(quantityCard), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := GenerateHTML(context.Background(), card.SourceFromFile(path), "html")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `<form class="cr-card"`) {
		t.Fatalf("expected card form, got:\n%s", out)
	}
}

func TestGenerateHTML_UnknownRenderer(t *testing.T) {
	if _, err := GenerateFromDocument(context.Background(), []byte(quantityCard), "pdf"); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/card.tpl"); err != nil {
		t.Fatalf("expected card template: %v", err)
	}
	data, err := fs.ReadFile(AssetsFS(), "cardrender.css")
	if err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".cr-card") {
		t.Fatalf("expected card styles in stylesheet")
	}
}
