package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaResource = "card-v1.json"

// documentDTO mirrors the card JSON accepted by Parse. It doubles as the
// source for GenerateJSONSchema.
type documentDTO struct {
	Type         string       `json:"type" jsonschema:"enum=AdaptiveCard"`
	Version      string       `json:"version,omitempty"`
	Lang         string       `json:"lang,omitempty"`
	FallbackText string       `json:"fallbackText,omitempty"`
	Body         []elementDTO `json:"body,omitempty"`
	Actions      []actionDTO  `json:"actions,omitempty"`
}

type elementDTO struct {
	Type      string `json:"type" jsonschema:"minLength=1"`
	ID        string `json:"id,omitempty"`
	IsVisible *bool  `json:"isVisible,omitempty"`
	Spacing   string `json:"spacing,omitempty"`
	Separator bool   `json:"separator,omitempty"`
	When      string `json:"$when,omitempty"`
	Fallback  any    `json:"fallback,omitempty"`

	Text     string `json:"text,omitempty"`
	Wrap     bool   `json:"wrap,omitempty"`
	Size     string `json:"size,omitempty"`
	Weight   string `json:"weight,omitempty"`
	Color    string `json:"color,omitempty"`
	IsSubtle bool   `json:"isSubtle,omitempty"`

	Style string       `json:"style,omitempty"`
	Items []elementDTO `json:"items,omitempty"`

	Label        string `json:"label,omitempty"`
	IsRequired   bool   `json:"isRequired,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Value        any    `json:"value,omitempty"`
	Placeholder  string `json:"placeholder,omitempty"`
	Min          any    `json:"min,omitempty"`
	Max          any    `json:"max,omitempty"`
	MaxLength    int    `json:"maxLength,omitempty" jsonschema:"minimum=0"`
	IsMultiline  bool   `json:"isMultiline,omitempty"`
	Regex        string `json:"regex,omitempty"`
	Title        string `json:"title,omitempty"`
	ValueOn      string `json:"valueOn,omitempty"`
	ValueOff     string `json:"valueOff,omitempty"`
}

type actionDTO struct {
	Type  string         `json:"type" jsonschema:"enum=Action.Submit,enum=Action.OpenUrl"`
	ID    string         `json:"id,omitempty"`
	Title string         `json:"title,omitempty"`
	URL   string         `json:"url,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// SchemaIssue is one schema violation with its instance location.
type SchemaIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaError reports every violation found while validating a document.
type SchemaError struct {
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "card: schema validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		path := issue.Path
		if path == "" {
			path = "/"
		}
		parts = append(parts, path+": "+issue.Message)
	}
	return "card: schema validation failed: " + strings.Join(parts, "; ")
}

// GenerateJSONSchema produces the Draft 2020-12 schema describing card
// documents accepted by Parse.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false
	r.AllowAdditionalProperties = true

	s := r.Reflect(&documentDTO{})
	s.ID = "https://github.com/goliatone/go-cardrender/schemas/card-v1.json"
	s.Title = "Card document v1"
	s.Description = "Schema for declarative card documents rendered by go-cardrender"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("card: marshal schema: %w", err)
	}
	return data, nil
}

var (
	compileOnce    sync.Once
	compiledSchema *sjsonschema.Schema
	compileErr     error
)

func documentSchema() (*sjsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := GenerateJSONSchema()
		if err != nil {
			compileErr = err
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("card: unmarshal schema: %w", err)
			return
		}
		c := sjsonschema.NewCompiler()
		if err := c.AddResource(schemaResource, doc); err != nil {
			compileErr = fmt.Errorf("card: add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaResource)
		if compileErr != nil {
			compileErr = fmt.Errorf("card: compile schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw card JSON against the card schema. A *SchemaError is
// returned for documents that decode but violate the schema.
func Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("card: decode document: %w", err)
	}
	return validateDecoded(doc)
}

func validateDecoded(doc any) error {
	sch, err := documentSchema()
	if err != nil {
		return err
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *sjsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Issues: []SchemaIssue{{Message: err.Error()}}}
	}
	printer := message.NewPrinter(language.English)
	var issues []SchemaIssue
	for _, cause := range flattenValidationErrors(ve) {
		issues = append(issues, SchemaIssue{
			Path:    "/" + strings.Join(cause.InstanceLocation, "/"),
			Message: cause.ErrorKind.LocalizedString(printer),
		})
	}
	return &SchemaError{Issues: issues}
}

func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
