package card

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// TimeLayout is the layout used by Input.Time values and bounds.
const TimeLayout = "15:04"

// Parse validates raw card JSON against the card schema and builds the typed
// element model. Elements with an unrecognised type become *Unknown; a $when
// expression wraps the element in *Conditional.
func Parse(data []byte) (*Card, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("card: decode document: %w", err)
	}
	if err := validateDecoded(raw); err != nil {
		return nil, err
	}

	var doc documentDTO
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("card: decode document: %w", err)
	}

	out := &Card{
		Version:      doc.Version,
		Lang:         doc.Lang,
		FallbackText: doc.FallbackText,
	}
	body, err := buildElements(doc.Body, "body")
	if err != nil {
		return nil, err
	}
	out.Body = body

	for idx, action := range doc.Actions {
		if ActionType(action.Type) == ActionOpenURL && strings.TrimSpace(action.URL) == "" {
			return nil, fmt.Errorf("card: actions[%d]: %s requires url", idx, ActionOpenURL)
		}
		out.Actions = append(out.Actions, Action{
			Type:  ActionType(action.Type),
			ID:    action.ID,
			Title: action.Title,
			URL:   action.URL,
			Data:  action.Data,
		})
	}
	return out, nil
}

// MustParse is Parse for fixtures; it panics on error.
func MustParse(data []byte) *Card {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

func buildElements(dtos []elementDTO, path string) ([]Element, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	out := make([]Element, 0, len(dtos))
	for idx, dto := range dtos {
		el, err := buildElement(dto, fmt.Sprintf("%s[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		if el == nil {
			continue
		}
		out = append(out, el)
	}
	return out, nil
}

func buildElement(dto elementDTO, path string) (Element, error) {
	el, err := buildVariant(dto, path)
	if err != nil || el == nil {
		return el, err
	}
	if when := strings.TrimSpace(dto.When); when != "" {
		return &Conditional{Element: el, When: when}, nil
	}
	return el, nil
}

func buildVariant(dto elementDTO, path string) (Element, error) {
	base := Base{
		ID:        dto.ID,
		Visible:   dto.IsVisible == nil || *dto.IsVisible,
		Spacing:   dto.Spacing,
		Separator: dto.Separator,
	}
	input := InputBase{
		Base:         base,
		Label:        dto.Label,
		Required:     dto.IsRequired,
		ErrorMessage: dto.ErrorMessage,
	}

	switch ElementType(dto.Type) {
	case TypeTextBlock:
		return &TextBlock{
			Base:     base,
			Text:     dto.Text,
			Wrap:     dto.Wrap,
			Size:     dto.Size,
			Weight:   dto.Weight,
			Color:    dto.Color,
			IsSubtle: dto.IsSubtle,
		}, nil

	case TypeContainer:
		items, err := buildElements(dto.Items, path+".items")
		if err != nil {
			return nil, err
		}
		return &Container{Base: base, Style: dto.Style, Items: items}, nil

	case TypeNumberInput:
		if err := requireID(dto, path); err != nil {
			return nil, err
		}
		el := &NumberInput{InputBase: input, Placeholder: dto.Placeholder, Min: MinUnbounded, Max: MaxUnbounded}
		if dto.Value != nil {
			v, err := numberField(dto.Value, path, "value")
			if err != nil {
				return nil, err
			}
			el.Value = &v
		}
		if dto.Min != nil {
			v, err := numberField(dto.Min, path, "min")
			if err != nil {
				return nil, err
			}
			el.Min = v
		}
		if dto.Max != nil {
			v, err := numberField(dto.Max, path, "max")
			if err != nil {
				return nil, err
			}
			el.Max = v
		}
		if err := el.Check(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return el, nil

	case TypeTextInput:
		if err := requireID(dto, path); err != nil {
			return nil, err
		}
		value, err := stringField(dto.Value, path, "value")
		if err != nil {
			return nil, err
		}
		return &TextInput{
			InputBase:   input,
			Value:       value,
			Placeholder: dto.Placeholder,
			MaxLength:   dto.MaxLength,
			IsMultiline: dto.IsMultiline,
			Regex:       dto.Regex,
			Style:       dto.Style,
		}, nil

	case TypeTimeInput:
		if err := requireID(dto, path); err != nil {
			return nil, err
		}
		el := &TimeInput{InputBase: input, Placeholder: dto.Placeholder}
		for _, field := range []struct {
			name string
			raw  any
			dest *string
		}{
			{"value", dto.Value, &el.Value},
			{"min", dto.Min, &el.Min},
			{"max", dto.Max, &el.Max},
		} {
			value, err := stringField(field.raw, path, field.name)
			if err != nil {
				return nil, err
			}
			if value != "" {
				if _, err := time.Parse(TimeLayout, value); err != nil {
					return nil, fmt.Errorf("card: %s.%s: %q is not a %s time", path, field.name, value, TimeLayout)
				}
			}
			*field.dest = value
		}
		return el, nil

	case TypeToggleInput:
		if err := requireID(dto, path); err != nil {
			return nil, err
		}
		value, err := stringField(dto.Value, path, "value")
		if err != nil {
			return nil, err
		}
		el := &ToggleInput{
			InputBase: input,
			Title:     dto.Title,
			Value:     value,
			ValueOn:   dto.ValueOn,
			ValueOff:  dto.ValueOff,
			Wrap:      dto.Wrap,
		}
		if el.ValueOn == "" {
			el.ValueOn = "true"
		}
		if el.ValueOff == "" {
			el.ValueOff = "false"
		}
		return el, nil

	default:
		return buildUnknown(dto, base, path)
	}
}

func buildUnknown(dto elementDTO, base Base, path string) (Element, error) {
	unknown := &Unknown{Base: base, RawType: dto.Type}
	switch fallback := dto.Fallback.(type) {
	case nil:
	case string:
		if fallback == "drop" {
			return nil, nil
		}
		return nil, fmt.Errorf("card: %s.fallback: unsupported value %q", path, fallback)
	case map[string]any:
		raw, err := json.Marshal(fallback)
		if err != nil {
			return nil, fmt.Errorf("card: %s.fallback: %w", path, err)
		}
		var inner elementDTO
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("card: %s.fallback: %w", path, err)
		}
		el, err := buildElement(inner, path+".fallback")
		if err != nil {
			return nil, err
		}
		unknown.Fallback = el
	default:
		return nil, fmt.Errorf("card: %s.fallback: expected object or \"drop\"", path)
	}
	return unknown, nil
}

func requireID(dto elementDTO, path string) error {
	if strings.TrimSpace(dto.ID) == "" {
		return fmt.Errorf("card: %s: %s requires an id", path, dto.Type)
	}
	return nil
}

func numberField(raw any, path, name string) (float64, error) {
	v, ok := raw.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("card: %s.%s: expected a number, got %T", path, name, raw)
	}
	return v, nil
}

func stringField(raw any, path, name string) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("card: %s.%s: expected a string, got %T", path, name, raw)
	}
}
