package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/lueurxax/glint/internal/core/errors"
)

// FieldKind is the expected shape of an output field.
type FieldKind int

// Field kinds.
const (
	KindText FieldKind = iota
	KindList
)

// Field names one expected output value.
type Field struct {
	Name        string
	Kind        FieldKind
	Description string
}

// Schema describes the named fields a call must return.
// Task labels the call in metrics and logs.
type Schema struct {
	Task   string
	Fields []Field
}

// Value is a parsed output field: StructuredList or RawText.
type Value interface {
	isValue()
}

// StructuredList is a field the model returned as a list of strings.
type StructuredList []string

// RawText is a field the model returned as free text.
type RawText string

func (StructuredList) isValue() {}
func (RawText) isValue()        {}

// Output maps field names to parsed values.
type Output map[string]Value

// Text returns the named field as text. Lists are joined with newlines.
func (o Output) Text(name string) string {
	switch v := o[name].(type) {
	case RawText:
		return strings.TrimSpace(string(v))
	case StructuredList:
		return strings.Join(v, "\n")
	default:
		return ""
	}
}

// List returns the named field as a list, converting raw text with AsList.
func (o Output) List(name string) []string {
	return AsList(o[name])
}

var listMarker = regexp.MustCompile(`^(?:[•\-*]+|\d+[.)])\s*`)

// AsList converts a value to a list. RawText is split on newlines and common
// bullet or numbering prefixes are stripped; lines without markers are kept.
// Empty lines are dropped.
func AsList(v Value) []string {
	switch val := v.(type) {
	case StructuredList:
		out := make([]string, 0, len(val))

		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}

		return out
	case RawText:
		var out []string

		for _, line := range strings.Split(string(val), "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))

			if line != "" {
				out = append(out, line)
			}
		}

		if out == nil {
			out = []string{}
		}

		return out
	default:
		return []string{}
	}
}

// Instruct appends the output contract to instruction.
func (s Schema) Instruct(instruction string) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimRight(instruction, "\n"))
	sb.WriteString("\n\n## Output Format\n")
	sb.WriteString("Return STRICT JSON ONLY: a single object with exactly these keys.\n")
	sb.WriteString("Use double quotes. No markdown. No extra keys.\n")

	for _, f := range s.Fields {
		kind := "string"
		if f.Kind == KindList {
			kind = "array of strings"
		}

		sb.WriteString(fmt.Sprintf("- %s: %s", f.Name, kind))

		if f.Description != "" {
			sb.WriteString(" - ")
			sb.WriteString(f.Description)
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}

// Parse decodes a reply according to the schema. JSON may be wrapped in prose
// or code fences. A single-field schema whose reply is not JSON falls back to
// treating the whole reply as that field's raw text.
func (s Schema) Parse(reply string) (Output, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: task %s", errors.ErrEmptyResponse, s.Task)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSON(reply)), &raw); err != nil || !s.hasAnyField(raw) {
		if len(s.Fields) == 1 {
			return Output{s.Fields[0].Name: RawText(stripCodeFence(reply))}, nil
		}

		return nil, fmt.Errorf("%w: task %s: reply is not a JSON object with fields %s", errors.ErrUpstream, s.Task, s.fieldNames())
	}

	out := make(Output, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = decodeValue(raw[f.Name])
	}

	return out, nil
}

func (s Schema) hasAnyField(raw map[string]json.RawMessage) bool {
	for _, f := range s.Fields {
		if _, ok := raw[f.Name]; ok {
			return true
		}
	}

	return false
}

func (s Schema) fieldNames() string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}

	return strings.Join(names, ", ")
}

func decodeValue(raw json.RawMessage) Value {
	if len(raw) == 0 {
		return RawText("")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return RawText(text)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		list := make(StructuredList, 0, len(items))

		for _, item := range items {
			var s string
			if json.Unmarshal(item, &s) == nil {
				list = append(list, s)
				continue
			}

			list = append(list, string(item))
		}

		return list
	}

	if string(raw) == "null" {
		return RawText("")
	}

	return RawText(string(raw))
}

// extractJSON tries to extract a JSON object from a response that might have extra text.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl != -1 {
		text = text[nl+1:]
	}

	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
