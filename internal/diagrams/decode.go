package diagrams

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk and over-the-wire form of a diagram.
type Document struct {
	Kind  Kind  `json:"kind" yaml:"kind"`
	Model Model `json:"model" yaml:"model"`
}

// Empty returns the zero model for kind.
func Empty(kind Kind) (Model, error) {
	p, err := newModel(kind)
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(p).Elem().Interface().(Model), nil
}

func newModel(kind Kind) (any, error) {
	switch kind {
	case KindFlowchart:
		return &Flowchart{}, nil
	case KindGantt:
		return &Gantt{}, nil
	case KindTimeline:
		return &Timeline{}, nil
	case KindSequence:
		return &Sequence{}, nil
	case KindPie:
		return &Pie{}, nil
	case KindQuadrant:
		return &Quadrant{}, nil
	case KindMindmap:
		return &Mindmap{}, nil
	case KindSankey:
		return &Sankey{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// DecodeModel decodes a JSON or YAML model body of the given kind. Empty
// input yields the empty model. Only syntax errors fail: a field whose
// value has the wrong shape, such as an object where a list belongs, is
// left empty and the rest of the model is kept.
func DecodeModel(kind Kind, data []byte) (Model, error) {
	return decodeModel(kind, data, isJSON(data))
}

func decodeModel(kind Kind, data []byte, asJSON bool) (Model, error) {
	p, err := newModel(kind)
	if err != nil {
		return nil, err
	}
	v := reflect.ValueOf(p).Elem()
	if len(bytes.TrimSpace(data)) > 0 {
		if asJSON {
			if !json.Valid(data) {
				var raw any
				err = json.Unmarshal(data, &raw)
				return nil, fmt.Errorf("decoding %s model: %w", kind, err)
			}
			decodeJSONValue(data, v)
		} else {
			var node yaml.Node
			if err := yaml.Unmarshal(data, &node); err != nil {
				return nil, fmt.Errorf("decoding %s model: %w", kind, err)
			}
			decodeYAMLValue(&node, v)
		}
	}
	return v.Interface().(Model), nil
}

var (
	jsonUnmarshaler = reflect.TypeFor[json.Unmarshaler]()
	yamlUnmarshaler = reflect.TypeFor[yaml.Unmarshaler]()
)

// decodeJSONValue fills the addressable v from data and reports whether
// data had a usable shape. Mismatched fields stay zero, mismatched slices
// become empty, and list elements of the wrong shape are dropped.
func decodeJSONValue(data []byte, v reflect.Value) bool {
	if json.Unmarshal(data, v.Addr().Interface()) == nil {
		return true
	}
	v.Set(reflect.Zero(v.Type()))
	if reflect.PointerTo(v.Type()).Implements(jsonUnmarshaler) {
		return false
	}
	switch v.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if json.Unmarshal(data, &fields) != nil {
			return false
		}
		for name, raw := range fields {
			if i, ok := fieldIndex(v.Type(), "json", name); ok {
				decodeJSONValue(raw, v.Field(i))
			}
		}
		return true
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
		var items []json.RawMessage
		if json.Unmarshal(data, &items) != nil {
			return false
		}
		out := reflect.MakeSlice(v.Type(), 0, len(items))
		for _, raw := range items {
			elem := reflect.New(v.Type().Elem()).Elem()
			if decodeJSONValue(raw, elem) {
				out = reflect.Append(out, elem)
			}
		}
		v.Set(out)
		return true
	}
	return false
}

// decodeYAMLValue is decodeJSONValue for a parsed YAML node.
func decodeYAMLValue(node *yaml.Node, v reflect.Value) bool {
	for node.Kind == yaml.DocumentNode || node.Kind == yaml.AliasNode {
		if node.Kind == yaml.AliasNode {
			node = node.Alias
		} else if len(node.Content) > 0 {
			node = node.Content[0]
		} else {
			return true
		}
	}
	if node.Decode(v.Addr().Interface()) == nil {
		return true
	}
	v.Set(reflect.Zero(v.Type()))
	if reflect.PointerTo(v.Type()).Implements(yamlUnmarshaler) {
		return false
	}
	switch v.Kind() {
	case reflect.Struct:
		if node.Kind != yaml.MappingNode {
			return false
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			if f, ok := fieldIndex(v.Type(), "yaml", node.Content[i].Value); ok {
				decodeYAMLValue(node.Content[i+1], v.Field(f))
			}
		}
		return true
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
		if node.Kind != yaml.SequenceNode {
			return false
		}
		out := reflect.MakeSlice(v.Type(), 0, len(node.Content))
		for _, item := range node.Content {
			elem := reflect.New(v.Type().Elem()).Elem()
			if decodeYAMLValue(item, elem) {
				out = reflect.Append(out, elem)
			}
		}
		v.Set(out)
		return true
	}
	return false
}

// fieldIndex finds the struct field whose tag (or name) is name.
func fieldIndex(t reflect.Type, tagKey, name string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get(tagKey), ",")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = f.Name
		}
		if tag == name || (tagKey == "json" && strings.EqualFold(tag, name)) {
			return i, true
		}
	}
	return 0, false
}

// DecodeDocument decodes a {kind, model} document in JSON or YAML.
func DecodeDocument(data []byte) (Document, error) {
	if isJSON(data) {
		var raw struct {
			Kind  string          `json:"kind"`
			Model json.RawMessage `json:"model"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return Document{}, fmt.Errorf("decoding document: %w", err)
		}
		return finishDocument(raw.Kind, raw.Model, true)
	}

	var raw struct {
		Kind  string    `yaml:"kind"`
		Model yaml.Node `yaml:"model"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("decoding document: %w", err)
	}
	var body []byte
	if raw.Model.Kind != 0 {
		b, err := yaml.Marshal(&raw.Model)
		if err != nil {
			return Document{}, fmt.Errorf("re-encoding model: %w", err)
		}
		body = b
	}
	return finishDocument(raw.Kind, body, false)
}

func finishDocument(kindName string, body []byte, asJSON bool) (Document, error) {
	kind, err := ParseKind(kindName)
	if err != nil {
		return Document{}, err
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		body = nil
	}
	m, err := decodeModel(kind, body, asJSON)
	if err != nil {
		return Document{}, err
	}
	return Document{Kind: kind, Model: m}, nil
}

// EncodeDocument renders a document as YAML.
func EncodeDocument(d Document) ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return out, nil
}
