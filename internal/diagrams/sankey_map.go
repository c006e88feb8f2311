package diagrams

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// SankeyTarget is one outgoing flow of a sankey source.
type SankeyTarget struct {
	Target string  `json:"target" yaml:"target"`
	Value  float64 `json:"value" yaml:"value"`
}

// SankeySource groups the flows leaving one node.
type SankeySource struct {
	Source  string
	Targets []SankeyTarget
}

// SankeyMap is an insertion-ordered source → targets mapping. It encodes as
// a JSON/YAML object so documents read naturally, while keeping key order
// stable for generation.
type SankeyMap []SankeySource

// Index returns the position of source, or -1.
func (m SankeyMap) Index(source string) int {
	for i, s := range m {
		if s.Source == source {
			return i
		}
	}
	return -1
}

// Get returns the targets recorded for source.
func (m SankeyMap) Get(source string) ([]SankeyTarget, bool) {
	if i := m.Index(source); i >= 0 {
		return m[i].Targets, true
	}
	return nil, false
}

// Names returns every source and target name in first-seen order.
func (m SankeyMap) Names() []string {
	var names []string
	seen := make(map[string]bool)
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, s := range m {
		add(s.Source)
		for _, t := range s.Targets {
			add(t.Target)
		}
	}
	return names
}

// Clone deep-copies the map.
func (m SankeyMap) Clone() SankeyMap {
	if m == nil {
		return nil
	}
	out := make(SankeyMap, len(m))
	for i, s := range m {
		out[i] = SankeySource{Source: s.Source, Targets: append([]SankeyTarget(nil), s.Targets...)}
	}
	return out
}

// add appends targets under source, creating the entry when missing.
func (m SankeyMap) add(source string, targets []SankeyTarget) SankeyMap {
	if i := m.Index(source); i >= 0 {
		m[i].Targets = append(m[i].Targets, targets...)
		return m
	}
	return append(m, SankeySource{Source: source, Targets: targets})
}

func (m SankeyMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Source)
		if err != nil {
			return nil, err
		}
		targets := s.Targets
		if targets == nil {
			targets = []SankeyTarget{}
		}
		val, err := json.Marshal(targets)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object while preserving key order. Anything other
// than an object decodes to an empty map, and a source whose targets are
// not a list gets none. Repeated keys are merged.
func (m *SankeyMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}
	out := SankeyMap{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding sankey map: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		*m = out
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding sankey source: %w", err)
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding targets of %q: %w", key, err)
		}
		var targets []SankeyTarget
		decodeJSONValue(raw, reflect.ValueOf(&targets).Elem())
		out = out.add(key, targets)
	}
	*m = out
	return nil
}

func (m SankeyMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, s := range m {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Source}
		val := &yaml.Node{}
		targets := s.Targets
		if targets == nil {
			targets = []SankeyTarget{}
		}
		if err := val.Encode(targets); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func (m *SankeyMap) UnmarshalYAML(value *yaml.Node) error {
	out := SankeyMap{}
	if value.Kind != yaml.MappingNode {
		*m = out
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var targets []SankeyTarget
		decodeYAMLValue(value.Content[i+1], reflect.ValueOf(&targets).Elem())
		out = out.add(value.Content[i].Value, targets)
	}
	*m = out
	return nil
}
