package askit

import (
	"bytes"
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// Answers holds the values resolved by a form, in field order.
type Answers struct {
	Form   string
	order  []string
	values map[string]any
}

// NewAnswers creates an empty answer set for the named form.
func NewAnswers(form string) *Answers {
	return &Answers{Form: form, values: make(map[string]any)}
}

// Set stores a value. Re-setting a name keeps its original position.
func (a *Answers) Set(name string, v any) {
	if _, ok := a.values[name]; !ok {
		a.order = append(a.order, name)
	}
	a.values[name] = v
}

// Get returns the value for name.
func (a *Answers) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Keys returns field names in resolution order.
func (a *Answers) Keys() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len returns the number of answers.
func (a *Answers) Len() int { return len(a.order) }

// Map returns a copy of the answers as a plain map.
func (a *Answers) Map() map[string]any {
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// AnswerAs returns the named answer as T.
func AnswerAs[T any](a *Answers, name string) (T, bool) {
	var zero T
	if a == nil {
		return zero, false
	}
	v, ok := a.values[name]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// MarshalYAML emits a mapping that preserves field order.
func (a *Answers) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range a.order {
		var val yaml.Node
		if err := val.Encode(outputValue(a.values[k])); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// MarshalJSON emits an object that preserves field order.
func (a *Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(outputValue(a.values[k]))
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

// outputValue renders durations in their text form for YAML and JSON.
func outputValue(v any) any {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return v
}
