package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// A schema catalogue file maps topic name to message schema:
//
//   /odom:
//     fields:
//       x: number
//       pose:
//         fields:
//           x: number
//           y: number
//     constants:
//       OK: {value: 0, type: number}
//   /scan:
//     fields:
//       ranges:
//         array: number
//         length: 360
type yamlConstant struct {
	Value any    `yaml:"value"`
	Type  string `yaml:"type"`
}

// LoadCatalogue parses a YAML schema catalogue: a mapping from topic name
// to message schema. It is the plain-text counterpart to building a
// MemoryCatalogue by hand, and is what the CLI's -schema flag reads.
func LoadCatalogue(data []byte) (MemoryCatalogue, error) {
	var raw map[string]yamlMessage
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing schema catalogue: %w", err)
	}
	out := make(MemoryCatalogue, len(raw))
	for topic, m := range raw {
		s, err := m.toSchema()
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", topic, err)
		}
		out[topic] = s
	}
	return out, nil
}

// yamlMessage is the top-level (always message) schema for one topic.
type yamlMessage struct {
	Fields    map[string]yamlField    `yaml:"fields"`
	Constants map[string]yamlConstant `yaml:"constants"`
}

// yamlField is either a scalar type name, an array, or a nested message.
type yamlField struct {
	Scalar    string                  `yaml:"-"`
	Array     *yamlField              `yaml:"array"`
	Length    int                     `yaml:"length"`
	Fields    map[string]yamlField    `yaml:"fields"`
	Constants map[string]yamlConstant `yaml:"constants"`
}

func (m yamlMessage) toSchema() (Schema, error) {
	fields := make(map[string]Schema, len(m.Fields))
	for name, f := range m.Fields {
		s, err := f.toSchema()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = s
	}
	constants := make(map[string]Constant, len(m.Constants))
	for name, c := range m.Constants {
		cs, err := scalarSchema(c.Type)
		if err != nil {
			return nil, fmt.Errorf("constant %q: %w", name, err)
		}
		constants[name] = Constant{Value: c.Value, Schema: cs}
	}
	return Message(fields).WithConstants(constants), nil
}

func (f yamlField) toSchema() (Schema, error) {
	if f.Array != nil {
		elem, err := f.Array.toSchema()
		if err != nil {
			return nil, err
		}
		if f.Length > 0 {
			return BoundedArray(elem, f.Length), nil
		}
		return Array(elem), nil
	}
	if len(f.Fields) > 0 || len(f.Constants) > 0 {
		return yamlMessage{Fields: f.Fields, Constants: f.Constants}.toSchema()
	}
	return scalarSchema(f.Scalar)
}

func scalarSchema(name string) (Schema, error) {
	switch name {
	case "number":
		return Number(), nil
	case "bool", "boolean":
		return Bool(), nil
	case "string":
		return String(), nil
	default:
		return nil, fmt.Errorf("unknown scalar type %q", name)
	}
}

// UnmarshalYAML lets yamlField decode either a bare scalar string (`x:
// number`) or a mapping with array/fields/constants keys.
func (f *yamlField) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&f.Scalar)
	}
	type plain yamlField
	return value.Decode((*plain)(f))
}
