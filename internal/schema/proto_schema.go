package schema

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

// ProtoSchema adapts a protobuf message descriptor to the Schema
// interface, so a topic's wire format can be declared in a .proto file
// instead of the catalogue's own YAML dialect.
type ProtoSchema struct {
	msg *desc.MessageDescriptor
}

// ProtoField adapts a single field, or a field's element type for repeated
// fields, to the Schema interface.
type ProtoField struct {
	field   *desc.FieldDescriptor
	element bool // true when this represents the element type of a repeated field
}

// LoadProtoCatalogue parses the named .proto files and returns a map from
// each "package.Message" name to its ProtoSchema. Callers map
// topics to message names themselves (protobuf has no notion of a pub/sub
// topic).
func LoadProtoCatalogue(importPaths []string, files ...string) (map[string]Schema, error) {
	parser := protoparse.Parser{ImportPaths: importPaths}
	descriptors, err := parser.ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("parsing proto files: %w", err)
	}
	out := make(map[string]Schema)
	for _, fd := range descriptors {
		for _, md := range fd.GetMessageTypes() {
			out[md.GetFullyQualifiedName()] = &ProtoSchema{msg: md}
		}
	}
	return out, nil
}

func (p *ProtoSchema) IsMessage() bool { return true }
func (p *ProtoSchema) IsArray() bool   { return false }
func (p *ProtoSchema) IsNumber() bool  { return false }
func (p *ProtoSchema) IsBool() bool    { return false }
func (p *ProtoSchema) IsString() bool  { return false }

func (p *ProtoSchema) Fields() map[string]Schema {
	out := make(map[string]Schema, len(p.msg.GetFields()))
	for _, f := range p.msg.GetFields() {
		out[f.GetName()] = fieldSchema(f)
	}
	return out
}

func (p *ProtoSchema) Constants() map[string]Constant {
	out := make(map[string]Constant)
	for _, ed := range p.msg.GetNestedEnumTypes() {
		for _, v := range ed.GetValues() {
			out[v.GetName()] = Constant{Value: v.GetNumber(), Schema: &ProtoField{}}
		}
	}
	return out
}

func (p *ProtoSchema) ElementSchema() Schema               { return nil }
func (p *ProtoSchema) ContainsIndex(int64) (bool, bool) { return false, false }

// fieldSchema returns the Schema for a field, wrapping it in an array
// schema first when the field is repeated.
func fieldSchema(f *desc.FieldDescriptor) Schema {
	if f.IsRepeated() {
		return Array(&ProtoField{field: f, element: true})
	}
	return &ProtoField{field: f}
}

func (p *ProtoField) IsMessage() bool {
	return p.field != nil && p.field.GetMessageType() != nil
}

func (p *ProtoField) IsArray() bool { return false }

func (p *ProtoField) IsNumber() bool {
	if p.field == nil {
		return true // enum constants are numeric
	}
	switch p.field.GetType().String() {
	case "TYPE_DOUBLE", "TYPE_FLOAT", "TYPE_INT64", "TYPE_UINT64", "TYPE_INT32",
		"TYPE_FIXED64", "TYPE_FIXED32", "TYPE_UINT32", "TYPE_SFIXED32",
		"TYPE_SFIXED64", "TYPE_SINT32", "TYPE_SINT64", "TYPE_ENUM":
		return true
	default:
		return false
	}
}

func (p *ProtoField) IsBool() bool {
	return p.field != nil && p.field.GetType().String() == "TYPE_BOOL"
}

func (p *ProtoField) IsString() bool {
	return p.field != nil && (p.field.GetType().String() == "TYPE_STRING" || p.field.GetType().String() == "TYPE_BYTES")
}

func (p *ProtoField) Fields() map[string]Schema {
	if !p.IsMessage() {
		return nil
	}
	nested := &ProtoSchema{msg: p.field.GetMessageType()}
	return nested.Fields()
}

func (p *ProtoField) Constants() map[string]Constant {
	if !p.IsMessage() {
		return nil
	}
	nested := &ProtoSchema{msg: p.field.GetMessageType()}
	return nested.Constants()
}

func (p *ProtoField) ElementSchema() Schema {
	if p.field == nil || !p.element {
		return nil
	}
	return &ProtoField{field: p.field}
}

func (p *ProtoField) ContainsIndex(int64) (bool, bool) { return false, false }
