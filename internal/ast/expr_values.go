package ast

import (
	"strconv"

	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/schema"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// Literal is a constant: an integer, a float, a boolean, or a string. Its
// type set is the singleton matching the concrete value's Go type.
type Literal struct {
	Token string
	Value any // int64 | float64 | bool | string
	types typesystem.Type
}

// NewLiteral builds a Literal, rejecting any value that is not one of the
// four supported kinds.
func NewLiteral(token string, value any) (*Literal, error) {
	var t typesystem.Type
	switch value.(type) {
	case bool:
		t = typesystem.Boolean
	case int64, float64:
		t = typesystem.Number
	case string:
		t = typesystem.String
	default:
		return nil, hplerrors.BadLiteral(value)
	}
	return &Literal{Token: token, Value: value, types: t}, nil
}

func (l *Literal) isValue()                                {}
func (l *Literal) Accept(v Visitor)                         { v.VisitLiteral(l) }
func (l *Literal) Children() []Node                          { return nil }
func (l *Literal) Types() typesystem.Type                    { return l.types }
func (l *Literal) IsFullyTyped() bool                        { return true }
func (l *Literal) String() string                            { return l.Token }
func (l *Literal) collectExternalRefs(map[string]struct{})   {}

func (l *Literal) cast(t typesystem.Type) error {
	r, err := l.types.Cast(t)
	if err != nil {
		return err
	}
	l.types = r
	return nil
}

func (l *Literal) Clone() Expression {
	return &Literal{Token: l.Token, Value: l.Value, types: l.types}
}

func (l *Literal) Equal(other Expression) bool {
	o, ok := other.(*Literal)
	return ok && l.Token == o.Token
}

// IntLiteral builds a Literal from an int64, generating its token form.
func IntLiteral(v int64) *Literal {
	l, _ := NewLiteral(strconv.FormatInt(v, 10), v)
	return l
}

// BoolLiteral builds a Literal from a bool, generating its token form.
func BoolLiteral(v bool) *Literal {
	l, _ := NewLiteral(strconv.FormatBool(v), v)
	return l
}

// ThisMessage is the implicit current message: what `.field` and
// `this.field` both resolve to. Its type is always {Message}; RosType
// records the schema it refines to, once refinement has run.
type ThisMessage struct {
	types  typesystem.Type
	RosType schema.Schema
}

func NewThisMessage() *ThisMessage {
	return &ThisMessage{types: typesystem.Message}
}

func (m *ThisMessage) isValue()              {}
func (m *ThisMessage) Accept(v Visitor)       { v.VisitThisMessage(m) }
func (m *ThisMessage) Children() []Node       { return nil }
func (m *ThisMessage) Types() typesystem.Type { return m.types }
func (m *ThisMessage) IsFullyTyped() bool     { return true }
func (m *ThisMessage) String() string         { return "" }

func (m *ThisMessage) collectExternalRefs(map[string]struct{}) {}

func (m *ThisMessage) cast(t typesystem.Type) error {
	r, err := m.types.Cast(t)
	if err != nil {
		return err
	}
	m.types = r
	return nil
}

func (m *ThisMessage) Clone() Expression {
	return &ThisMessage{types: m.types, RosType: m.RosType}
}

func (m *ThisMessage) Equal(other Expression) bool {
	_, ok := other.(*ThisMessage)
	return ok
}

// VarReference is an external alias, `@name`. Its initial type is Item
// (boolean, number, string or message) until narrowed by use; DefinedAt
// identifies the quantifier that bound it, when it names a quantified
// variable rather than an event alias. RosType is filled in by
// refinement.
type VarReference struct {
	Token     string // includes the leading '@'
	DefinedAt *Quantifier
	RosType   schema.Schema
	types     typesystem.Type
}

func NewVarReference(token string) *VarReference {
	return &VarReference{Token: token, types: typesystem.Item}
}

// Name is the alias without its leading '@'.
func (r *VarReference) Name() string {
	if len(r.Token) > 0 && r.Token[0] == '@' {
		return r.Token[1:]
	}
	return r.Token
}

func (r *VarReference) IsDefined() bool { return r.DefinedAt != nil }

func (r *VarReference) isValue()              {}
func (r *VarReference) Accept(v Visitor)       { v.VisitVarReference(r) }
func (r *VarReference) Children() []Node       { return nil }
func (r *VarReference) Types() typesystem.Type { return r.types }
func (r *VarReference) IsFullyTyped() bool     { return r.types.IsSingleton() }
func (r *VarReference) String() string         { return r.Token }

func (r *VarReference) collectExternalRefs(map[string]struct{}) {
	// A bare variable reference (not behind a field accessor) is not
	// counted as an external reference; aliases always denote whole
	// messages, which are only meaningfully referenced through a field.
}

func (r *VarReference) cast(t typesystem.Type) error {
	res, err := r.types.Cast(t)
	if err != nil {
		return err
	}
	r.types = res
	return nil
}

func (r *VarReference) Clone() Expression {
	return &VarReference{Token: r.Token, RosType: r.RosType, types: r.types}
}

func (r *VarReference) Equal(other Expression) bool {
	o, ok := other.(*VarReference)
	return ok && r.Token == o.Token
}
