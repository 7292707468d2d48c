package ast

import (
	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/schema"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// FieldAccess is `<message>.<field>`. Its parent is constrained to
// Message; its own type starts at Schema (boolean, number, string, array
// or message) until refinement narrows it to the field's concrete schema
// type.
type FieldAccess struct {
	Message Expression
	Field   string
	RosType schema.Schema
	types   typesystem.Type
}

func NewFieldAccess(message Expression, field string) (*FieldAccess, error) {
	f := &FieldAccess{Message: message, Field: field, types: typesystem.Schema}
	if err := typeCheck(f, message, typesystem.Message); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FieldAccess) Base() Expression    { return f.Message }
func (f *FieldAccess) IsField() bool       { return true }
func (f *FieldAccess) SchemaType() schema.Schema { return f.RosType }

func (f *FieldAccess) Accept(v Visitor)       { v.VisitFieldAccess(f) }
func (f *FieldAccess) Children() []Node       { return []Node{f.Message} }
func (f *FieldAccess) Types() typesystem.Type { return f.types }
func (f *FieldAccess) IsFullyTyped() bool {
	return f.types.IsSingleton() && f.Message.IsFullyTyped()
}

func (f *FieldAccess) String() string {
	msg := f.Message.String()
	if msg != "" {
		return msg + "." + f.Field
	}
	return f.Field
}

func (f *FieldAccess) collectExternalRefs(refs map[string]struct{}) {
	if v, ok := f.Message.(*VarReference); ok {
		refs[v.Name()] = struct{}{}
		return
	}
	f.Message.collectExternalRefs(refs)
}

func (f *FieldAccess) cast(t typesystem.Type) error {
	r, err := f.types.Cast(t)
	if err != nil {
		return err
	}
	f.types = r
	return nil
}

// SetRosType records the schema this field refined to and narrows the
// node's type set to match it (§4.3, §4.7).
func (f *FieldAccess) SetRosType(s schema.Schema) error {
	t, err := schemaMemberType(s)
	if err != nil {
		return hplerrors.InExpression(f, err)
	}
	if err := f.cast(t); err != nil {
		return hplerrors.InExpression(f, err)
	}
	f.RosType = s
	return nil
}

func (f *FieldAccess) Clone() Expression {
	return &FieldAccess{Message: f.Message.Clone(), Field: f.Field, RosType: f.RosType, types: f.types}
}

func (f *FieldAccess) Equal(other Expression) bool {
	o, ok := other.(*FieldAccess)
	return ok && f.Field == o.Field && f.Message.Equal(o.Message)
}

// ArrayAccess is `<array>[<index>]`. Its parent is constrained to Array
// and its index to Number; own type starts at Item until refinement
// narrows it to the array's element schema type. Multi-dimensional access
// (`a[i][j]`) is rejected at construction.
type ArrayAccess struct {
	Array   Expression
	Index   Expression
	RosType schema.Schema
	types   typesystem.Type
}

func NewArrayAccess(array, index Expression) (*ArrayAccess, error) {
	if a, ok := isAccessor(array); ok && !a.IsField() {
		return nil, hplerrors.Type("multi-dimensional array access: '%s[%s]'", array, index)
	}
	a := &ArrayAccess{Array: array, Index: index, types: typesystem.Item}
	if err := typeCheck(a, array, typesystem.Array); err != nil {
		return nil, err
	}
	if err := typeCheck(a, index, typesystem.Number); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *ArrayAccess) Base() Expression          { return a.Array }
func (a *ArrayAccess) IsField() bool             { return false }
func (a *ArrayAccess) SchemaType() schema.Schema { return a.RosType }

func (a *ArrayAccess) Accept(v Visitor)       { v.VisitArrayAccess(a) }
func (a *ArrayAccess) Children() []Node       { return []Node{a.Array, a.Index} }
func (a *ArrayAccess) Types() typesystem.Type { return a.types }
func (a *ArrayAccess) IsFullyTyped() bool {
	return a.types.IsSingleton() && a.Array.IsFullyTyped() && a.Index.IsFullyTyped()
}

func (a *ArrayAccess) String() string {
	return a.Array.String() + "[" + a.Index.String() + "]"
}

func (a *ArrayAccess) collectExternalRefs(refs map[string]struct{}) {
	a.Array.collectExternalRefs(refs)
	a.Index.collectExternalRefs(refs)
}

func (a *ArrayAccess) cast(t typesystem.Type) error {
	r, err := a.types.Cast(t)
	if err != nil {
		return err
	}
	a.types = r
	return nil
}

// SetRosType records the schema this array element refined to.
func (a *ArrayAccess) SetRosType(s schema.Schema) error {
	t, err := schemaMemberType(s)
	if err != nil {
		return hplerrors.InExpression(a, err)
	}
	if err := a.cast(t); err != nil {
		return hplerrors.InExpression(a, err)
	}
	a.RosType = s
	return nil
}

func (a *ArrayAccess) Clone() Expression {
	return &ArrayAccess{Array: a.Array.Clone(), Index: a.Index.Clone(), RosType: a.RosType, types: a.types}
}

func (a *ArrayAccess) Equal(other Expression) bool {
	o, ok := other.(*ArrayAccess)
	return ok && a.Array.Equal(o.Array) && a.Index.Equal(o.Index)
}

// schemaMemberType maps a resolved schema.Schema to the corresponding
// type-lattice member, for narrowing an accessor after refinement.
func schemaMemberType(s schema.Schema) (typesystem.Type, error) {
	switch {
	case s.IsMessage():
		return typesystem.Message, nil
	case s.IsArray():
		return typesystem.Array, nil
	case s.IsNumber():
		return typesystem.Number, nil
	case s.IsBool():
		return typesystem.Boolean, nil
	case s.IsString():
		return typesystem.String, nil
	default:
		return 0, hplerrors.Type("schema value has no recognizable scalar kind")
	}
}
