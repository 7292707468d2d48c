package ast

import (
	"fmt"

	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/schema"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// Expression is any node in the predicate expression tree. Every
// expression carries a type set that narrows monotonically: Cast only
// removes bits, and Types never grows except at the moment a parent
// constructor seeds a wider starting set than its own constraint.
type Expression interface {
	Node
	fmt.Stringer

	Types() typesystem.Type
	IsFullyTyped() bool
	Clone() Expression
	Equal(other Expression) bool

	// collectExternalRefs appends the alias name of every accessor whose
	// base is a VarReference to refs.
	collectExternalRefs(refs map[string]struct{})

	// cast narrows the node's own type set in place.
	cast(t typesystem.Type) error
}

// Value is an expression that denotes a value directly rather than
// combining other expressions: a literal, the implicit current message, an
// external variable reference, a set, or a range.
type Value interface {
	Expression
	isValue()
}

// Accessor is a field or array-element access: the bridge between the
// symbolic expression tree and an external message schema. Base returns
// the accessed expression (the message or the array); IsField
// distinguishes a FieldAccess from an ArrayAccess for the "own field
// reference" check (§4.5) and for refinement (§4.3).
type Accessor interface {
	Expression
	Base() Expression
	IsField() bool
	SchemaType() schema.Schema
}

// isAccessor reports whether e is a FieldAccess or ArrayAccess.
func isAccessor(e Expression) (Accessor, bool) {
	a, ok := e.(Accessor)
	return a, ok
}

// baseMessage walks an accessor chain down to its root value (a
// ThisMessage or VarReference).
func baseMessage(e Expression) Value {
	for {
		a, ok := isAccessor(e)
		if !ok {
			break
		}
		e = a.Base()
	}
	v, ok := e.(Value)
	if !ok {
		panic("baseMessage: accessor chain does not terminate in a value")
	}
	return v
}

// typeCheck narrows x to t, wrapping any failure with the stringification
// of owner for diagnostics, matching the message HPL constructors produce.
func typeCheck(owner fmt.Stringer, x Expression, t typesystem.Type) error {
	if err := x.cast(t); err != nil {
		return hplerrors.InExpression(owner, err)
	}
	return nil
}
