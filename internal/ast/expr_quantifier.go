package ast

import (
	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// Quantifier is `forall @v in <domain>: <body>` or `exists @v in <domain>:
// <body>`. The domain must be Composite (a set, range or array) and must
// not itself mention the variable being bound (invariant I5); the body
// must be Boolean and must use the variable at least once (invariant I4).
//
// Binding is identity-based: every VarReference in the body that names
// this variable has its DefinedAt pointed at this *Quantifier. A fresh
// Clone() establishes a fresh identity, so a cloned quantifier's body
// refers to the clone, never the original.
type Quantifier struct {
	Universal bool // true for forall, false for exists
	Variable  string
	Domain    Expression
	Body      Expression
	types     typesystem.Type
}

// NewQuantifier builds a Quantifier, binding every VarReference in body
// that names variable to it, and checking I4 and I5. The references are
// found by walking body with Iterate.
func NewQuantifier(universal bool, variable string, domain, body Expression) (*Quantifier, error) {
	q := &Quantifier{Universal: universal, Variable: variable, Domain: domain, Body: body, types: typesystem.Boolean}

	if err := typeCheck(q, domain, typesystem.Composite); err != nil {
		return nil, err
	}
	if err := typeCheck(q, body, typesystem.Boolean); err != nil {
		return nil, err
	}

	if referencesVariable(domain, variable) {
		return nil, hplerrors.SelfReferentialDomain(variable, q)
	}

	used := false
	for _, n := range Iterate(body) {
		ref, ok := n.(*VarReference)
		if !ok || ref.Name() != variable {
			continue
		}
		if ref.DefinedAt != nil && ref.DefinedAt != q {
			return nil, hplerrors.ShadowedVariable(variable, q)
		}
		ref.DefinedAt = q
		if dt := domainType(domain); dt != 0 {
			if err := ref.cast(dt); err != nil {
				return nil, hplerrors.InExpression(q, err)
			}
		}
		used = true
	}
	if !used {
		return nil, hplerrors.UnusedVariable(variable, q)
	}

	return q, nil
}

// domainType reports the element type quantifier variables bound over
// domain should narrow to: the element subtype when the domain is a
// literal set or range, or Primitive otherwise (§4.4).
func domainType(domain Expression) typesystem.Type {
	switch d := domain.(type) {
	case *SetLiteral:
		return d.Subtypes()
	case *RangeLiteral:
		return d.Subtypes()
	default:
		return typesystem.Primitive
	}
}

// referencesVariable reports whether expr contains a VarReference naming
// variable anywhere in its tree.
func referencesVariable(expr Expression, variable string) bool {
	for _, n := range Iterate(expr) {
		if ref, ok := n.(*VarReference); ok && ref.Name() == variable {
			return true
		}
	}
	return false
}

func (q *Quantifier) isValue()        {}
func (q *Quantifier) Accept(v Visitor) { v.VisitQuantifier(q) }
func (q *Quantifier) Children() []Node { return []Node{q.Domain, q.Body} }
func (q *Quantifier) Types() typesystem.Type { return q.types }
func (q *Quantifier) IsFullyTyped() bool {
	return q.Domain.IsFullyTyped() && q.Body.IsFullyTyped()
}

func (q *Quantifier) String() string {
	kw := "exists"
	if q.Universal {
		kw = "forall"
	}
	return "(" + kw + " @" + q.Variable + " in " + q.Domain.String() + ": " + q.Body.String() + ")"
}

func (q *Quantifier) collectExternalRefs(refs map[string]struct{}) {
	q.Domain.collectExternalRefs(refs)
	q.Body.collectExternalRefs(refs)
}

func (q *Quantifier) cast(t typesystem.Type) error {
	r, err := q.types.Cast(t)
	if err != nil {
		return err
	}
	q.types = r
	return nil
}

// Clone deep-copies the quantifier, establishing a fresh binding identity:
// every VarReference in the cloned body that names the variable points at
// the clone, never at q. Clone sets DefinedAt directly instead of going
// through NewQuantifier and its shadow check, because this re-establishes
// a binding the original constructor already checked.
func (q *Quantifier) Clone() Expression {
	clone := &Quantifier{
		Universal: q.Universal,
		Variable:  q.Variable,
		Domain:    q.Domain.Clone(),
		Body:      q.Body.Clone(),
		types:     q.types,
	}
	for _, n := range Iterate(clone.Body) {
		if ref, ok := n.(*VarReference); ok && ref.Name() == q.Variable {
			ref.DefinedAt = clone
		}
	}
	return clone
}

func (q *Quantifier) Equal(other Expression) bool {
	o, ok := other.(*Quantifier)
	return ok && q.Universal == o.Universal && q.Variable == o.Variable &&
		q.Domain.Equal(o.Domain) && q.Body.Equal(o.Body)
}
