package ast

import (
	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// Predicate is the condition attached to a SimpleEvent: either a vacuous
// truth value (Predicate itself gives no information, as when an event has
// no `{...}` clause at all) or a wrapped boolean expression.
type Predicate interface {
	Node
	String() string

	IsVacuous() bool
	IsTrue() bool

	Negate() Predicate
	Join(operator string, other Predicate) (Predicate, error)
	Clone() Predicate
	Equal(other Predicate) bool
}

// VacuousTruth is a predicate that always holds: the implicit `{True}` of
// an event with no condition clause.
type VacuousTruth struct{}

func (t *VacuousTruth) Accept(v Visitor) { v.VisitVacuousTruth(t) }
func (*VacuousTruth) Children() []Node   { return nil }
func (*VacuousTruth) String() string   { return "True" }
func (*VacuousTruth) IsVacuous() bool  { return true }
func (*VacuousTruth) IsTrue() bool     { return true }

func (t *VacuousTruth) Negate() Predicate { return &Contradiction{} }

func (t *VacuousTruth) Join(operator string, other Predicate) (Predicate, error) {
	switch operator {
	case "and":
		return other, nil
	case "or":
		return t, nil
	default:
		return nil, hplerrors.Type("unknown predicate join operator '%s'", operator)
	}
}

func (t *VacuousTruth) Clone() Predicate { return &VacuousTruth{} }

func (t *VacuousTruth) Equal(other Predicate) bool {
	_, ok := other.(*VacuousTruth)
	return ok
}

// Contradiction is a predicate that never holds: the result of
// conjoining a condition with its own negation.
type Contradiction struct{}

func (c *Contradiction) Accept(v Visitor) { v.VisitContradiction(c) }
func (*Contradiction) Children() []Node   { return nil }
func (*Contradiction) String() string   { return "False" }
func (*Contradiction) IsVacuous() bool  { return true }
func (*Contradiction) IsTrue() bool     { return false }

func (c *Contradiction) Negate() Predicate { return &VacuousTruth{} }

func (c *Contradiction) Join(operator string, other Predicate) (Predicate, error) {
	switch operator {
	case "and":
		return c, nil
	case "or":
		return other, nil
	default:
		return nil, hplerrors.Type("unknown predicate join operator '%s'", operator)
	}
}

func (c *Contradiction) Clone() Predicate { return &Contradiction{} }

func (c *Contradiction) Equal(other Predicate) bool {
	_, ok := other.(*Contradiction)
	return ok
}

// ExpressionPredicate wraps a Boolean-typed condition expression. Its
// constructor enforces two structural invariants (§4.5):
//
//   - P2: the condition contains at least one field access rooted directly
//     at the implicit current message -- a predicate with none gives no
//     information about the event it is attached to.
//   - P1: every accessor chain that occurs more than once (by identical
//     string form) is narrowed to the intersection of all of its
//     occurrences' type sets, so that e.g. `.x > 0 and .x < 10` type-checks
//     `.x` once, consistently, rather than independently per occurrence.
type ExpressionPredicate struct {
	Condition Expression
}

// NewPredicate builds an ExpressionPredicate from a Boolean condition,
// checking P1 and P2.
func NewPredicate(condition Expression) (*ExpressionPredicate, error) {
	if err := typeCheck(predicateOwner{condition}, condition, typesystem.Boolean); err != nil {
		return nil, err
	}
	if !hasOwnFieldReference(condition) {
		return nil, hplerrors.NoOwnFieldReference()
	}
	if err := unifyCrossReferences(condition); err != nil {
		return nil, err
	}
	return &ExpressionPredicate{Condition: condition}, nil
}

type predicateOwner struct{ e Expression }

func (p predicateOwner) String() string { return p.e.String() }

func (p *ExpressionPredicate) Accept(v Visitor) { v.VisitPredicate(p) }
func (p *ExpressionPredicate) Children() []Node { return []Node{p.Condition} }
func (p *ExpressionPredicate) String() string   { return p.Condition.String() }
func (p *ExpressionPredicate) IsVacuous() bool  { return false }
func (p *ExpressionPredicate) IsTrue() bool     { return false }

func (p *ExpressionPredicate) Negate() Predicate {
	negated, err := NewUnaryOperator("not", p.Condition.Clone())
	if err != nil {
		// The condition was already Boolean-typed, so negating it can
		// never fail the type check that NewUnaryOperator performs.
		panic(err)
	}
	out, err := NewPredicate(negated)
	if err != nil {
		panic(err)
	}
	return out
}

func (p *ExpressionPredicate) Join(operator string, other Predicate) (Predicate, error) {
	if other.IsVacuous() {
		flipped, err := other.Join(operator, p)
		if err != nil {
			return nil, err
		}
		return flipped, nil
	}
	o, ok := other.(*ExpressionPredicate)
	if !ok {
		return nil, hplerrors.Type("cannot join predicate with unknown predicate kind")
	}
	joined, err := NewBinaryOperator(operator, p.Condition.Clone(), o.Condition.Clone())
	if err != nil {
		return nil, err
	}
	return NewPredicate(joined)
}

func (p *ExpressionPredicate) Clone() Predicate {
	return &ExpressionPredicate{Condition: p.Condition.Clone()}
}

func (p *ExpressionPredicate) Equal(other Predicate) bool {
	o, ok := other.(*ExpressionPredicate)
	return ok && p.Condition.Equal(o.Condition)
}

// hasOwnFieldReference reports whether cond contains a FieldAccess whose
// base is the implicit current message directly (P2).
func hasOwnFieldReference(cond Expression) bool {
	for _, n := range Iterate(cond) {
		f, ok := n.(*FieldAccess)
		if !ok {
			continue
		}
		if _, ok := f.Message.(*ThisMessage); ok {
			return true
		}
	}
	return false
}

// unifyCrossReferences narrows every group of accessors and bare variable
// references that share the same string form to their common type set
// (P1), so that repeated references to the same field or alias within one
// predicate agree on a type.
func unifyCrossReferences(cond Expression) error {
	groups := map[string][]Expression{}
	var order []string
	for _, n := range Iterate(cond) {
		e, ok := n.(Expression)
		if !ok {
			continue
		}
		if _, ok := isAccessor(e); !ok {
			if _, ok := e.(*VarReference); !ok {
				continue
			}
		}
		key := e.String()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}
	for _, key := range order {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		common := members[0].Types()
		for _, a := range members[1:] {
			common &= a.Types()
		}
		if common == 0 {
			return hplerrors.Type("incompatible types for repeated reference '%s'", key)
		}
		for _, a := range members {
			if err := a.cast(common); err != nil {
				return err
			}
		}
	}
	return nil
}
