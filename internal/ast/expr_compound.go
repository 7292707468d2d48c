package ast

import (
	"strings"

	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// SetLiteral is an ordered sequence of primitive-typed values, e.g.
// `{1, 2, 3}`. It is a quantifier domain, or the right operand of `in`.
type SetLiteral struct {
	Values []Expression
	types  typesystem.Type
}

// NewSetLiteral builds a SetLiteral, narrowing every element to Primitive.
func NewSetLiteral(values []Expression) (*SetLiteral, error) {
	s := &SetLiteral{Values: values, types: typesystem.Set}
	for _, v := range values {
		if err := typeCheck(s, v, typesystem.Primitive); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Subtypes is the union of the element types, used to type a quantifier
// variable bound over this set.
func (s *SetLiteral) Subtypes() typesystem.Type {
	var t typesystem.Type
	for _, v := range s.Values {
		t = t.Add(v.Types())
	}
	return t
}

func (s *SetLiteral) isValue()        {}
func (s *SetLiteral) Accept(v Visitor) { v.VisitSet(s) }
func (s *SetLiteral) Children() []Node {
	out := make([]Node, len(s.Values))
	for i, e := range s.Values {
		out[i] = e
	}
	return out
}
func (s *SetLiteral) Types() typesystem.Type { return s.types }

func (s *SetLiteral) IsFullyTyped() bool {
	for _, v := range s.Values {
		if !v.IsFullyTyped() {
			return false
		}
	}
	return true
}

func (s *SetLiteral) String() string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = v.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *SetLiteral) collectExternalRefs(refs map[string]struct{}) {
	for _, v := range s.Values {
		v.collectExternalRefs(refs)
	}
}

func (s *SetLiteral) cast(t typesystem.Type) error {
	r, err := s.types.Cast(t)
	if err != nil {
		return err
	}
	s.types = r
	return nil
}

func (s *SetLiteral) Clone() Expression {
	values := make([]Expression, len(s.Values))
	for i, v := range s.Values {
		values[i] = v.Clone()
	}
	return &SetLiteral{Values: values, types: s.types}
}

func (s *SetLiteral) Equal(other Expression) bool {
	o, ok := other.(*SetLiteral)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for i := range s.Values {
		if !s.Values[i].Equal(o.Values[i]) {
			return false
		}
	}
	return true
}

// RangeLiteral is a numeric interval, e.g. `[0 to 10]` or `![0 to 10]!`
// with excluded bounds. It is a quantifier domain, or the right operand
// of `in`.
type RangeLiteral struct {
	Min, Max             Expression
	ExcludeMin, ExcludeMax bool
	types                typesystem.Type
}

func NewRangeLiteral(min, max Expression, excludeMin, excludeMax bool) (*RangeLiteral, error) {
	r := &RangeLiteral{Min: min, Max: max, ExcludeMin: excludeMin, ExcludeMax: excludeMax, types: typesystem.Range}
	if err := typeCheck(r, min, typesystem.Number); err != nil {
		return nil, err
	}
	if err := typeCheck(r, max, typesystem.Number); err != nil {
		return nil, err
	}
	return r, nil
}

// Subtypes is always Number: a range always bounds numbers.
func (r *RangeLiteral) Subtypes() typesystem.Type { return typesystem.Number }

func (r *RangeLiteral) isValue()        {}
func (r *RangeLiteral) Accept(v Visitor) { v.VisitRange(r) }
func (r *RangeLiteral) Children() []Node { return []Node{r.Min, r.Max} }
func (r *RangeLiteral) Types() typesystem.Type { return r.types }
func (r *RangeLiteral) IsFullyTyped() bool {
	return r.Min.IsFullyTyped() && r.Max.IsFullyTyped()
}

func (r *RangeLiteral) String() string {
	lp, rp := "[", "]"
	if r.ExcludeMin {
		lp = "!["
	}
	if r.ExcludeMax {
		rp = "]!"
	}
	return lp + r.Min.String() + " to " + r.Max.String() + rp
}

func (r *RangeLiteral) collectExternalRefs(refs map[string]struct{}) {
	r.Min.collectExternalRefs(refs)
	r.Max.collectExternalRefs(refs)
}

func (r *RangeLiteral) cast(t typesystem.Type) error {
	res, err := r.types.Cast(t)
	if err != nil {
		return err
	}
	r.types = res
	return nil
}

func (r *RangeLiteral) Clone() Expression {
	return &RangeLiteral{
		Min: r.Min.Clone(), Max: r.Max.Clone(),
		ExcludeMin: r.ExcludeMin, ExcludeMax: r.ExcludeMax,
		types: r.types,
	}
}

func (r *RangeLiteral) Equal(other Expression) bool {
	o, ok := other.(*RangeLiteral)
	return ok && r.Min.Equal(o.Min) && r.Max.Equal(o.Max) &&
		r.ExcludeMin == o.ExcludeMin && r.ExcludeMax == o.ExcludeMax
}
