package ast

import "strings"

// Specification is an unordered collection of properties. Two
// specifications are equal when every property in one has a distinct
// match in the other, regardless of declaration order -- a specification
// is a set of contracts, not a script.
type Specification struct {
	Properties []*Property
}

func NewSpecification(properties []*Property) *Specification {
	return &Specification{Properties: properties}
}

func (s *Specification) Accept(v Visitor) { v.VisitSpecification(s) }
func (s *Specification) Children() []Node {
	out := make([]Node, len(s.Properties))
	for i, p := range s.Properties {
		out[i] = p
	}
	return out
}

func (s *Specification) String() string {
	parts := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		parts[i] = p.String()
	}
	return strings.Join(parts, "\n")
}

// SanityCheck runs Property.SanityCheck over every property, returning the
// first error encountered.
func (s *Specification) SanityCheck() error {
	for _, p := range s.Properties {
		if err := p.SanityCheck(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Specification) Clone() *Specification {
	properties := make([]*Property, len(s.Properties))
	for i, p := range s.Properties {
		properties[i] = p.Clone()
	}
	return &Specification{Properties: properties}
}

// Equal compares specifications as unordered sets of properties: each
// property on one side must find a distinct, unmatched equal on the
// other.
func (s *Specification) Equal(other *Specification) bool {
	if len(s.Properties) != len(other.Properties) {
		return false
	}
	matched := make([]bool, len(other.Properties))
	for _, p := range s.Properties {
		found := false
		for i, op := range other.Properties {
			if matched[i] {
				continue
			}
			if p.Equal(op) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
