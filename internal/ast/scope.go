package ast

import "github.com/hpl-lang/hplspec/internal/hplerrors"

// Scope is the time window over which a Pattern's behaviour is checked:
// the whole run, everything after some activating event, everything
// before some terminating event, or the span between the two.
type Scope interface {
	Node
	String() string

	Activator() Event  // nil outside After and AfterUntil
	Terminator() Event // nil outside Until and AfterUntil
	Clone() Scope
	Equal(other Scope) bool
}

// GlobalScope covers the entire run: `globally: ...`.
type GlobalScope struct{}

func NewGlobalScope() *GlobalScope { return &GlobalScope{} }

func (s *GlobalScope) Accept(v Visitor) { v.VisitScope(s) }
func (*GlobalScope) Children() []Node   { return nil }
func (*GlobalScope) String() string     { return "globally" }
func (*GlobalScope) Activator() Event   { return nil }
func (*GlobalScope) Terminator() Event  { return nil }
func (*GlobalScope) Clone() Scope      { return &GlobalScope{} }

func (*GlobalScope) Equal(other Scope) bool {
	_, ok := other.(*GlobalScope)
	return ok
}

// AfterScope covers everything from some activating event onward:
// `after <activator>: ...`.
type AfterScope struct {
	activator Event
}

func NewAfterScope(activator Event) (*AfterScope, error) {
	if activator == nil {
		return nil, hplerrors.Sanity("after-scope requires an activating event")
	}
	return &AfterScope{activator: activator}, nil
}

func (s *AfterScope) Accept(v Visitor) { v.VisitScope(s) }
func (s *AfterScope) Children() []Node { return []Node{s.activator} }
func (s *AfterScope) String() string   { return "after " + s.activator.String() }
func (s *AfterScope) Activator() Event  { return s.activator }
func (s *AfterScope) Terminator() Event { return nil }
func (s *AfterScope) Clone() Scope      { return &AfterScope{activator: s.activator.Clone()} }

func (s *AfterScope) Equal(other Scope) bool {
	o, ok := other.(*AfterScope)
	return ok && s.activator.Equal(o.activator)
}

// UntilScope covers everything up to some terminating event:
// `until <terminator>: ...`.
type UntilScope struct {
	terminator Event
}

func NewUntilScope(terminator Event) (*UntilScope, error) {
	if terminator == nil {
		return nil, hplerrors.Sanity("until-scope requires a terminating event")
	}
	return &UntilScope{terminator: terminator}, nil
}

func (s *UntilScope) Accept(v Visitor) { v.VisitScope(s) }
func (s *UntilScope) Children() []Node { return []Node{s.terminator} }
func (s *UntilScope) String() string   { return "until " + s.terminator.String() }
func (s *UntilScope) Activator() Event  { return nil }
func (s *UntilScope) Terminator() Event { return s.terminator }
func (s *UntilScope) Clone() Scope      { return &UntilScope{terminator: s.terminator.Clone()} }

func (s *UntilScope) Equal(other Scope) bool {
	o, ok := other.(*UntilScope)
	return ok && s.terminator.Equal(o.terminator)
}

// AfterUntilScope covers the span between an activating event and a
// terminating event: `after <activator> until <terminator>: ...`.
type AfterUntilScope struct {
	activator  Event
	terminator Event
}

func NewAfterUntilScope(activator, terminator Event) (*AfterUntilScope, error) {
	if activator == nil || terminator == nil {
		return nil, hplerrors.Sanity("after-until-scope requires both an activating and a terminating event")
	}
	return &AfterUntilScope{activator: activator, terminator: terminator}, nil
}

func (s *AfterUntilScope) Accept(v Visitor) { v.VisitScope(s) }
func (s *AfterUntilScope) Children() []Node { return []Node{s.activator, s.terminator} }
func (s *AfterUntilScope) String() string {
	return "after " + s.activator.String() + " until " + s.terminator.String()
}
func (s *AfterUntilScope) Activator() Event  { return s.activator }
func (s *AfterUntilScope) Terminator() Event { return s.terminator }
func (s *AfterUntilScope) Clone() Scope {
	return &AfterUntilScope{activator: s.activator.Clone(), terminator: s.terminator.Clone()}
}

func (s *AfterUntilScope) Equal(other Scope) bool {
	o, ok := other.(*AfterUntilScope)
	return ok && s.activator.Equal(o.activator) && s.terminator.Equal(o.terminator)
}
