package ast

import (
	"github.com/google/uuid"

	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/schema"
)

// Metadata carries bookkeeping about a Property that has no bearing on its
// semantics: an identifier (generated if not supplied), a human name and a
// free-text description.
type Metadata struct {
	ID          string
	Name        string
	Description string
}

// Property is one temporal behavioural contract: a Pattern checked within
// a Scope. Constructing it does not run the sanity check or type
// refinement passes -- both require context the constructor does not
// have (refinement needs a schema catalogue; the sanity check is cheap
// enough to run eagerly, but callers assembling a property incrementally
// would find a constructor-time check premature). Call SanityCheck and
// RefineTypes explicitly once the property is complete.
type Property struct {
	Scope    Scope
	Pattern  Pattern
	Metadata Metadata
}

// NewProperty builds a Property, generating an ID when metadata.ID is
// empty.
func NewProperty(scope Scope, pattern Pattern, metadata Metadata) (*Property, error) {
	if scope == nil || pattern == nil {
		return nil, hplerrors.Sanity("a property requires both a scope and a pattern")
	}
	if metadata.ID == "" {
		metadata.ID = uuid.NewString()
	}
	return &Property{Scope: scope, Pattern: pattern, Metadata: metadata}, nil
}

func (p *Property) Accept(v Visitor) { v.VisitProperty(p) }
func (p *Property) Children() []Node { return []Node{p.Scope, p.Pattern} }
func (p *Property) String() string   { return p.Scope.String() + ": " + p.Pattern.String() }

// Events returns every event slot the property actually uses (activator,
// trigger, behaviour, terminator), skipping any that are nil for this
// scope/pattern combination.
func (p *Property) Events() []Event {
	var out []Event
	if a := p.Scope.Activator(); a != nil {
		out = append(out, a)
	}
	if t := p.Pattern.Trigger(); t != nil {
		out = append(out, t)
	}
	out = append(out, p.Pattern.Behaviour())
	if t := p.Scope.Terminator(); t != nil {
		out = append(out, t)
	}
	return out
}

// IsFullyTyped reports whether every expression reachable from every event
// slot has narrowed to a single concrete type -- i.e. RefineTypes has run
// and resolved everything it touches.
func (p *Property) IsFullyTyped() bool {
	for _, e := range p.Events() {
		for _, n := range Iterate(e) {
			if expr, ok := n.(Expression); ok && !expr.IsFullyTyped() {
				return false
			}
		}
	}
	return true
}

func (p *Property) Clone() *Property {
	return &Property{Scope: p.Scope.Clone(), Pattern: p.Pattern.Clone(), Metadata: p.Metadata}
}

// Equal compares scope and pattern only; Metadata (including ID) is
// bookkeeping, not semantic content.
func (p *Property) Equal(other *Property) bool {
	return p.Scope.Equal(other.Scope) && patternsEqual(p.Pattern, other.Pattern)
}

func patternsEqual(a, b Pattern) bool {
	switch x := a.(type) {
	case *Existence:
		y, ok := b.(*Existence)
		return ok && x.Equal(y)
	case *Absence:
		y, ok := b.(*Absence)
		return ok && x.Equal(y)
	case *Response:
		y, ok := b.(*Response)
		return ok && x.Equal(y)
	case *Requirement:
		y, ok := b.(*Requirement)
		return ok && x.Equal(y)
	case *Prevention:
		y, ok := b.(*Prevention)
		return ok && x.Equal(y)
	default:
		return false
	}
}

// SanityCheck runs the four-step alias-scoping dataflow (§4.6): it walks
// the property's event slots in an order that depends on the pattern
// kind, verifying every external variable reference names an alias
// already in scope and that no alias is defined twice.
//
// Existence and Absence check only the behaviour slot (scoped to the
// activator's aliases, if any). Response and Prevention check the trigger
// slot first, then the behaviour slot with the trigger's aliases added to
// what is available; Requirement checks the behaviour slot first, then
// the trigger slot with the behaviour's aliases added. The terminator, when
// present, is always checked against only the activator's aliases --
// never the trigger's or behaviour's -- since the scope can end before
// either of those ever fires.
func (p *Property) SanityCheck() error {
	available := map[string]struct{}{}
	defined := map[string]struct{}{}

	check := func(e Event) error {
		if e == nil {
			return nil
		}
		refs := map[string]struct{}{}
		collectEventRefs(e, refs)
		for name := range refs {
			if _, ok := available[name]; !ok {
				return hplerrors.UndefinedReference(name)
			}
		}
		for _, alias := range eventAliases(e) {
			if _, dup := defined[alias]; dup {
				return hplerrors.DuplicateAlias(alias)
			}
			defined[alias] = struct{}{}
		}
		return nil
	}

	activator := p.Scope.Activator()
	if err := check(activator); err != nil {
		return err
	}
	for _, alias := range eventAliases(activator) {
		available[alias] = struct{}{}
	}
	afterActivator := cloneAliasSet(available)

	// The primary (cause) event is checked first, against the aliases
	// available so far; its own aliases are then added before checking
	// the dependent (effect) event. Which slot is primary and which is
	// dependent depends on the pattern (§4.6): for Requirement the
	// behaviour is the cause and the trigger is the effect, while for
	// Response and Prevention it is the other way around.
	var primary, dependent Event
	switch p.Pattern.(type) {
	case *Existence, *Absence:
		primary, dependent = p.Pattern.Behaviour(), nil
	case *Requirement:
		primary, dependent = p.Pattern.Behaviour(), p.Pattern.Trigger()
	default: // Response, Prevention
		primary, dependent = p.Pattern.Trigger(), p.Pattern.Behaviour()
	}
	if err := check(primary); err != nil {
		return err
	}
	for _, alias := range eventAliases(primary) {
		available[alias] = struct{}{}
	}
	if err := check(dependent); err != nil {
		return err
	}

	if terminator := p.Scope.Terminator(); terminator != nil {
		saved := available
		available = afterActivator
		err := check(terminator)
		available = saved
		if err != nil {
			return err
		}
	}

	return nil
}

func cloneAliasSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func collectEventRefs(e Event, refs map[string]struct{}) {
	switch ev := e.(type) {
	case *SimpleEvent:
		if pred, ok := ev.Predicate.(*ExpressionPredicate); ok {
			pred.Condition.collectExternalRefs(refs)
		}
	case *EventDisjunction:
		for _, b := range ev.Events {
			collectEventRefs(b, refs)
		}
	}
}

func eventAliases(e Event) []string {
	if e == nil {
		return nil
	}
	switch ev := e.(type) {
	case *SimpleEvent:
		if ev.Alias == "" {
			return nil
		}
		return []string{ev.Alias}
	case *EventDisjunction:
		var out []string
		for _, b := range ev.Events {
			out = append(out, eventAliases(b)...)
		}
		return out
	default:
		return nil
	}
}

// RefineTypes runs schema-backed type refinement (§4.7) over every event
// slot: it walks each SimpleEvent's predicate from its base (the implicit
// current message, resolved against catalogue by topic, or an external
// alias, resolved against aliases) out to each accessor's leaf, narrowing
// every node's type set to match the schema and recording the schema
// itself. A second run with the same inputs changes nothing: a message or
// alias base that already carries a schema is skipped, accessors are
// narrowed to the same type again, and an event whose recorded schema
// differs from the catalogue's is reported as AlreadyDefined.
func (p *Property) RefineTypes(catalogue schema.Catalogue, aliases schema.Aliases) error {
	for _, e := range p.Events() {
		if err := refineEvent(e, catalogue, aliases); err != nil {
			return err
		}
	}
	return nil
}

func refineEvent(e Event, catalogue schema.Catalogue, aliases schema.Aliases) error {
	switch ev := e.(type) {
	case *SimpleEvent:
		s, ok := catalogue.Lookup(ev.Topic)
		if !ok {
			return hplerrors.UndefinedTopic(ev.Topic)
		}
		if ev.RosType != nil {
			if ev.RosType != s {
				return hplerrors.AlreadyDefined(ev.Topic, describeSchema(ev.RosType), describeSchema(s))
			}
		} else {
			ev.RosType = s
		}
		pred, ok := ev.Predicate.(*ExpressionPredicate)
		if !ok {
			return nil
		}
		return refineExpr(pred.Condition, catalogue, aliases, ev.Topic)
	case *EventDisjunction:
		for _, b := range ev.Events {
			if err := refineEvent(b, catalogue, aliases); err != nil {
				return err
			}
		}
	}
	return nil
}

// describeSchema renders a resolved schema for an AlreadyDefined diagnostic.
func describeSchema(s schema.Schema) string {
	if t, err := schemaMemberType(s); err == nil {
		return t.Name()
	}
	return "unknown"
}

func refineExpr(e Expression, catalogue schema.Catalogue, aliases schema.Aliases, topic string) error {
	switch n := e.(type) {
	case *ThisMessage:
		if n.RosType != nil {
			return nil
		}
		s, ok := catalogue.Lookup(topic)
		if !ok {
			return hplerrors.UndefinedTopic(topic)
		}
		t, err := schemaMemberType(s)
		if err != nil {
			return err
		}
		if err := n.cast(t); err != nil {
			return err
		}
		n.RosType = s
		return nil
	case *VarReference:
		if n.RosType != nil {
			return nil
		}
		if n.DefinedAt != nil {
			// A quantified variable, not a message alias: its type comes
			// from its domain, already narrowed by NewQuantifier.
			return nil
		}
		s, ok := aliases[n.Name()]
		if !ok {
			return hplerrors.UndefinedAlias(n.Name())
		}
		t, err := schemaMemberType(s)
		if err != nil {
			return err
		}
		if err := n.cast(t); err != nil {
			return err
		}
		n.RosType = s
		return nil
	case *FieldAccess:
		if err := refineExpr(n.Message, catalogue, aliases, topic); err != nil {
			return err
		}
		base := schemaOf(n.Message)
		if base == nil {
			return nil
		}
		if !base.IsMessage() {
			return hplerrors.NotAMessage(n.Message.Types().Name(), n)
		}
		if field, ok := base.Fields()[n.Field]; ok {
			return n.SetRosType(field)
		}
		if c, ok := base.Constants()[n.Field]; ok {
			return n.SetRosType(c.Schema)
		}
		return hplerrors.UndefinedField(n.Message.Types().Name(), n.Field, n)
	case *ArrayAccess:
		if err := refineExpr(n.Array, catalogue, aliases, topic); err != nil {
			return err
		}
		base := schemaOf(n.Array)
		if base == nil {
			return nil
		}
		if !base.IsArray() {
			return hplerrors.NotAnArray(n.Array.Types().Name(), n)
		}
		if lit, ok := n.Index.(*Literal); ok {
			if idx, ok2 := lit.Value.(int64); ok2 {
				if contains, known := base.ContainsIndex(idx); known && !contains {
					return hplerrors.IndexOutOfRange(n.Array.Types().Name(), idx, n)
				}
			}
		}
		return n.SetRosType(base.ElementSchema())
	case *UnaryOperator:
		return refineExpr(n.Operand, catalogue, aliases, topic)
	case *BinaryOperator:
		if err := refineExpr(n.Left, catalogue, aliases, topic); err != nil {
			return err
		}
		return refineExpr(n.Right, catalogue, aliases, topic)
	case *FunctionCall:
		for _, a := range n.Args {
			if err := refineExpr(a, catalogue, aliases, topic); err != nil {
				return err
			}
		}
		return nil
	case *Quantifier:
		if err := refineExpr(n.Domain, catalogue, aliases, topic); err != nil {
			return err
		}
		return refineExpr(n.Body, catalogue, aliases, topic)
	case *SetLiteral:
		for _, v := range n.Values {
			if err := refineExpr(v, catalogue, aliases, topic); err != nil {
				return err
			}
		}
		return nil
	case *RangeLiteral:
		if err := refineExpr(n.Min, catalogue, aliases, topic); err != nil {
			return err
		}
		return refineExpr(n.Max, catalogue, aliases, topic)
	default:
		return nil // Literal: nothing external to resolve
	}
}

// schemaOf returns the schema a node has already refined to, or nil if it
// has not been refined (or is not the kind of node refinement targets).
func schemaOf(e Expression) schema.Schema {
	switch n := e.(type) {
	case *ThisMessage:
		return n.RosType
	case *VarReference:
		return n.RosType
	case *FieldAccess:
		return n.RosType
	case *ArrayAccess:
		return n.RosType
	default:
		return nil
	}
}
