package ast

import (
	"strings"

	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/schema"
)

// Event is anything that can occupy an activator, trigger or behaviour
// slot of a Pattern: a single message arriving on a topic, or a
// disjunction of such arrivals.
type Event interface {
	Node
	String() string

	// Topics lists every topic this event can match, in declaration
	// order.
	Topics() []string
	Clone() Event
	Equal(other Event) bool
}

// SimpleEvent is a single message arrival: `<topic> {<predicate>}`,
// optionally bound to an alias so later events in the same property can
// reference its fields.
type SimpleEvent struct {
	Topic     string
	Alias     string // "" when the event is not aliased
	Predicate Predicate
	RosType   schema.Schema
}

// NewSimpleEvent builds a SimpleEvent. If predicate is nil, it defaults to
// a VacuousTruth. Any reference within predicate to the event's own alias
// is rewritten to the implicit current message, since once the event is
// known by alias, referring to that alias from within its own predicate
// means exactly what an unqualified field access already means.
func NewSimpleEvent(topic, alias string, predicate Predicate) *SimpleEvent {
	if predicate == nil {
		predicate = &VacuousTruth{}
	}
	e := &SimpleEvent{Topic: topic, Alias: alias, Predicate: predicate}
	if alias != "" {
		e.replaceSelfReference()
	}
	return e
}

// replaceSelfReference rewrites every VarReference naming this event's own
// alias, within its own predicate, into a ThisMessage.
func (e *SimpleEvent) replaceSelfReference() {
	p, ok := e.Predicate.(*ExpressionPredicate)
	if !ok {
		return
	}
	p.Condition = replaceVarWithThis(p.Condition, e.Alias)
}

func replaceVarWithThis(expr Expression, alias string) Expression {
	switch n := expr.(type) {
	case *FieldAccess:
		n.Message = replaceVarWithThis(n.Message, alias)
		return n
	case *ArrayAccess:
		n.Array = replaceVarWithThis(n.Array, alias)
		n.Index = replaceVarWithThis(n.Index, alias)
		return n
	case *UnaryOperator:
		n.Operand = replaceVarWithThis(n.Operand, alias)
		return n
	case *BinaryOperator:
		n.Left = replaceVarWithThis(n.Left, alias)
		n.Right = replaceVarWithThis(n.Right, alias)
		return n
	case *FunctionCall:
		for i, a := range n.Args {
			n.Args[i] = replaceVarWithThis(a, alias)
		}
		return n
	case *Quantifier:
		n.Domain = replaceVarWithThis(n.Domain, alias)
		n.Body = replaceVarWithThis(n.Body, alias)
		return n
	case *VarReference:
		if n.Name() == alias {
			return &ThisMessage{types: n.types, RosType: n.RosType}
		}
		return n
	default:
		return expr
	}
}

func (e *SimpleEvent) Topics() []string { return []string{e.Topic} }

func (e *SimpleEvent) Accept(v Visitor) { v.VisitSimpleEvent(e) }
func (e *SimpleEvent) Children() []Node { return []Node{e.Predicate} }

func (e *SimpleEvent) String() string {
	pred := e.Predicate.String()
	if e.Predicate.IsVacuous() && e.Predicate.IsTrue() {
		if e.Alias == "" {
			return e.Topic
		}
		return e.Topic + " as " + e.Alias
	}
	head := e.Topic
	if e.Alias != "" {
		head += " as " + e.Alias
	}
	return head + " { " + pred + " }"
}

func (e *SimpleEvent) Clone() Event {
	return &SimpleEvent{Topic: e.Topic, Alias: e.Alias, Predicate: e.Predicate.Clone(), RosType: e.RosType}
}

func (e *SimpleEvent) Equal(other Event) bool {
	o, ok := other.(*SimpleEvent)
	return ok && e.Topic == o.Topic && e.Alias == o.Alias && e.Predicate.Equal(o.Predicate)
}

// EventDisjunction is a set of alternative SimpleEvents, any one of which
// satisfies the event slot: `a or b or c`. No two branches may share a
// topic (invariant I3), since then the disjunction could never
// distinguish which branch fired.
type EventDisjunction struct {
	Events []Event
}

// NewEventDisjunction builds an EventDisjunction, checking I3.
func NewEventDisjunction(events []Event) (*EventDisjunction, error) {
	seen := map[string]struct{}{}
	for _, e := range events {
		for _, t := range e.Topics() {
			if _, dup := seen[t]; dup {
				return nil, hplerrors.DuplicateTopic(t)
			}
			seen[t] = struct{}{}
		}
	}
	return &EventDisjunction{Events: events}, nil
}

func (d *EventDisjunction) Topics() []string {
	var out []string
	for _, e := range d.Events {
		out = append(out, e.Topics()...)
	}
	return out
}

func (d *EventDisjunction) Accept(v Visitor) { v.VisitEventDisjunction(d) }
func (d *EventDisjunction) Children() []Node {
	out := make([]Node, len(d.Events))
	for i, e := range d.Events {
		out[i] = e
	}
	return out
}

func (d *EventDisjunction) String() string {
	parts := make([]string, len(d.Events))
	for i, e := range d.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " or ")
}

func (d *EventDisjunction) Clone() Event {
	events := make([]Event, len(d.Events))
	for i, e := range d.Events {
		events[i] = e.Clone()
	}
	return &EventDisjunction{Events: events}
}

// Equal treats a disjunction as an unordered set of branches: each side
// must find a distinct match for every branch on the other side.
func (d *EventDisjunction) Equal(other Event) bool {
	o, ok := other.(*EventDisjunction)
	if !ok || len(d.Events) != len(o.Events) {
		return false
	}
	matched := make([]bool, len(o.Events))
	for _, e := range d.Events {
		found := false
		for i, oe := range o.Events {
			if matched[i] {
				continue
			}
			if e.Equal(oe) {
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
