package ast

import (
	"fmt"
	"math"

	"github.com/hpl-lang/hplspec/internal/hplerrors"
)

// Pattern is the behavioural shape checked within a Property's scope:
// whether some event occurs, never occurs, or occurs in a fixed temporal
// relation to a triggering event. Behaviour always names the event the
// pattern is fundamentally about; Trigger names the event that causes or
// requires it, and is nil for Existence and Absence.
type Pattern interface {
	Node
	String() string

	Behaviour() Event
	Trigger() Event // nil for Existence and Absence
	MinTime() float64
	MaxTime() float64
	IsSafety() bool
	IsLiveness() bool
	Clone() Pattern
	Equal(other Pattern) bool
}

// timeEqual compares two time-bound values with a relative tolerance of
// 1e-6, since they typically arrive as parsed floating-point literals;
// infinities compare equal only to themselves.
func timeEqual(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	if a == b {
		return true
	}
	d := math.Abs(a - b)
	m := math.Max(math.Abs(a), math.Abs(b))
	return d <= m*1e-6
}

func checkTimeBound(min, max float64) error {
	if min < 0 {
		return hplerrors.Sanity("time bound minimum must be non-negative, got %g", min)
	}
	if max < min {
		return hplerrors.Sanity("time bound maximum (%g) is less than its minimum (%g)", max, min)
	}
	return nil
}

func timeBoundString(min, max float64) string {
	if math.IsInf(max, 1) {
		if min == 0 {
			return ""
		}
		return fmt.Sprintf(" after %g", min)
	}
	if min == 0 {
		return fmt.Sprintf(" within %g", max)
	}
	return fmt.Sprintf(" within %g to %g", min, max)
}

// Existence asserts that a Behaviour event occurs at least once within the
// scope, optionally within a time bound of the scope's start. Liveness: it
// demands something eventually happen.
type Existence struct {
	behaviour    Event
	minT, maxT   float64
}

func NewExistence(behaviour Event, minTime, maxTime float64) (*Existence, error) {
	if behaviour == nil {
		return nil, hplerrors.Sanity("existence pattern requires a behaviour event")
	}
	if err := checkTimeBound(minTime, maxTime); err != nil {
		return nil, err
	}
	return &Existence{behaviour: behaviour, minT: minTime, maxT: maxTime}, nil
}

func (p *Existence) Behaviour() Event  { return p.behaviour }
func (p *Existence) Trigger() Event    { return nil }
func (p *Existence) MinTime() float64  { return p.minT }
func (p *Existence) MaxTime() float64  { return p.maxT }
func (p *Existence) IsSafety() bool    { return false }
func (p *Existence) IsLiveness() bool  { return true }

func (p *Existence) Accept(v Visitor) { v.VisitPattern(p) }
func (p *Existence) Children() []Node { return []Node{p.behaviour} }
func (p *Existence) String() string {
	return "some " + p.behaviour.String() + timeBoundString(p.minT, p.maxT)
}

func (p *Existence) Clone() Pattern {
	return &Existence{behaviour: p.behaviour.Clone(), minT: p.minT, maxT: p.maxT}
}

func (p *Existence) Equal(other Pattern) bool {
	o, ok := other.(*Existence)
	return ok && timeEqual(p.minT, o.minT) && timeEqual(p.maxT, o.maxT) && p.behaviour.Equal(o.behaviour)
}

// Absence asserts that a Behaviour event never occurs within the scope.
// Safety: it forbids something from happening.
type Absence struct {
	behaviour  Event
	minT, maxT float64
}

func NewAbsence(behaviour Event, minTime, maxTime float64) (*Absence, error) {
	if behaviour == nil {
		return nil, hplerrors.Sanity("absence pattern requires a behaviour event")
	}
	if err := checkTimeBound(minTime, maxTime); err != nil {
		return nil, err
	}
	return &Absence{behaviour: behaviour, minT: minTime, maxT: maxTime}, nil
}

func (p *Absence) Behaviour() Event  { return p.behaviour }
func (p *Absence) Trigger() Event    { return nil }
func (p *Absence) MinTime() float64  { return p.minT }
func (p *Absence) MaxTime() float64  { return p.maxT }
func (p *Absence) IsSafety() bool    { return true }
func (p *Absence) IsLiveness() bool  { return false }

func (p *Absence) Accept(v Visitor) { v.VisitPattern(p) }
func (p *Absence) Children() []Node { return []Node{p.behaviour} }
func (p *Absence) String() string {
	return "no " + p.behaviour.String() + timeBoundString(p.minT, p.maxT)
}

func (p *Absence) Clone() Pattern {
	return &Absence{behaviour: p.behaviour.Clone(), minT: p.minT, maxT: p.maxT}
}

func (p *Absence) Equal(other Pattern) bool {
	o, ok := other.(*Absence)
	return ok && timeEqual(p.minT, o.minT) && timeEqual(p.maxT, o.maxT) && p.behaviour.Equal(o.behaviour)
}

// Response asserts that whenever Trigger occurs, Behaviour eventually
// follows within the time bound. Liveness: it demands a consequence.
type Response struct {
	trigger, behaviour Event
	minT, maxT         float64
}

func NewResponse(trigger, behaviour Event, minTime, maxTime float64) (*Response, error) {
	if trigger == nil || behaviour == nil {
		return nil, hplerrors.Sanity("response pattern requires both a trigger and a behaviour event")
	}
	if err := checkTimeBound(minTime, maxTime); err != nil {
		return nil, err
	}
	return &Response{trigger: trigger, behaviour: behaviour, minT: minTime, maxT: maxTime}, nil
}

func (p *Response) Behaviour() Event  { return p.behaviour }
func (p *Response) Trigger() Event    { return p.trigger }
func (p *Response) MinTime() float64  { return p.minT }
func (p *Response) MaxTime() float64  { return p.maxT }
func (p *Response) IsSafety() bool    { return false }
func (p *Response) IsLiveness() bool  { return true }

func (p *Response) Accept(v Visitor) { v.VisitPattern(p) }
func (p *Response) Children() []Node { return []Node{p.trigger, p.behaviour} }
func (p *Response) String() string {
	return p.trigger.String() + " causes " + p.behaviour.String() + timeBoundString(p.minT, p.maxT)
}

func (p *Response) Clone() Pattern {
	return &Response{trigger: p.trigger.Clone(), behaviour: p.behaviour.Clone(), minT: p.minT, maxT: p.maxT}
}

func (p *Response) Equal(other Pattern) bool {
	o, ok := other.(*Response)
	return ok && timeEqual(p.minT, o.minT) && timeEqual(p.maxT, o.maxT) &&
		p.trigger.Equal(o.trigger) && p.behaviour.Equal(o.behaviour)
}

// Requirement asserts that Behaviour only occurs if Trigger already
// occurred beforehand within the time bound. Safety: it forbids an
// unjustified occurrence.
type Requirement struct {
	trigger, behaviour Event
	minT, maxT         float64
}

func NewRequirement(trigger, behaviour Event, minTime, maxTime float64) (*Requirement, error) {
	if trigger == nil || behaviour == nil {
		return nil, hplerrors.Sanity("requirement pattern requires both a trigger and a behaviour event")
	}
	if err := checkTimeBound(minTime, maxTime); err != nil {
		return nil, err
	}
	return &Requirement{trigger: trigger, behaviour: behaviour, minT: minTime, maxT: maxTime}, nil
}

func (p *Requirement) Behaviour() Event  { return p.behaviour }
func (p *Requirement) Trigger() Event    { return p.trigger }
func (p *Requirement) MinTime() float64  { return p.minT }
func (p *Requirement) MaxTime() float64  { return p.maxT }
func (p *Requirement) IsSafety() bool    { return true }
func (p *Requirement) IsLiveness() bool  { return false }

func (p *Requirement) Accept(v Visitor) { v.VisitPattern(p) }
func (p *Requirement) Children() []Node { return []Node{p.trigger, p.behaviour} }
func (p *Requirement) String() string {
	return p.behaviour.String() + " requires " + p.trigger.String() + timeBoundString(p.minT, p.maxT)
}

func (p *Requirement) Clone() Pattern {
	return &Requirement{trigger: p.trigger.Clone(), behaviour: p.behaviour.Clone(), minT: p.minT, maxT: p.maxT}
}

func (p *Requirement) Equal(other Pattern) bool {
	o, ok := other.(*Requirement)
	return ok && timeEqual(p.minT, o.minT) && timeEqual(p.maxT, o.maxT) &&
		p.trigger.Equal(o.trigger) && p.behaviour.Equal(o.behaviour)
}

// Prevention asserts that whenever Trigger occurs, Behaviour does not
// follow within the time bound. Safety: it forbids a consequence.
type Prevention struct {
	trigger, behaviour Event
	minT, maxT         float64
}

func NewPrevention(trigger, behaviour Event, minTime, maxTime float64) (*Prevention, error) {
	if trigger == nil || behaviour == nil {
		return nil, hplerrors.Sanity("prevention pattern requires both a trigger and a behaviour event")
	}
	if err := checkTimeBound(minTime, maxTime); err != nil {
		return nil, err
	}
	return &Prevention{trigger: trigger, behaviour: behaviour, minT: minTime, maxT: maxTime}, nil
}

func (p *Prevention) Behaviour() Event  { return p.behaviour }
func (p *Prevention) Trigger() Event    { return p.trigger }
func (p *Prevention) MinTime() float64  { return p.minT }
func (p *Prevention) MaxTime() float64  { return p.maxT }
func (p *Prevention) IsSafety() bool    { return true }
func (p *Prevention) IsLiveness() bool  { return false }

func (p *Prevention) Accept(v Visitor) { v.VisitPattern(p) }
func (p *Prevention) Children() []Node { return []Node{p.trigger, p.behaviour} }
func (p *Prevention) String() string {
	return p.trigger.String() + " prevents " + p.behaviour.String() + timeBoundString(p.minT, p.maxT)
}

func (p *Prevention) Clone() Pattern {
	return &Prevention{trigger: p.trigger.Clone(), behaviour: p.behaviour.Clone(), minT: p.minT, maxT: p.maxT}
}

func (p *Prevention) Equal(other Pattern) bool {
	o, ok := other.(*Prevention)
	return ok && timeEqual(p.minT, o.minT) && timeEqual(p.maxT, o.maxT) &&
		p.trigger.Equal(o.trigger) && p.behaviour.Equal(o.behaviour)
}
