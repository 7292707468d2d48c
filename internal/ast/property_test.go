package ast

import (
	"math"
	"strings"
	"testing"

	"github.com/hpl-lang/hplspec/internal/schema"
)

func mustPredicate(t *testing.T, cond Expression) *ExpressionPredicate {
	t.Helper()
	p, err := NewPredicate(cond)
	if err != nil {
		t.Fatalf("NewPredicate: %v", err)
	}
	return p
}

// S1. Global Absence with field predicate.
func TestScenarioGlobalAbsenceFieldPredicate(t *testing.T) {
	this := NewThisMessage()
	field, err := NewFieldAccess(this, "x")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	zero := IntLiteral(0)
	gt, err := NewBinaryOperator(">", field, zero)
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	pred := mustPredicate(t, gt)

	behaviour := NewSimpleEvent("/odom", "", pred)
	pattern, err := NewAbsence(behaviour, 0, inf())
	if err != nil {
		t.Fatalf("NewAbsence: %v", err)
	}
	scope := NewGlobalScope()
	prop, err := NewProperty(scope, pattern, Metadata{})
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}

	if err := prop.SanityCheck(); err != nil {
		t.Fatalf("SanityCheck: %v", err)
	}

	cat := schema.MemoryCatalogue{"/odom": schema.Message(map[string]schema.Schema{"x": schema.Number()})}
	if err := prop.RefineTypes(cat, nil); err != nil {
		t.Fatalf("RefineTypes: %v", err)
	}
	if !field.Types().IsSingleton() || field.RosType == nil || !field.RosType.IsNumber() {
		t.Errorf("expected field 'x' to refine to Number, got %s", field.Types().Name())
	}

	got := prop.String()
	want := "globally: no /odom { (x > 0) }"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// Idempotent re-refinement.
	if err := prop.RefineTypes(cat, nil); err != nil {
		t.Fatalf("second RefineTypes: %v", err)
	}
}

// S2. Response with cross-event reference.
func TestScenarioResponseCrossEventReference(t *testing.T) {
	triggerEvent := NewSimpleEvent("/a", "m", &VacuousTruth{})

	// The predicate must still carry at least one reference rooted at its
	// own message (P2), alongside the cross-event reference to "m".
	this := NewThisMessage()
	xField, err := NewFieldAccess(this, "x")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	ownRef, err := NewBinaryOperator(">", xField, IntLiteral(0))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	varRef := NewVarReference("@m")
	fa, err := NewFieldAccess(varRef, "k")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	one := IntLiteral(1)
	crossRef, err := NewBinaryOperator("=", fa, one)
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	cond, err := NewBinaryOperator("and", ownRef, crossRef)
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	pred := mustPredicate(t, cond)
	behaviourEvent := NewSimpleEvent("/b", "", pred)

	pattern, err := NewResponse(triggerEvent, behaviourEvent, 0, inf())
	if err != nil {
		t.Fatalf("NewResponse: %v", err)
	}
	prop, err := NewProperty(NewGlobalScope(), pattern, Metadata{})
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}

	if err := prop.SanityCheck(); err != nil {
		t.Fatalf("SanityCheck: %v", err)
	}

	cat := schema.MemoryCatalogue{
		"/a": schema.Message(map[string]schema.Schema{"k": schema.Number()}),
		"/b": schema.Message(map[string]schema.Schema{"x": schema.Number()}),
	}
	aliases := schema.Aliases{"m": cat["/a"]}
	if err := prop.RefineTypes(cat, aliases); err != nil {
		t.Fatalf("RefineTypes: %v", err)
	}
	if fa.RosType == nil || !fa.RosType.IsNumber() {
		t.Errorf("expected '@m.k' to refine to Number")
	}
}

// S3. Forward-reference error.
func TestScenarioForwardReferenceError(t *testing.T) {
	// P2 requires at least one reference rooted at the event's own
	// message, alongside the forward reference to the not-yet-available
	// alias "t".
	this := NewThisMessage()
	xField, err := NewFieldAccess(this, "x")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	ownRef, err := NewBinaryOperator(">", xField, IntLiteral(0))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	varRef := NewVarReference("@t")
	fa, err := NewFieldAccess(varRef, "k")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	one := IntLiteral(1)
	forwardRef, err := NewBinaryOperator("=", fa, one)
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	cond, err := NewBinaryOperator("and", ownRef, forwardRef)
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	behaviourPred := mustPredicate(t, cond)
	behaviourEvent := NewSimpleEvent("/a", "", behaviourPred)
	triggerEvent := NewSimpleEvent("/t", "t", &VacuousTruth{})

	pattern, err := NewRequirement(triggerEvent, behaviourEvent, 0, inf())
	if err != nil {
		t.Fatalf("NewRequirement: %v", err)
	}
	prop, err := NewProperty(NewGlobalScope(), pattern, Metadata{})
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}

	err = prop.SanityCheck()
	if err == nil {
		t.Fatalf("expected a sanity error")
	}
	if !strings.Contains(err.Error(), "reference to undefined event: 't'") {
		t.Errorf("unexpected error: %v", err)
	}
}

// S4. Duplicate topic in disjunction.
func TestScenarioDuplicateTopicInDisjunction(t *testing.T) {
	a1 := NewSimpleEvent("/a", "", &VacuousTruth{})
	b := NewSimpleEvent("/b", "", &VacuousTruth{})
	a2 := NewSimpleEvent("/a", "", &VacuousTruth{})

	inner, err := NewEventDisjunction([]Event{b, a2})
	if err != nil {
		t.Fatalf("unexpected error building inner disjunction: %v", err)
	}
	_, err = NewEventDisjunction([]Event{a1, inner})
	if err == nil {
		t.Fatalf("expected a duplicate-topic sanity error")
	}
	if !strings.Contains(err.Error(), "topic '/a' appears multiple times in an event disjunction") {
		t.Errorf("unexpected error: %v", err)
	}
}

// S5. Quantifier variable self-reference in domain.
func TestScenarioQuantifierSelfReferenceInDomain(t *testing.T) {
	i := NewVarReference("@i")
	arr, err := NewFieldAccess(i, "arr")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	body, err := NewBinaryOperator(">", NewVarReference("@i"), IntLiteral(0))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	_, err = NewQuantifier(true, "i", arr, body)
	if err == nil {
		t.Fatalf("expected a self-reference sanity error")
	}
	if !strings.Contains(err.Error(), "cannot reference quantified variable 'i' in the domain of") {
		t.Errorf("unexpected error: %v", err)
	}
}

// S6. Type narrowing via equality.
func TestScenarioTypeNarrowingViaEquality(t *testing.T) {
	x := NewVarReference("@x")
	if x.Types().Name() != "boolean or number or string or message" {
		t.Fatalf("expected @x to start as Item, got %s", x.Types().Name())
	}

	eq, err := NewBinaryOperator("=", x, IntLiteral(5))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	if !x.Types().IsSingleton() || x.Types().Name() != "number" {
		t.Errorf("expected @x to narrow to Number, got %s", x.Types().Name())
	}

	got := "{ " + eq.String() + " }"
	want := "{ (@x = 5) }"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func inf() float64 {
	return math.Inf(1)
}
