package ast

import (
	"testing"

	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// Every constructed expression carries a non-empty type set (§4.1): a
// narrowing Cast that would empty it out is rejected at construction, so
// any node that exists at all must still have at least one possible type.
func TestExpressionTypesNeverEmpty(t *testing.T) {
	this := NewThisMessage()
	field, err := NewFieldAccess(this, "x")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	gt, err := NewBinaryOperator(">", field, IntLiteral(0))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	for _, n := range []Expression{this, field, gt, IntLiteral(0), NewVarReference("@x")} {
		if n.Types() == 0 {
			t.Errorf("%T has an empty type set", n)
		}
	}
}

// Clone() must produce a value equal to the original, and must not share
// mutable state with it: narrowing a field access reached through the
// clone must not narrow the original's matching node.
func TestCloneEqualAndIndependent(t *testing.T) {
	// `.x = .y` leaves both fields at boolean-or-number-or-string, so the
	// cast to Number below actually narrows something.
	field, err := NewFieldAccess(NewThisMessage(), "x")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	other, err := NewFieldAccess(NewThisMessage(), "y")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	eq, err := NewBinaryOperator("=", field, other)
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	pred := mustPredicate(t, eq)
	event := NewSimpleEvent("/odom", "", pred)

	clone := event.Clone()
	if !event.Equal(clone) {
		t.Fatalf("clone is not Equal to original")
	}

	cloneEvent, ok := clone.(*SimpleEvent)
	if !ok {
		t.Fatalf("clone is not a *SimpleEvent")
	}
	cloneCond := cloneEvent.Predicate.(*ExpressionPredicate).Condition.(*BinaryOperator)
	cloneField := cloneCond.Left.(*FieldAccess)

	if err := cloneField.cast(typesystem.Number); err != nil {
		t.Fatalf("cast on clone: %v", err)
	}
	if field.Types() == typesystem.Number {
		t.Errorf("narrowing the clone's field also narrowed the original's")
	}
	if cloneField.Types() != typesystem.Number {
		t.Errorf("narrowing the clone's field did not take effect on the clone")
	}
}

// Iterate yields every node in the subtree exactly once, in pre-order,
// starting with the root itself.
func TestIteratePreOrderCompleteness(t *testing.T) {
	this := NewThisMessage()
	field, err := NewFieldAccess(this, "x")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	gt, err := NewBinaryOperator(">", field, IntLiteral(0))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	nodes := Iterate(gt)
	if len(nodes) == 0 {
		t.Fatalf("Iterate returned no nodes")
	}
	if nodes[0] != Node(gt) {
		t.Errorf("first yielded node is not the root")
	}

	seen := map[Node]int{}
	for _, n := range nodes {
		seen[n]++
	}
	for n, count := range seen {
		if count != 1 {
			t.Errorf("node %T visited %d times, want 1", n, count)
		}
	}
	for _, want := range []Node{gt, field, this, gt.Right} {
		if _, ok := seen[want]; !ok {
			t.Errorf("Iterate missed node %T", want)
		}
	}
	// Pre-order: the root precedes both of its children.
	index := func(n Node) int {
		for i, m := range nodes {
			if m == n {
				return i
			}
		}
		return -1
	}
	if index(gt) > index(field) || index(gt) > index(gt.Right) {
		t.Errorf("root did not precede its children in pre-order")
	}
}

// Commutative binary operators compare equal regardless of operand order.
func TestBinaryOperatorCommutativeEquality(t *testing.T) {
	a, err := NewBinaryOperator("=", IntLiteral(1), IntLiteral(2))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	b, err := NewBinaryOperator("=", IntLiteral(2), IntLiteral(1))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("commutative operator '=' should compare equal with swapped operands")
	}

	c, err := NewBinaryOperator("-", IntLiteral(1), IntLiteral(2))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	d, err := NewBinaryOperator("-", IntLiteral(2), IntLiteral(1))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}
	if c.Equal(d) {
		t.Errorf("non-commutative operator '-' should not compare equal with swapped operands")
	}
}

// An EventDisjunction is an unordered set of branches: building it with
// branches in either order yields equal disjunctions.
func TestEventDisjunctionCommutativeEquality(t *testing.T) {
	x := NewSimpleEvent("/x", "", &VacuousTruth{})
	y := NewSimpleEvent("/y", "", &VacuousTruth{})

	xy, err := NewEventDisjunction([]Event{x, y})
	if err != nil {
		t.Fatalf("NewEventDisjunction: %v", err)
	}
	yx, err := NewEventDisjunction([]Event{
		NewSimpleEvent("/y", "", &VacuousTruth{}),
		NewSimpleEvent("/x", "", &VacuousTruth{}),
	})
	if err != nil {
		t.Fatalf("NewEventDisjunction: %v", err)
	}
	if !xy.Equal(yx) {
		t.Errorf("disjunctions with the same branches in different order should be equal")
	}
}

// A predicate whose condition references no field of its own message
// fails construction with a sanity error (P2, invariant I2).
func TestPredicateWithNoOwnFieldReferenceFails(t *testing.T) {
	varRef := NewVarReference("@m")
	fa, err := NewFieldAccess(varRef, "k")
	if err != nil {
		t.Fatalf("NewFieldAccess: %v", err)
	}
	eq, err := NewBinaryOperator("=", fa, IntLiteral(1))
	if err != nil {
		t.Fatalf("NewBinaryOperator: %v", err)
	}

	_, err = NewPredicate(eq)
	if err == nil {
		t.Fatalf("expected a sanity error for a predicate with no own-field reference")
	}
	if err.Error() != "there are no references to any fields of this message" {
		t.Errorf("unexpected error: %v", err)
	}
}
