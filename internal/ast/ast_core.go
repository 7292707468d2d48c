// Package ast is the abstract syntax tree for HPL, a property language
// describing temporal behavioural contracts over publish/subscribe message
// channels. Every node type here enforces its own invariants at
// construction time: a tree that exists at all is already internally
// consistent with respect to the checks a constructor can make locally.
// Two analyses that need the whole tree -- alias scoping and schema-backed
// type refinement -- live in property.go, run after construction.
package ast

// Node is the base interface implemented by every AST object: expressions,
// predicates, events, scopes, patterns, properties and the specification
// itself. Children returns immediate sub-nodes in the order used by
// stringification, for the benefit of a generic pre-order walk.
type Node interface {
	Accept(v Visitor)
	Children() []Node
}

// Iterate yields every node in the subtree rooted at n, in pre-order,
// including n itself. It never visits a node twice and always yields at
// least one node.
func Iterate(n Node) []Node {
	stack := []Node{n}
	var out []Node
	for len(stack) > 0 {
		last := len(stack) - 1
		node := stack[last]
		stack = stack[:last]
		out = append(out, node)
		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// Visitor is the interface exposed to backends (code generators,
// serializers, monitors). It provides one hook per AST variant; traversal
// order is the caller's choice, typically Iterate followed by a per-node
// Accept.
type Visitor interface {
	VisitSpecification(n *Specification)
	VisitProperty(n *Property)
	VisitScope(n Scope)
	VisitPattern(n Pattern)
	VisitEvent(n Event)
	VisitEventDisjunction(n *EventDisjunction)
	VisitSimpleEvent(n *SimpleEvent)
	VisitPredicate(n Predicate)
	VisitVacuousTruth(n *VacuousTruth)
	VisitContradiction(n *Contradiction)
	VisitExpression(n Expression)
	VisitUnaryOperator(n *UnaryOperator)
	VisitBinaryOperator(n *BinaryOperator)
	VisitFunctionCall(n *FunctionCall)
	VisitQuantifier(n *Quantifier)
	VisitFieldAccess(n *FieldAccess)
	VisitArrayAccess(n *ArrayAccess)
	VisitValue(n Value)
	VisitLiteral(n *Literal)
	VisitThisMessage(n *ThisMessage)
	VisitVarReference(n *VarReference)
	VisitSet(n *SetLiteral)
	VisitRange(n *RangeLiteral)
}

// BaseVisitor implements Visitor with no-op methods. Embed it to pick only
// the hooks a particular backend cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitSpecification(*Specification)         {}
func (BaseVisitor) VisitProperty(*Property)                   {}
func (BaseVisitor) VisitScope(Scope)                          {}
func (BaseVisitor) VisitPattern(Pattern)                      {}
func (BaseVisitor) VisitEvent(Event)                          {}
func (BaseVisitor) VisitEventDisjunction(*EventDisjunction)   {}
func (BaseVisitor) VisitSimpleEvent(*SimpleEvent)             {}
func (BaseVisitor) VisitPredicate(Predicate)                  {}
func (BaseVisitor) VisitVacuousTruth(*VacuousTruth)           {}
func (BaseVisitor) VisitContradiction(*Contradiction)         {}
func (BaseVisitor) VisitExpression(Expression)                {}
func (BaseVisitor) VisitUnaryOperator(*UnaryOperator)         {}
func (BaseVisitor) VisitBinaryOperator(*BinaryOperator)       {}
func (BaseVisitor) VisitFunctionCall(*FunctionCall)           {}
func (BaseVisitor) VisitQuantifier(*Quantifier)               {}
func (BaseVisitor) VisitFieldAccess(*FieldAccess)             {}
func (BaseVisitor) VisitArrayAccess(*ArrayAccess)             {}
func (BaseVisitor) VisitValue(Value)                          {}
func (BaseVisitor) VisitLiteral(*Literal)                     {}
func (BaseVisitor) VisitThisMessage(*ThisMessage)             {}
func (BaseVisitor) VisitVarReference(*VarReference)           {}
func (BaseVisitor) VisitSet(*SetLiteral)                      {}
func (BaseVisitor) VisitRange(*RangeLiteral)                  {}
