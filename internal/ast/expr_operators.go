package ast

import (
	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

type unarySignature struct {
	in, out typesystem.Type
}

var unaryOps = map[string]unarySignature{
	"-":   {typesystem.Number, typesystem.Number},
	"not": {typesystem.Boolean, typesystem.Boolean},
}

// UnaryOperator is a prefix operator applied to a single operand: `-x` or
// `not p`.
type UnaryOperator struct {
	Operator string
	Operand  Expression
	types    typesystem.Type
}

func NewUnaryOperator(op string, operand Expression) (*UnaryOperator, error) {
	sig, ok := unaryOps[op]
	if !ok {
		return nil, hplerrors.Type("unknown unary operator '%s'", op)
	}
	u := &UnaryOperator{Operator: op, Operand: operand, types: sig.out}
	if err := typeCheck(u, operand, sig.in); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *UnaryOperator) Accept(v Visitor)       { v.VisitUnaryOperator(u) }
func (u *UnaryOperator) Children() []Node       { return []Node{u.Operand} }
func (u *UnaryOperator) Types() typesystem.Type { return u.types }
func (u *UnaryOperator) IsFullyTyped() bool     { return u.Operand.IsFullyTyped() }

func (u *UnaryOperator) String() string {
	op := u.Operator
	if len(op) > 0 && isAlpha(op[len(op)-1]) {
		op += " "
	}
	return "(" + op + u.Operand.String() + ")"
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (u *UnaryOperator) collectExternalRefs(refs map[string]struct{}) {
	u.Operand.collectExternalRefs(refs)
}

func (u *UnaryOperator) cast(t typesystem.Type) error {
	r, err := u.types.Cast(t)
	if err != nil {
		return err
	}
	u.types = r
	return nil
}

func (u *UnaryOperator) Clone() Expression {
	return &UnaryOperator{Operator: u.Operator, Operand: u.Operand.Clone(), types: u.types}
}

func (u *UnaryOperator) Equal(other Expression) bool {
	o, ok := other.(*UnaryOperator)
	return ok && u.Operator == o.Operator && u.Operand.Equal(o.Operand)
}

type binarySignature struct {
	left, right, out typesystem.Type
	infix            bool
	commutative      bool
}

// binaryOps is the fixed operator table (§4.2). Equality and inequality
// accept any two Primitive operands of a common type; `in` takes a Primitive left operand
// against a Set or Range on the right.
var binaryOps = map[string]binarySignature{
	"+":       {typesystem.Number, typesystem.Number, typesystem.Number, true, true},
	"*":       {typesystem.Number, typesystem.Number, typesystem.Number, true, true},
	"-":       {typesystem.Number, typesystem.Number, typesystem.Number, true, false},
	"/":       {typesystem.Number, typesystem.Number, typesystem.Number, true, false},
	"**":      {typesystem.Number, typesystem.Number, typesystem.Number, true, false},
	"and":     {typesystem.Boolean, typesystem.Boolean, typesystem.Boolean, true, true},
	"or":      {typesystem.Boolean, typesystem.Boolean, typesystem.Boolean, true, true},
	"iff":     {typesystem.Boolean, typesystem.Boolean, typesystem.Boolean, true, true},
	"implies": {typesystem.Boolean, typesystem.Boolean, typesystem.Boolean, true, false},
	"=":       {typesystem.Primitive, typesystem.Primitive, typesystem.Boolean, true, true},
	"!=":      {typesystem.Primitive, typesystem.Primitive, typesystem.Boolean, true, true},
	"<":       {typesystem.Number, typesystem.Number, typesystem.Boolean, true, false},
	"<=":      {typesystem.Number, typesystem.Number, typesystem.Boolean, true, false},
	">":       {typesystem.Number, typesystem.Number, typesystem.Boolean, true, false},
	">=":      {typesystem.Number, typesystem.Number, typesystem.Boolean, true, false},
	"in":      {typesystem.Primitive, typesystem.Set | typesystem.Range, typesystem.Boolean, true, false},
}

// BinaryOperator is an infix operator applied to two operands. Equality
// treats commutative operators as unordered pairs (BinOp(op, a, b) ==
// BinOp(op, b, a)), per §8.
type BinaryOperator struct {
	Operator             string
	Left, Right           Expression
	Infix, Commutative    bool
	types                 typesystem.Type
}

func NewBinaryOperator(op string, left, right Expression) (*BinaryOperator, error) {
	sig, ok := binaryOps[op]
	if !ok {
		return nil, hplerrors.Type("unknown binary operator '%s'", op)
	}
	b := &BinaryOperator{
		Operator: op, Left: left, Right: right,
		Infix: sig.infix, Commutative: sig.commutative, types: sig.out,
	}
	if err := typeCheck(b, left, sig.left); err != nil {
		return nil, err
	}
	if err := typeCheck(b, right, sig.right); err != nil {
		return nil, err
	}
	// Equality and inequality compare operands of one common type, so each
	// operand is also narrowed to the other's type set.
	if op == "=" || op == "!=" {
		if err := typeCheck(b, left, right.Types()); err != nil {
			return nil, err
		}
		if err := typeCheck(b, right, left.Types()); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *BinaryOperator) Accept(v Visitor)       { v.VisitBinaryOperator(b) }
func (b *BinaryOperator) Children() []Node       { return []Node{b.Left, b.Right} }
func (b *BinaryOperator) Types() typesystem.Type { return b.types }
func (b *BinaryOperator) IsFullyTyped() bool {
	return b.Left.IsFullyTyped() && b.Right.IsFullyTyped()
}

func (b *BinaryOperator) String() string {
	l, r := b.Left.String(), b.Right.String()
	if b.Infix {
		return "(" + l + " " + b.Operator + " " + r + ")"
	}
	return b.Operator + "(" + l + ", " + r + ")"
}

func (b *BinaryOperator) collectExternalRefs(refs map[string]struct{}) {
	b.Left.collectExternalRefs(refs)
	b.Right.collectExternalRefs(refs)
}

func (b *BinaryOperator) cast(t typesystem.Type) error {
	r, err := b.types.Cast(t)
	if err != nil {
		return err
	}
	b.types = r
	return nil
}

func (b *BinaryOperator) Clone() Expression {
	return &BinaryOperator{
		Operator: b.Operator, Left: b.Left.Clone(), Right: b.Right.Clone(),
		Infix: b.Infix, Commutative: b.Commutative, types: b.types,
	}
}

func (b *BinaryOperator) Equal(other Expression) bool {
	o, ok := other.(*BinaryOperator)
	if !ok || b.Operator != o.Operator {
		return false
	}
	if b.Left.Equal(o.Left) && b.Right.Equal(o.Right) {
		return true
	}
	if b.Commutative {
		return b.Left.Equal(o.Right) && b.Right.Equal(o.Left)
	}
	return false
}
