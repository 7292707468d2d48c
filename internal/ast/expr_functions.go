package ast

import (
	"strings"

	"github.com/hpl-lang/hplspec/internal/hplerrors"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

// funcOverload is one accepted call shape for a builtin function: either a
// fixed parameter list, or a single variadic parameter type requiring at
// least two arguments.
type funcOverload struct {
	params   []typesystem.Type
	variadic typesystem.Type // zero value means this overload is not variadic
	ret      typesystem.Type
}

func (o funcOverload) matches(args []Expression) bool {
	if o.variadic != 0 {
		if len(args) < 2 {
			return false
		}
		for _, a := range args {
			if !a.Types().CanBe(o.variadic) {
				return false
			}
		}
		return true
	}
	if len(args) != len(o.params) {
		return false
	}
	for i, p := range o.params {
		if !args[i].Types().CanBe(p) {
			return false
		}
	}
	return true
}

func (o funcOverload) String() string {
	if o.variadic != 0 {
		return "(" + o.variadic.Name() + ", ...)"
	}
	names := make([]string, len(o.params))
	for i, p := range o.params {
		names[i] = p.Name()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func unary(t typesystem.Type) []funcOverload {
	return []funcOverload{{params: []typesystem.Type{t}, ret: typesystem.Number}}
}

// point builds the single overload shared by x, y and z: a message with
// named fields, taken positionally.
func point() []funcOverload {
	return []funcOverload{
		{params: []typesystem.Type{typesystem.Message}, ret: typesystem.Number},
	}
}

// orientation builds the two overloads shared by roll, pitch and yaw:
// either a message carrying a quaternion, or the four quaternion
// components given directly as numbers.
func orientation() []funcOverload {
	return []funcOverload{
		{params: []typesystem.Type{typesystem.Message}, ret: typesystem.Number},
		{
			params: []typesystem.Type{typesystem.Number, typesystem.Number, typesystem.Number, typesystem.Number},
			ret:    typesystem.Number,
		},
	}
}

// reduction builds the two overloads shared by max, min and gcd: a single
// composite argument (array, range or set), or two or more numbers given
// directly.
func reduction() []funcOverload {
	return []funcOverload{
		{params: []typesystem.Type{typesystem.Composite}, ret: typesystem.Number},
		{variadic: typesystem.Number, ret: typesystem.Number},
	}
}

// builtins is the fixed function table (§4.2): every name HPL accepts in a
// function call, with every argument shape it accepts for that name.
var builtins = map[string][]funcOverload{
	"abs":   unary(typesystem.Number),
	"sqrt":  unary(typesystem.Number),
	"ceil":  unary(typesystem.Number),
	"floor": unary(typesystem.Number),
	"sin":   unary(typesystem.Number),
	"cos":   unary(typesystem.Number),
	"tan":   unary(typesystem.Number),
	"asin":  unary(typesystem.Number),
	"acos":  unary(typesystem.Number),
	"atan":  unary(typesystem.Number),
	"deg":   unary(typesystem.Number),
	"rad":   unary(typesystem.Number),
	"log":    {{params: []typesystem.Type{typesystem.Number, typesystem.Number}, ret: typesystem.Number}},
	"atan2":  {{params: []typesystem.Type{typesystem.Number, typesystem.Number}, ret: typesystem.Number}},
	"bool":   {{params: []typesystem.Type{typesystem.Primitive}, ret: typesystem.Boolean}},
	"int":    {{params: []typesystem.Type{typesystem.Primitive}, ret: typesystem.Number}},
	"float":  {{params: []typesystem.Type{typesystem.Primitive}, ret: typesystem.Number}},
	"str":    {{params: []typesystem.Type{typesystem.Primitive}, ret: typesystem.String}},
	"len":    {{params: []typesystem.Type{typesystem.Composite}, ret: typesystem.Number}},
	"sum":    {{params: []typesystem.Type{typesystem.Composite}, ret: typesystem.Number}},
	"prod":   {{params: []typesystem.Type{typesystem.Composite}, ret: typesystem.Number}},
	"x":      point(),
	"y":      point(),
	"z":      point(),
	"roll":   orientation(),
	"pitch":  orientation(),
	"yaw":    orientation(),
	"max":    reduction(),
	"min":    reduction(),
	"gcd":    reduction(),
}

// FunctionCall invokes one of the fixed builtins (§4.2) with a list of
// arguments. Overload resolution tries each signature in declaration
// order; the call's type is that overload's return type.
type FunctionCall struct {
	Function string
	Args     []Expression
	types    typesystem.Type
}

func NewFunctionCall(name string, args []Expression) (*FunctionCall, error) {
	overloads, ok := builtins[name]
	if !ok {
		return nil, hplerrors.UndefinedFunction(name)
	}
	for _, o := range overloads {
		if !o.matches(args) {
			continue
		}
		call := &FunctionCall{Function: name, Args: args, types: o.ret}
		if o.variadic != 0 {
			for _, a := range args {
				if err := typeCheck(call, a, o.variadic); err != nil {
					return nil, err
				}
			}
		} else {
			for i, p := range o.params {
				if err := typeCheck(call, args[i], p); err != nil {
					return nil, err
				}
			}
		}
		return call, nil
	}
	return nil, hplerrors.NoMatchingOverload(name, overloadSignatures(overloads), argTypes(args))
}

func overloadSignatures(overloads []funcOverload) string {
	parts := make([]string, len(overloads))
	for i, o := range overloads {
		parts[i] = o.String()
	}
	return strings.Join(parts, " or ")
}

func argTypes(args []Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Types().Name()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (c *FunctionCall) Accept(v Visitor)       { v.VisitFunctionCall(c) }
func (c *FunctionCall) Types() typesystem.Type { return c.types }

func (c *FunctionCall) Children() []Node {
	out := make([]Node, len(c.Args))
	for i, a := range c.Args {
		out[i] = a
	}
	return out
}

func (c *FunctionCall) IsFullyTyped() bool {
	for _, a := range c.Args {
		if !a.IsFullyTyped() {
			return false
		}
	}
	return true
}

func (c *FunctionCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Function + "(" + strings.Join(parts, ", ") + ")"
}

func (c *FunctionCall) collectExternalRefs(refs map[string]struct{}) {
	for _, a := range c.Args {
		a.collectExternalRefs(refs)
	}
}

func (c *FunctionCall) cast(t typesystem.Type) error {
	r, err := c.types.Cast(t)
	if err != nil {
		return err
	}
	c.types = r
	return nil
}

func (c *FunctionCall) Clone() Expression {
	args := make([]Expression, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Clone()
	}
	return &FunctionCall{Function: c.Function, Args: args, types: c.types}
}

func (c *FunctionCall) Equal(other Expression) bool {
	o, ok := other.(*FunctionCall)
	if !ok || c.Function != o.Function || len(c.Args) != len(o.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}
