// Package hplerrors defines the two disjoint error families raised while
// building and analyzing an HPL abstract syntax tree: sanity errors, for
// structural and alias-scoping violations, and type errors, for anything
// the bitmask type lattice or the schema refiner rejects.
//
// Both families are fatal at the call site that constructs the offending
// node or runs the analysis; there is no recovery path.
package hplerrors

import "fmt"

// SanityError reports a structural or alias-scoping violation: a forward
// reference, a duplicate alias or topic, or quantifier-variable misuse.
type SanityError struct {
	Msg string
}

func (e *SanityError) Error() string { return e.Msg }

func Sanity(format string, args ...any) *SanityError {
	return &SanityError{Msg: fmt.Sprintf(format, args...)}
}

// UndefinedReference reports a variable reference to an alias that is not
// in scope at its position in the property (invariant I8).
func UndefinedReference(alias string) *SanityError {
	return Sanity("reference to undefined event: '%s'", alias)
}

// DuplicateAlias reports an alias defined twice within the same property.
func DuplicateAlias(alias string) *SanityError {
	return Sanity("duplicate alias: '%s'", alias)
}

// DuplicateTopic reports a topic that occurs twice in an event disjunction
// (invariant I3).
func DuplicateTopic(topic string) *SanityError {
	return Sanity("topic '%s' appears multiple times in an event disjunction", topic)
}

// SelfReferentialDomain reports a quantifier whose domain expression
// mentions the variable it is about to bind (invariant I5).
func SelfReferentialDomain(variable string, quantifier fmt.Stringer) *SanityError {
	return Sanity("cannot reference quantified variable '%s' in the domain of:\n%s", variable, quantifier)
}

// ShadowedVariable reports a quantifier variable whose references in the
// body were already bound by another quantifier.
func ShadowedVariable(variable string, quantifier fmt.Stringer) *SanityError {
	return Sanity("multiple definitions of variable '%s' in:\n%s", variable, quantifier)
}

// UnusedVariable reports a quantifier variable that is never used in its
// body (invariant I4).
func UnusedVariable(variable string, quantifier fmt.Stringer) *SanityError {
	return Sanity("quantified variable '%s' is never used in:\n%s", variable, quantifier)
}

// NoOwnFieldReference reports a predicate with no direct field reference
// rooted at the implicit current message (invariant I2, requirement P2).
func NoOwnFieldReference() *SanityError {
	return Sanity("there are no references to any fields of this message")
}

// TypeError reports a failure of the bitmask type lattice or of schema
// refinement: an empty cast, an unknown topic or field, an out-of-range
// index, or an overload resolution failure.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

func Type(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// InExpression wraps a lower-level type error with the stringification of
// the expression in which it occurred.
func InExpression(expr fmt.Stringer, cause error) *TypeError {
	return Type("type error in expression '%s':\n%s", expr, cause)
}

// UndefinedTopic reports a schema lookup miss during refinement (§4.7).
func UndefinedTopic(topic string) *TypeError {
	return Type("topic '%s' is not declared in the schema catalogue", topic)
}

// AlreadyDefined reports an event whose message schema type was already
// resolved to something else during a previous refinement pass.
func AlreadyDefined(topic, have, want string) *TypeError {
	return Type("topic '%s' is already defined as (%s), but found (%s)", topic, have, want)
}

// UndefinedField reports a field access or constant name that does not
// exist on the resolved message schema.
func UndefinedField(schemaType, field string, accessor fmt.Stringer) *TypeError {
	return Type("field '%s' is not a member of (%s): %s", field, schemaType, accessor)
}

// NotAMessage reports a field access whose base did not refine to a
// message schema.
func NotAMessage(schemaType string, accessor fmt.Stringer) *TypeError {
	return Type("cannot access a field of (%s), expected a message: %s", schemaType, accessor)
}

// NotAnArray reports an array access whose base did not refine to an
// array schema.
func NotAnArray(schemaType string, accessor fmt.Stringer) *TypeError {
	return Type("cannot index into (%s), expected an array: %s", schemaType, accessor)
}

// IndexOutOfRange reports a literal array index outside the declared
// bounds of a fixed-length array schema.
func IndexOutOfRange(schemaType string, index int64, accessor fmt.Stringer) *TypeError {
	return Type("index %d is out of range for (%s): %s", index, schemaType, accessor)
}

// UndefinedAlias reports a variable reference with no corresponding entry
// in the alias-to-schema map supplied to refinement.
func UndefinedAlias(alias string) *TypeError {
	return Type("undefined message alias: '%s'", alias)
}

// UndefinedFunction reports a call to a name outside the fixed overload
// table (§4.2).
func UndefinedFunction(name string) *TypeError {
	return Type("undefined function '%s'", name)
}

// NoMatchingOverload reports a function call whose argument types match no
// declared signature.
func NoMatchingOverload(name, signatures, args string) *TypeError {
	return Type("function '%s' expects %s, but got %s", name, signatures, args)
}

// BadLiteral reports a literal token whose value does not name one of the
// primitive literal types (integer, float, boolean, string).
func BadLiteral(value any) *TypeError {
	return Type("not a literal value: %#v", value)
}
