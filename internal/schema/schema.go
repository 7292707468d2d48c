// Package schema defines the external message-schema interface consumed
// by HPL's type refinement pass (§4.7 and §6 of the specification), plus a
// couple of concrete catalogues that implement it: a plain in-memory
// builder for tests and examples, and a protobuf descriptor-backed
// catalogue for real deployments.
//
// The refiner never depends on how a Schema was produced -- only on this
// interface -- so neither the in-memory nor the protobuf adapter is
// imported by the ast package.
package schema

// Schema describes the structure of a message, one of its fields, or one
// of its array elements: whatever a FieldAccess or ArrayAccess needs to
// narrow its type and keep walking toward the leaf of an accessor chain.
type Schema interface {
	IsMessage() bool
	IsArray() bool
	IsNumber() bool
	IsBool() bool
	IsString() bool

	// Fields returns the field name to schema mapping. Only meaningful
	// when IsMessage is true.
	Fields() map[string]Schema

	// Constants returns named constant values declared on a message type
	// (e.g. enum-like ROS constants). Only meaningful when IsMessage.
	Constants() map[string]Constant

	// ElementSchema returns the schema of an array's elements. Only
	// meaningful when IsArray is true.
	ElementSchema() Schema

	// ContainsIndex reports whether a literal index is valid for this
	// array, when the array's length is statically known. ok is false
	// when the array is unbounded or its length is otherwise unknown, in
	// which case contains must be ignored.
	ContainsIndex(index int64) (contains bool, ok bool)
}

// Constant is a named value declared on a message schema (for example a
// ROS message constant), carrying its own resolved schema.
type Constant struct {
	Value  any
	Schema Schema
}

// Catalogue maps topic names to message schemas, the first external input
// to refinement (§4.7).
type Catalogue interface {
	Lookup(topic string) (Schema, bool)
}

// Aliases maps alias names to message schemas, the second (optional)
// external input to refinement: the schema of whatever message an event
// alias like `@m` was bound to.
type Aliases map[string]Schema
