package ast

import (
	"testing"

	"github.com/hpl-lang/hplspec/internal/schema"
	"github.com/hpl-lang/hplspec/internal/typesystem"
)

func TestFunctionCallOverloadResolution(t *testing.T) {
	arr, err := NewSetLiteral([]Expression{IntLiteral(1), IntLiteral(2), IntLiteral(3)})
	if err != nil {
		t.Fatalf("NewSetLiteral: %v", err)
	}

	tests := []struct {
		name     string
		fn       string
		args     []Expression
		wantType typesystem.Type
		wantErr  bool
	}{
		{
			name:     "abs of a number",
			fn:       "abs",
			args:     []Expression{IntLiteral(-1)},
			wantType: typesystem.Number,
		},
		{
			name:     "x takes a single message",
			fn:       "x",
			args:     []Expression{NewThisMessage()},
			wantType: typesystem.Number,
		},
		{
			name:    "x rejects a set",
			fn:      "x",
			args:    []Expression{arr},
			wantErr: true,
		},
		{
			name:     "log takes two numbers",
			fn:       "log",
			args:     []Expression{IntLiteral(2), IntLiteral(8)},
			wantType: typesystem.Number,
		},
		{
			name:    "log rejects a single number",
			fn:      "log",
			args:    []Expression{IntLiteral(8)},
			wantErr: true,
		},
		{
			name:     "roll takes a single message",
			fn:       "roll",
			args:     []Expression{NewThisMessage()},
			wantType: typesystem.Number,
		},
		{
			name: "roll takes four quaternion components",
			fn:   "roll",
			args: []Expression{
				IntLiteral(0), IntLiteral(0), IntLiteral(0), IntLiteral(1),
			},
			wantType: typesystem.Number,
		},
		{
			name:    "roll rejects three numbers",
			fn:      "roll",
			args:    []Expression{IntLiteral(0), IntLiteral(0), IntLiteral(0)},
			wantErr: true,
		},
		{
			name:     "len takes a set",
			fn:       "len",
			args:     []Expression{arr},
			wantType: typesystem.Number,
		},
		{
			name:     "max takes a composite argument",
			fn:       "max",
			args:     []Expression{arr},
			wantType: typesystem.Number,
		},
		{
			name:     "max takes two or more numbers",
			fn:       "max",
			args:     []Expression{IntLiteral(1), IntLiteral(2)},
			wantType: typesystem.Number,
		},
		{
			name:    "max rejects a single number",
			fn:      "max",
			args:    []Expression{IntLiteral(1)},
			wantErr: true,
		},
		{
			name:    "unknown function",
			fn:      "frobnicate",
			args:    []Expression{IntLiteral(1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := NewFunctionCall(tt.fn, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewFunctionCall(%q, ...) succeeded, want error", tt.fn)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFunctionCall(%q, ...): %v", tt.fn, err)
			}
			if call.Types() != tt.wantType {
				t.Errorf("Types() = %s, want %s", call.Types().Name(), tt.wantType.Name())
			}
		})
	}
}

// A matched overload narrows every argument to its parameter type, so the
// bidirectional propagation the rest of the type lattice relies on reaches
// into function calls too.
func TestFunctionCallNarrowsArguments(t *testing.T) {
	x := NewVarReference("@x")
	if x.Types().Name() != "boolean or number or string or message" {
		t.Fatalf("expected @x to start as Item, got %s", x.Types().Name())
	}
	if _, err := NewFunctionCall("abs", []Expression{x}); err != nil {
		t.Fatalf("NewFunctionCall: %v", err)
	}
	if !x.Types().IsSingleton() || x.Types().Name() != "number" {
		t.Errorf("expected @x to narrow to Number after abs(@x), got %s", x.Types().Name())
	}
}

func TestFunctionCallVariadicNarrowsEveryArgument(t *testing.T) {
	a := NewVarReference("@a")
	b := NewVarReference("@b")
	if _, err := NewFunctionCall("max", []Expression{a, b}); err != nil {
		t.Fatalf("NewFunctionCall: %v", err)
	}
	if a.Types().Name() != "number" || b.Types().Name() != "number" {
		t.Errorf("expected both arguments of max(@a, @b) to narrow to Number, got %s, %s",
			a.Types().Name(), b.Types().Name())
	}
}

// Refinement looks up the topic for every simple event, even one with no
// predicate clause at all; an event on an undeclared topic is a type error
// regardless (§4.7 step 1).
func TestRefineTypesUnknownTopic(t *testing.T) {
	behaviour := NewSimpleEvent("/nonexistent", "", nil)
	pattern, err := NewExistence(behaviour, 0, inf())
	if err != nil {
		t.Fatalf("NewExistence: %v", err)
	}
	prop, err := NewProperty(NewGlobalScope(), pattern, Metadata{})
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}

	cat := schema.MemoryCatalogue{"/other": schema.Message(map[string]schema.Schema{"k": schema.Number()})}
	err = prop.RefineTypes(cat, nil)
	if err == nil {
		t.Fatalf("expected an unknown-topic type error")
	}
}
