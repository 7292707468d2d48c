package main

import (
	"math"

	"github.com/hpl-lang/hplspec/internal/ast"
)

var infinity = math.Inf(1)

// demoSpecification builds a small Specification by hand, illustrating each
// pattern kind, since this tree has no parser: an HPL source file is not
// in scope, only the in-memory AST and its static analyses. It exercises
// three of the five pattern kinds (Absence, Response and Prevention)
// against the demo schema catalogue (see demoCatalogue in main.go) so
// "check" has something concrete to validate.
func demoSpecification() (*ast.Specification, error) {
	var properties []*ast.Property

	// "no /odom ever reports a negative x" (global Absence).
	odomX, err := ast.NewFieldAccess(ast.NewThisMessage(), "x")
	if err != nil {
		return nil, err
	}
	negative, err := ast.NewBinaryOperator("<", odomX, ast.IntLiteral(0))
	if err != nil {
		return nil, err
	}
	absencePred, err := ast.NewPredicate(negative)
	if err != nil {
		return nil, err
	}
	absence, err := ast.NewAbsence(ast.NewSimpleEvent("/odom", "", absencePred), 0, infinity)
	if err != nil {
		return nil, err
	}
	absenceProp, err := ast.NewProperty(ast.NewGlobalScope(), absence, ast.Metadata{
		Name: "no-negative-odometry",
	})
	if err != nil {
		return nil, err
	}
	properties = append(properties, absenceProp)

	// "every /cmd_vel is eventually followed by an /odom update" (Response).
	trigger := ast.NewSimpleEvent("/cmd_vel", "c", &ast.VacuousTruth{})
	behaviour := ast.NewSimpleEvent("/odom", "", &ast.VacuousTruth{})
	response, err := ast.NewResponse(trigger, behaviour, 0, 1.0)
	if err != nil {
		return nil, err
	}
	responseProp, err := ast.NewProperty(ast.NewGlobalScope(), response, ast.Metadata{
		Name: "odom-follows-cmd-vel",
	})
	if err != nil {
		return nil, err
	}
	properties = append(properties, responseProp)

	// "/estop never fires within 0.5s after a /bumper hit" (Prevention,
	// scoped to the window after the robot starts moving).
	startEvent := ast.NewSimpleEvent("/cmd_vel", "", &ast.VacuousTruth{})
	scope, err := ast.NewAfterScope(startEvent)
	if err != nil {
		return nil, err
	}
	bumper := ast.NewSimpleEvent("/bumper", "", &ast.VacuousTruth{})
	estop := ast.NewSimpleEvent("/estop", "", &ast.VacuousTruth{})
	prevention, err := ast.NewPrevention(bumper, estop, 0, 0.5)
	if err != nil {
		return nil, err
	}
	preventionProp, err := ast.NewProperty(scope, prevention, ast.Metadata{
		Name: "no-estop-after-bumper",
	})
	if err != nil {
		return nil, err
	}
	properties = append(properties, preventionProp)

	return ast.NewSpecification(properties), nil
}
