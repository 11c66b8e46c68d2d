// Package circuits is the boolean circuit domain, as used for modular
// concept discovery. The base registry holds only nand, which is
// functionally complete: every other gate arises by invention.
package circuits

import (
	"fmt"

	"github.com/lucasem/program-induction/lambda"
	"github.com/lucasem/program-induction/typesystem"
)

var tBool = typesystem.Con{Name: "bool"}

// DSL returns the base circuit language:
//
//	"nand": bool -> bool -> bool
func DSL() *lambda.Language {
	return lambda.Uniform([]lambda.PrimitiveDef{
		{Name: "nand", Type: typesystem.Arrows(tBool, tBool, tBool)},
	}, nil)
}

// Evaluator evaluates circuit expressions over bool.
type Evaluator struct{}

func (Evaluator) Evaluate(name string, args []bool) (bool, error) {
	if name != "nand" {
		return false, fmt.Errorf("circuits: unknown primitive %q", name)
	}
	return !(args[0] && args[1]), nil
}

// Lift always fails: the circuit universe has no function values.
func (Evaluator) Lift(lambda.LiftedFunction[bool]) (bool, bool) {
	return false, false
}

// TaskByExample builds an all-or-nothing circuit task from observed truth
// table rows.
func TaskByExample(examples []lambda.Example[bool], request typesystem.Type) lambda.Task {
	return lambda.TaskByExample[bool](
		Evaluator{},
		func(a, b bool) bool { return a == b },
		examples,
		request,
	)
}
