package lambda

import (
	"fmt"
	"math"

	"github.com/lucasem/program-induction/typesystem"
)

// Evaluator computes primitive applications over a domain-specific value
// universe V. Each domain defines one closed value type: circuits evaluate
// over bool, string editing over a small tagged union, and so on.
type Evaluator[V any] interface {
	// Evaluate applies the named primitive to a full sequence of
	// already-evaluated argument values and produces a result in the same
	// universe.
	Evaluate(name string, args []V) (V, error)
	// Lift converts a partially applied function into a value of the
	// universe, so that higher-order primitives such as a generic map can
	// invoke it against elements of a container value. ok is false when the
	// domain has no function values.
	Lift(f LiftedFunction[V]) (V, bool)
}

// LiftedFunction is a function value captured mid-evaluation, handed to a
// domain's Lift so the domain can call back into it.
type LiftedFunction[V any] struct {
	run *evalRun[V]
	fn  *value[V]
}

// Eval applies the lifted function to domain arguments.
func (f LiftedFunction[V]) Eval(args []V) (V, error) {
	v := *f.fn
	for _, a := range args {
		var err error
		v, err = f.run.apply(v, value[V]{kind: domainValue, domain: a})
		if err != nil {
			var zero V
			return zero, err
		}
	}
	return f.run.toDomain(v)
}

// Eval evaluates expr as a function of the given inputs using the domain
// evaluator: invented expressions are expanded, abstractions close over a
// value environment, and primitives are applied once all their curried
// arguments (per their registered type) have been collected.
func Eval[V any](l *Language, ev Evaluator[V], expr Expression, inputs []V) (V, error) {
	var zero V
	r := &evalRun[V]{l: l, ev: ev}
	v, err := r.eval(l.StripInvented(expr), nil)
	if err != nil {
		return zero, err
	}
	for _, inp := range inputs {
		v, err = r.apply(v, value[V]{kind: domainValue, domain: inp})
		if err != nil {
			return zero, err
		}
	}
	return r.toDomain(v)
}

type valueKind int

const (
	domainValue valueKind = iota
	closureValue
	primitiveValue
)

// value is the evaluator's internal representation: a domain value, a
// closure awaiting an argument, or a primitive with some arguments
// collected.
type value[V any] struct {
	kind   valueKind
	domain V

	// closure
	body Expression
	env  []value[V]

	// partially applied primitive
	name  string
	arity int
	args  []V
}

type evalRun[V any] struct {
	l  *Language
	ev Evaluator[V]
}

func (r *evalRun[V]) eval(expr Expression, env []value[V]) (value[V], error) {
	switch e := expr.(type) {
	case *Primitive:
		name, tp, _, ok := r.l.Primitive(e.Num)
		if !ok {
			return value[V]{}, NewBadExpressionError("primitive does not exist: %d", e.Num)
		}
		arity := 0
		if arrow, isArrow := tp.(typesystem.Arrow); isArrow {
			arity = len(arrow.Args())
		}
		if arity == 0 {
			out, err := r.ev.Evaluate(name, nil)
			if err != nil {
				return value[V]{}, err
			}
			return value[V]{kind: domainValue, domain: out}, nil
		}
		return value[V]{kind: primitiveValue, name: name, arity: arity}, nil

	case *Application:
		f, err := r.eval(e.Func, env)
		if err != nil {
			return value[V]{}, err
		}
		x, err := r.eval(e.Arg, env)
		if err != nil {
			return value[V]{}, err
		}
		return r.apply(f, x)

	case *Abstraction:
		return value[V]{kind: closureValue, body: e.Body, env: env}, nil

	case *Index:
		if e.Num >= len(env) {
			return value[V]{}, fmt.Errorf("unbound index $%d", e.Num)
		}
		return env[e.Num], nil

	case *Invented:
		return r.eval(r.l.StripInvented(e), env)

	default:
		return value[V]{}, NewBadExpressionError("unknown expression variant %T", expr)
	}
}

func (r *evalRun[V]) apply(f, x value[V]) (value[V], error) {
	switch f.kind {
	case closureValue:
		env := make([]value[V], 0, len(f.env)+1)
		env = append(env, x)
		env = append(env, f.env...)
		return r.eval(f.body, env)

	case primitiveValue:
		xd, err := r.toDomain(x)
		if err != nil {
			return value[V]{}, err
		}
		args := make([]V, len(f.args), len(f.args)+1)
		copy(args, f.args)
		args = append(args, xd)
		if len(args) < f.arity {
			return value[V]{kind: primitiveValue, name: f.name, arity: f.arity, args: args}, nil
		}
		out, err := r.ev.Evaluate(f.name, args)
		if err != nil {
			return value[V]{}, err
		}
		return value[V]{kind: domainValue, domain: out}, nil

	default:
		return value[V]{}, fmt.Errorf("cannot apply a non-function value")
	}
}

// toDomain unwraps a domain value, lifting function values through the
// domain when it supports them.
func (r *evalRun[V]) toDomain(v value[V]) (V, error) {
	if v.kind == domainValue {
		return v.domain, nil
	}
	if lifted, ok := r.ev.Lift(LiftedFunction[V]{run: r, fn: &v}); ok {
		return lifted, nil
	}
	var zero V
	return zero, fmt.Errorf("domain cannot represent function values")
}

// Example is one observed input/output pair over a domain universe.
type Example[V any] struct {
	Inputs []V
	Output V
}

// Task pairs a request type with an oracle scoring candidate expressions
// against observations. Larger is better; -Inf marks failure.
type Task struct {
	Oracle  func(l *Language, expr Expression) float64
	Request typesystem.Type
}

// TaskByExample builds an all-or-nothing task: the oracle returns 0 when the
// expression reproduces every example and -Inf otherwise.
func TaskByExample[V any](
	ev Evaluator[V],
	equal func(V, V) bool,
	examples []Example[V],
	request typesystem.Type,
) Task {
	return Task{
		Request: request,
		Oracle: func(l *Language, expr Expression) float64 {
			for _, ex := range examples {
				got, err := Eval(l, ev, expr, ex.Inputs)
				if err != nil || !equal(got, ex.Output) {
					return math.Inf(-1)
				}
			}
			return 0
		},
	}
}
