package typesystem

import (
	"strings"
)

// Type is the interface for all types in the system.
//
// A type is either a unification variable (Var), a constructed type (Con) —
// a base constant like `int` or an applied constructor like `list(int)` —
// or a single-argument function type (Arrow). N-ary functions are curried
// nests of Arrows.
type Type interface {
	String() string
	typeNode()
}

// Var is a unification variable. Fresh variables are allocated by a Context
// and named t0, t1, ... in allocation order.
type Var struct {
	Name string
}

// Con is a constructed type: a base constant (`int`, `bool`) when Args is
// empty, or an applied constructor (`list(int)`) otherwise.
type Con struct {
	Name string
	Args []Type
}

// Arrow is the type of a function taking exactly one argument.
type Arrow struct {
	Arg Type
	Ret Type
}

func (t Var) typeNode()   {}
func (t Con) typeNode()   {}
func (t Arrow) typeNode() {}

func (t Var) String() string { return t.Name }

func (t Con) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (t Arrow) String() string {
	arg := t.Arg.String()
	if _, ok := t.Arg.(Arrow); ok {
		arg = "(" + arg + ")"
	}
	return arg + " -> " + t.Ret.String()
}

// Arrows folds types into a curried function type, right-associatively.
// Arrows(a, b, c) is a -> (b -> c). It panics when given fewer than one type.
func Arrows(ts ...Type) Type {
	if len(ts) == 0 {
		panic("typesystem: Arrows requires at least one type")
	}
	t := ts[len(ts)-1]
	for i := len(ts) - 2; i >= 0; i-- {
		t = Arrow{Arg: ts[i], Ret: t}
	}
	return t
}

// Args returns the curried argument types of the arrow, left to right,
// through any nested arrows in return position.
func (t Arrow) Args() []Type {
	args := []Type{t.Arg}
	ret := t.Ret
	for {
		a, ok := ret.(Arrow)
		if !ok {
			return args
		}
		args = append(args, a.Arg)
		ret = a.Ret
	}
}

// Returns gives the final non-arrow return type through nested arrows.
func (t Arrow) Returns() Type {
	ret := t.Ret
	for {
		a, ok := ret.(Arrow)
		if !ok {
			return ret
		}
		ret = a.Ret
	}
}

// Equal reports whether two types are structurally identical. Variables are
// compared by name; no substitution is consulted.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Var:
		bv, ok := b.(Var)
		return ok && a.Name == bv.Name
	case Con:
		bc, ok := b.(Con)
		if !ok || a.Name != bc.Name || len(a.Args) != len(bc.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], bc.Args[i]) {
				return false
			}
		}
		return true
	case Arrow:
		ba, ok := b.(Arrow)
		return ok && Equal(a.Arg, ba.Arg) && Equal(a.Ret, ba.Ret)
	default:
		return false
	}
}

// occursIn reports whether the variable name appears anywhere in t.
// The caller is expected to have applied the current substitution to t.
func occursIn(name string, t Type) bool {
	switch t := t.(type) {
	case Var:
		return t.Name == name
	case Con:
		for _, a := range t.Args {
			if occursIn(name, a) {
				return true
			}
		}
		return false
	case Arrow:
		return occursIn(name, t.Arg) || occursIn(name, t.Ret)
	default:
		return false
	}
}
