package lambda

import (
	"github.com/lucasem/program-induction/typesystem"
)

// Infer type-checks expr against the Language and returns its type.
//
// Each call runs in a fresh typesystem context with an empty environment.
// Registered types are instantiated independently at every use site. The
// first failure aborts the whole call: the error is either a
// *BadExpressionError for an out-of-range registry reference or a forwarded
// *typesystem.UnificationError for a genuine type mismatch.
func (l *Language) Infer(expr Expression) (typesystem.Type, error) {
	ctx := typesystem.NewContext()
	// Indices that escape every enclosing Abstraction are free; each distinct
	// free index maps to one fresh variable, allocated on first use and
	// reused within this call only.
	free := make(map[int]typesystem.Type)
	return l.infer(expr, ctx, nil, free)
}

func (l *Language) infer(
	expr Expression,
	ctx *typesystem.Context,
	env []typesystem.Type,
	free map[int]typesystem.Type,
) (typesystem.Type, error) {
	switch e := expr.(type) {
	case *Primitive:
		if e.Num < 0 || e.Num >= len(l.Primitives) {
			return nil, NewBadExpressionError("primitive does not exist: %d", e.Num)
		}
		return ctx.Instantiate(l.Primitives[e.Num].Type), nil

	case *Invented:
		if e.Num < 0 || e.Num >= len(l.Invented) {
			return nil, NewBadExpressionError("invention does not exist: %d", e.Num)
		}
		return ctx.Instantiate(l.Invented[e.Num].Type), nil

	case *Application:
		// the argument is inferred in the same evolving context, so the
		// function's unifications persist
		fTp, err := l.infer(e.Func, ctx, env, free)
		if err != nil {
			return nil, err
		}
		xTp, err := l.infer(e.Arg, ctx, env, free)
		if err != nil {
			return nil, err
		}
		ret := ctx.Fresh()
		if err := ctx.Unify(fTp, typesystem.Arrow{Arg: xTp, Ret: ret}); err != nil {
			return nil, err
		}
		return ctx.Apply(ret), nil

	case *Abstraction:
		arg := ctx.Fresh()
		inner := make([]typesystem.Type, 0, len(env)+1)
		inner = append(inner, typesystem.Type(arg))
		inner = append(inner, env...)
		body, err := l.infer(e.Body, ctx, inner, free)
		if err != nil {
			return nil, err
		}
		return ctx.Apply(typesystem.Arrow{Arg: arg, Ret: body}), nil

	case *Index:
		if e.Num < len(env) {
			return ctx.Apply(env[e.Num]), nil
		}
		tp, ok := free[e.Num-len(env)]
		if !ok {
			tp = ctx.Fresh()
			free[e.Num-len(env)] = tp
		}
		return ctx.Apply(tp), nil

	default:
		return nil, NewBadExpressionError("unknown expression variant %T", expr)
	}
}
