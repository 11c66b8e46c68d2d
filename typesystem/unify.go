package typesystem

import "fmt"

// Unify finds a substitution making a and b equal, extending the context's
// substitution in place. On failure the context may hold partial bindings;
// callers that need to speculate should Unify on a Clone and discard it.
func (c *Context) Unify(a, b Type) error {
	a = c.Apply(a)
	b = c.Apply(b)

	if av, ok := a.(Var); ok {
		return c.bindVar(av, b)
	}
	if bv, ok := b.(Var); ok {
		return c.bindVar(bv, a)
	}

	switch a := a.(type) {
	case Con:
		bc, ok := b.(Con)
		if !ok {
			return NewUnificationError(a, b)
		}
		if a.Name != bc.Name || len(a.Args) != len(bc.Args) {
			return NewUnificationError(a, b)
		}
		for i := range a.Args {
			if err := c.Unify(a.Args[i], bc.Args[i]); err != nil {
				return err
			}
		}
		return nil
	case Arrow:
		ba, ok := b.(Arrow)
		if !ok {
			return NewUnificationError(a, b)
		}
		if err := c.Unify(a.Arg, ba.Arg); err != nil {
			return err
		}
		return c.Unify(a.Ret, ba.Ret)
	default:
		return NewUnificationError(a, b)
	}
}

// bindVar binds v to t after the occurs check. t has already been applied.
func (c *Context) bindVar(v Var, t Type) error {
	if tv, ok := t.(Var); ok && tv.Name == v.Name {
		return nil
	}
	if occursIn(v.Name, t) {
		return &UnificationError{
			Left:  v,
			Right: t,
			Msg:   fmt.Sprintf("infinite type: %s occurs in %s", v.Name, t),
		}
	}
	c.bind(v.Name, t)
	return nil
}
