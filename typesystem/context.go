package typesystem

import (
	"strconv"

	"github.com/benbjohnson/immutable"
)

// Context carries the state of type inference: a counter for fresh variable
// allocation and the current substitution.
//
// The substitution lives in a persistent map, so Clone is O(1) and clones
// never observe each other's bindings. Speculative unification is therefore
// "clone, try, discard": branch the context, attempt a unification, and keep
// the clone only on success. There is no rollback operation.
type Context struct {
	next  int
	subst *immutable.Map
}

// NewContext returns an empty inference context.
func NewContext() *Context {
	return &Context{subst: immutable.NewMap(nil)}
}

// Clone returns an independent copy of the context. Bindings added to the
// clone are invisible to the original and vice versa.
func (c *Context) Clone() *Context {
	return &Context{next: c.next, subst: c.subst}
}

// Fresh allocates a new unification variable, unused by any type this
// context has seen.
func (c *Context) Fresh() Var {
	v := Var{Name: "t" + strconv.Itoa(c.next)}
	c.next++
	return v
}

// bind records name := t in the substitution.
func (c *Context) bind(name string, t Type) {
	c.subst = c.subst.Set(name, t)
}

// Apply resolves every bound variable in t through the substitution,
// following chains of bindings.
func (c *Context) Apply(t Type) Type {
	switch t := t.(type) {
	case Var:
		if bound, ok := c.subst.Get(t.Name); ok {
			return c.Apply(bound.(Type))
		}
		return t
	case Con:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.Apply(a)
		}
		return Con{Name: t.Name, Args: args}
	case Arrow:
		return Arrow{Arg: c.Apply(t.Arg), Ret: c.Apply(t.Ret)}
	default:
		return t
	}
}

// Instantiate returns a copy of t in which every variable has been replaced
// by a fresh one, consistently within this call and independently of any
// other call. Registered types are implicitly quantified over all their
// variables, so instantiation here is what gives each use site its own copy;
// generalization never happens mid-expression.
func (c *Context) Instantiate(t Type) Type {
	return c.instantiate(t, make(map[string]Var))
}

func (c *Context) instantiate(t Type, fresh map[string]Var) Type {
	switch t := t.(type) {
	case Var:
		v, ok := fresh[t.Name]
		if !ok {
			v = c.Fresh()
			fresh[t.Name] = v
		}
		return v
	case Con:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.instantiate(a, fresh)
		}
		return Con{Name: t.Name, Args: args}
	case Arrow:
		return Arrow{Arg: c.instantiate(t.Arg, fresh), Ret: c.instantiate(t.Ret, fresh)}
	default:
		return t
	}
}
