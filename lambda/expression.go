// Package lambda implements a polymorphically-typed lambda calculus: a
// registry of primitive and invented expressions with production
// probabilities, type inference, a textual syntax, and budgeted enumeration
// of well-typed expressions for a requested type.
package lambda

// Expression is a term of the lambda calculus. Expressions only make sense
// relative to an accompanying Language, which resolves Primitive and Invented
// references. Expressions are immutable once constructed and compared
// structurally with Equal.
type Expression interface {
	expressionNode()
	// Equal reports structural equality.
	Equal(Expression) bool
}

// Primitive references the Num-th primitive registered in the Language.
type Primitive struct {
	Num int
}

// Application applies Func to Arg. N-ary application is a left-nested chain
// of Applications.
type Application struct {
	Func Expression
	Arg  Expression
}

// Abstraction introduces one bound variable, referenced from Body by a
// De Bruijn Index.
type Abstraction struct {
	Body Expression
}

// Index is a De Bruijn reference to the Num-th nearest enclosing
// Abstraction, 0-indexed. The identity function is Abstraction{Index{0}},
// written (λ $0).
type Index struct {
	Num int
}

// Invented references the Num-th invented expression registered in the
// Language.
type Invented struct {
	Num int
}

func (e *Primitive) expressionNode()   {}
func (e *Application) expressionNode() {}
func (e *Abstraction) expressionNode() {}
func (e *Index) expressionNode()       {}
func (e *Invented) expressionNode()    {}

func (e *Primitive) Equal(o Expression) bool {
	p, ok := o.(*Primitive)
	return ok && p.Num == e.Num
}

func (e *Application) Equal(o Expression) bool {
	a, ok := o.(*Application)
	return ok && e.Func.Equal(a.Func) && e.Arg.Equal(a.Arg)
}

func (e *Abstraction) Equal(o Expression) bool {
	a, ok := o.(*Abstraction)
	return ok && e.Body.Equal(a.Body)
}

func (e *Index) Equal(o Expression) bool {
	i, ok := o.(*Index)
	return ok && i.Num == e.Num
}

func (e *Invented) Equal(o Expression) bool {
	i, ok := o.(*Invented)
	return ok && i.Num == e.Num
}

// closedAt reports whether every Index in e points at an Abstraction inside
// e, given that e already sits under depth enclosing binders.
func closedAt(e Expression, depth int) bool {
	switch e := e.(type) {
	case *Application:
		return closedAt(e.Func, depth) && closedAt(e.Arg, depth)
	case *Abstraction:
		return closedAt(e.Body, depth+1)
	case *Index:
		return e.Num < depth
	default:
		return true
	}
}
