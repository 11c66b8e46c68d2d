package lambda

import (
	"github.com/lucasem/program-induction/typesystem"
)

// PrimitiveDef registers a named primitive and its (implicitly quantified)
// type. The primitive's position in the table is its stable identity.
type PrimitiveDef struct {
	Name string
	Type typesystem.Type
}

// InventedDef is a registered invented expression and its inferred type.
type InventedDef struct {
	Expr Expression
	Type typesystem.Type
}

// Language is a registry of primitive and invented expressions, with
// parallel log-probability tables used by the enumerator. Positions in the
// tables are the identities referenced by Primitive and Invented expressions.
// A Language only ever grows, via Invent; existing indices are never
// invalidated.
type Language struct {
	Primitives []PrimitiveDef
	Invented   []InventedDef

	// VariableLogProb is the single production weight shared by all bound
	// variable references, regardless of which variable.
	VariableLogProb   float64
	PrimitivesLogProb []float64
	InventedLogProb   []float64
}

// Uniform builds a Language in which every production carries log-probability
// zero. The weights are unnormalized placeholders; the enumerator normalizes
// over the admissible candidates at each search node.
func Uniform(primitives []PrimitiveDef, invented []InventedDef) *Language {
	return &Language{
		Primitives:        primitives,
		Invented:          invented,
		PrimitivesLogProb: make([]float64, len(primitives)),
		InventedLogProb:   make([]float64, len(invented)),
	}
}

// Primitive looks up the primitive identified by num, returning its name,
// type and log-probability. ok is false when num is out of range.
func (l *Language) Primitive(num int) (name string, tp typesystem.Type, logProb float64, ok bool) {
	if num < 0 || num >= len(l.Primitives) {
		return "", nil, 0, false
	}
	def := l.Primitives[num]
	return def.Name, def.Type, l.PrimitivesLogProb[num], true
}

// InventedAt looks up the invented expression identified by num, returning
// its defining expression, type and log-probability. ok is false when num is
// out of range.
func (l *Language) InventedAt(num int) (expr Expression, tp typesystem.Type, logProb float64, ok bool) {
	if num < 0 || num >= len(l.Invented) {
		return nil, nil, 0, false
	}
	def := l.Invented[num]
	return def.Expr, def.Type, l.InventedLogProb[num], true
}

// Invent registers a new invented expression and returns its identity.
//
// The expression is type-checked under the current invented table, so it can
// reference only strictly earlier inventions and never itself; the table
// therefore stays acyclic without any cycle check. Inventions must be closed:
// an Index escaping every Abstraction in expr is rejected. On any failure the
// registry is left unchanged.
func (l *Language) Invent(expr Expression) (int, error) {
	if !closedAt(expr, 0) {
		return 0, NewBadExpressionError("invention is not closed: it has free indices")
	}
	tp, err := l.Infer(expr)
	if err != nil {
		return 0, err
	}
	l.Invented = append(l.Invented, InventedDef{Expr: expr, Type: tp})
	l.InventedLogProb = append(l.InventedLogProb, 0)
	return len(l.Invented) - 1, nil
}

// StripInvented replaces every Invented reference in expr with a fully
// expanded copy of its definition, recursively. The result contains no
// Invented node; applying StripInvented again returns an equal expression.
// Termination follows from the invented table's strictly-earlier-reference
// invariant.
func (l *Language) StripInvented(expr Expression) Expression {
	switch e := expr.(type) {
	case *Application:
		return &Application{
			Func: l.StripInvented(e.Func),
			Arg:  l.StripInvented(e.Arg),
		}
	case *Abstraction:
		return &Abstraction{Body: l.StripInvented(e.Body)}
	case *Invented:
		return l.StripInvented(l.Invented[e.Num].Expr)
	default:
		return expr
	}
}
