package lambda

import (
	"math"

	"github.com/benbjohnson/immutable"

	"github.com/lucasem/program-induction/typesystem"
)

const (
	// budgetIncrement is the width W of each cost window.
	budgetIncrement = 1.0
	// maxSearchDepth bounds recursion so that zero-or-near-zero-cost loops
	// (e.g. via recursive type structure) terminate. Exceeding it silently
	// ends the branch; the enumeration is incomplete there, never in error.
	maxSearchDepth = 256
)

// Enumerate produces well-typed expressions of the request type, lazily and
// in order of increasing cost (negative log-probability of the production
// chain). visit receives each expression together with its log-probability;
// returning false stops the enumeration.
//
// Iteration is partitioned into successive cost windows of width 1.0:
// every expression whose cost falls in [k, k+1) is visited before any whose
// cost falls in [k+1, k+2), while order within one window is unspecified.
// A request with no satisfying expression yields nothing: absence, not
// failure. Memory use is proportional to the depth of the expression under
// construction, never to the breadth of the search.
func (l *Language) Enumerate(request typesystem.Type, visit func(expr Expression, logProb float64) bool) {
	ctx := typesystem.NewContext()
	env := immutable.NewList()
	s := &search{l: l}
	yield := func(logProb float64, _ *typesystem.Context, expr Expression) {
		if !visit(expr, logProb) {
			s.stopped = true
		}
	}
	for k := 0; ; k++ {
		lower := budgetIncrement * float64(k)
		upper := lower + budgetIncrement
		s.truncated = false
		s.enumerate(ctx, request, env, lower, upper, 0, yield)
		if s.stopped || !s.truncated {
			// nothing was pruned for exceeding this window's bound, so no
			// later window can hold anything: the space is exhausted
			return
		}
	}
}

// EnumerateN collects the first n enumerated expressions.
func (l *Language) EnumerateN(request typesystem.Type, n int) []Expression {
	exprs := make([]Expression, 0, n)
	if n <= 0 {
		return exprs
	}
	l.Enumerate(request, func(expr Expression, _ float64) bool {
		exprs = append(exprs, expr)
		return len(exprs) < n
	})
	return exprs
}

type search struct {
	l *Language
	// stopped is set once the consumer ends iteration.
	stopped bool
	// truncated records that some branch was cut by the window's upper
	// bound during the current pass, i.e. a later window has work left.
	truncated bool
}

type yieldFn func(logProb float64, ctx *typesystem.Context, expr Expression)

// enumerate emits expressions of the request type whose total cost lands in
// [lower, upper). An arrow request first inserts one Abstraction per leading
// argument, extending the environment, before any candidate search begins.
func (s *search) enumerate(
	ctx *typesystem.Context,
	request typesystem.Type,
	env *immutable.List,
	lower, upper float64,
	depth int,
	yield yieldFn,
) {
	if s.stopped {
		return
	}
	if upper <= 0 {
		s.truncated = true
		return
	}
	if depth > maxSearchDepth {
		return
	}

	if arrow, ok := request.(typesystem.Arrow); ok {
		inner := env.Prepend(arrow.Arg)
		s.enumerate(ctx, arrow.Ret, inner, lower, upper, depth, func(ll float64, c *typesystem.Context, body Expression) {
			yield(ll, c, &Abstraction{Body: body})
		})
		return
	}

	for _, cand := range s.l.candidates(ctx, request, env) {
		if s.stopped {
			return
		}
		ll := cand.logProb
		if -ll >= upper {
			s.truncated = true
			continue
		}
		var argTps []typesystem.Type
		if arrow, ok := cand.tp.(typesystem.Arrow); ok {
			argTps = arrow.Args()
		}
		s.enumerateApplication(cand.ctx, env, cand.expr, argTps, lower+ll, upper+ll, depth+1,
			func(argLL float64, c *typesystem.Context, expr Expression) {
				yield(argLL+ll, c, expr)
			})
	}
}

// enumerateApplication fills the chosen head's curried arguments left to
// right. Each argument is enumerated from a local window [0, upper); the
// argument actually chosen narrows the bounds used for the rest. Once all
// arguments are filled, the application is emitted only when the accumulated
// cost lands inside the caller's window.
func (s *search) enumerateApplication(
	ctx *typesystem.Context,
	env *immutable.List,
	f Expression,
	argTps []typesystem.Type,
	lower, upper float64,
	depth int,
	yield yieldFn,
) {
	if s.stopped {
		return
	}
	if len(argTps) == 0 {
		switch {
		case upper <= 0:
			s.truncated = true
		case lower <= 0:
			yield(0, ctx, f)
		}
		// lower > 0 means this expression already appeared in an earlier
		// window; re-deriving and discarding it is what makes windows
		// restartable without buffering
		return
	}

	argTp := ctx.Apply(argTps[0])
	s.enumerate(ctx, argTp, env, 0, upper, depth, func(argLL float64, c *typesystem.Context, arg Expression) {
		fNext := &Application{Func: f, Arg: arg}
		s.enumerateApplication(c, env, fNext, argTps[1:], lower+argLL, upper+argLL, depth,
			func(ll float64, c2 *typesystem.Context, expr Expression) {
				yield(ll+argLL, c2, expr)
			})
	})
}

type candidate struct {
	logProb float64
	expr    Expression
	tp      typesystem.Type
	ctx     *typesystem.Context
}

// candidates returns every primitive, invention and bound variable whose
// (instantiated, substituted) return type unifies with the request, each
// paired with the context in which that unification succeeded. Inadmissible
// candidates are excluded outright. The admissible set's log-probabilities
// are renormalized so they define a proper distribution conditioned on
// admissibility at this node; bound variables share the language's single
// variable weight, split evenly among the admissible indices.
func (l *Language) candidates(
	ctx *typesystem.Context,
	request typesystem.Type,
	env *immutable.List,
) []candidate {
	cands := make([]candidate, 0, len(l.Primitives)+len(l.Invented)+env.Len())

	consider := func(logProb float64, tp typesystem.Type, instantiate bool, expr Expression) {
		c := ctx.Clone()
		if instantiate {
			tp = c.Instantiate(tp)
		} else {
			tp = c.Apply(tp)
		}
		ret := tp
		if arrow, ok := tp.(typesystem.Arrow); ok {
			ret = arrow.Returns()
		}
		// alternatives at this node never observe each other's bindings:
		// the clone is kept only when unification succeeds
		if c.Unify(ret, request) != nil {
			return
		}
		cands = append(cands, candidate{logProb: logProb, expr: expr, tp: c.Apply(tp), ctx: c})
	}

	for num := range l.Primitives {
		consider(l.PrimitivesLogProb[num], l.Primitives[num].Type, true, &Primitive{Num: num})
	}
	for num := range l.Invented {
		consider(l.InventedLogProb[num], l.Invented[num].Type, true, &Invented{Num: num})
	}
	for i := 0; i < env.Len(); i++ {
		consider(l.VariableLogProb, env.Get(i).(typesystem.Type), false, &Index{Num: i})
	}
	if len(cands) == 0 {
		return nil
	}

	var nIndexed int
	for i := range cands {
		if _, ok := cands[i].expr.(*Index); ok {
			nIndexed++
		}
	}
	if nIndexed > 0 {
		split := math.Log(float64(nIndexed))
		for i := range cands {
			if _, ok := cands[i].expr.(*Index); ok {
				cands[i].logProb -= split
			}
		}
	}

	// log-sum-exp over the admissible set
	largest := math.Inf(-1)
	for i := range cands {
		if cands[i].logProb > largest {
			largest = cands[i].logProb
		}
	}
	var sum float64
	for i := range cands {
		sum += math.Exp(cands[i].logProb - largest)
	}
	z := largest + math.Log(sum)
	for i := range cands {
		cands[i].logProb -= z
	}
	return cands
}
