package lambda

import (
	"strconv"
	"strings"
)

// Stringify renders expr in the textual syntax accepted by Parse, such that
// Parse(Stringify(e)) reproduces e for any expression the enumerator can
// produce. An application's argument is always parenthesized; its function
// position is parenthesized only when it is not itself an application, which
// keeps left-folded chains flat: ((f x) y) prints as (f x y).
func (l *Language) Stringify(expr Expression) string {
	var b strings.Builder
	l.show(&b, expr, false)
	return b.String()
}

func (l *Language) show(b *strings.Builder, expr Expression, isFunction bool) {
	switch e := expr.(type) {
	case *Primitive:
		b.WriteString(l.Primitives[e.Num].Name)
	case *Application:
		if !isFunction {
			b.WriteByte('(')
		}
		l.show(b, e.Func, true)
		b.WriteByte(' ')
		l.show(b, e.Arg, false)
		if !isFunction {
			b.WriteByte(')')
		}
	case *Abstraction:
		b.WriteString("(λ ")
		l.show(b, e.Body, false)
		b.WriteByte(')')
	case *Index:
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(e.Num))
	case *Invented:
		b.WriteByte('#')
		l.show(b, l.Invented[e.Num].Expr, false)
	}
}
