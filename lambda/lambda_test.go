package lambda

import (
	"testing"

	"github.com/lucasem/program-induction/typesystem"
)

var (
	tInt  = typesystem.Con{Name: "int"}
	tBool = typesystem.Con{Name: "bool"}
)

func tList(t typesystem.Type) typesystem.Type {
	return typesystem.Con{Name: "list", Args: []typesystem.Type{t}}
}

// arithmetic returns the registry {"0": int, "1": int, "+": int -> int -> int}.
func arithmetic() *Language {
	return Uniform([]PrimitiveDef{
		{Name: "0", Type: tInt},
		{Name: "1", Type: tInt},
		{Name: "+", Type: typesystem.Arrows(tInt, tInt, tInt)},
	}, nil)
}

func mustParse(t *testing.T, l *Language, s string) Expression {
	t.Helper()
	expr, err := l.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", s, err)
	}
	return expr
}

func TestParseStructure(t *testing.T) {
	l := arithmetic()

	got := mustParse(t, l, "(λ (+ $0 1))")
	want := &Abstraction{Body: &Application{
		Func: &Application{Func: &Primitive{Num: 2}, Arg: &Index{Num: 0}},
		Arg:  &Primitive{Num: 1},
	}}
	if !got.Equal(want) {
		t.Errorf("Parse gave %s", l.Stringify(got))
	}
	if s := l.Stringify(want); s != "(λ (+ $0 1))" {
		t.Errorf("Stringify = %q, want %q", s, "(λ (+ $0 1))")
	}
}

func TestParseVariants(t *testing.T) {
	l := arithmetic()
	if _, err := l.Invent(mustParse(t, l, "(+ 1)")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		want  Expression
	}{
		{"primitive", "0", &Primitive{Num: 0}},
		{"lambda keyword", "(lambda (+ $0 1))", &Abstraction{Body: &Application{
			Func: &Application{Func: &Primitive{Num: 2}, Arg: &Index{Num: 0}},
			Arg:  &Primitive{Num: 1},
		}}},
		{"left fold", "(+ 0 1)", &Application{
			Func: &Application{Func: &Primitive{Num: 2}, Arg: &Primitive{Num: 0}},
			Arg:  &Primitive{Num: 1},
		}},
		{"invented reference", "(#(+ 1) 0)", &Application{
			Func: &Invented{Num: 0},
			Arg:  &Primitive{Num: 0},
		}},
		{"surrounding whitespace", "  (+ 0 0) ", &Application{
			Func: &Application{Func: &Primitive{Num: 2}, Arg: &Primitive{Num: 0}},
			Arg:  &Primitive{Num: 0},
		}},
		{"bare index", "$2", &Index{Num: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, l, tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s", tt.input, l.Stringify(got))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	l := arithmetic()

	tests := []struct {
		name  string
		input string
	}{
		{"unknown primitive", "2"},
		{"trailing tokens", "(+ 0 0) 1"},
		{"incomplete application", "(+ 0"},
		{"empty application", "()"},
		{"unfamiliar invention", "#(+ 1)"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.input)
			}
			if _, ok := err.(*ParseError); !ok {
				t.Errorf("Parse(%q) error is %T, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestParseErrorOffset(t *testing.T) {
	l := arithmetic()
	_, err := l.Parse("(+ 0 oops)")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if pe.Offset != 9 {
		t.Errorf("Offset = %d, want 9", pe.Offset)
	}
}

func TestInfer(t *testing.T) {
	l := Uniform([]PrimitiveDef{
		{Name: "singleton", Type: typesystem.Arrows(typesystem.Var{Name: "t0"}, tList(typesystem.Var{Name: "t0"}))},
		{Name: ">=", Type: typesystem.Arrows(tInt, tInt, tBool)},
		{Name: "+", Type: typesystem.Arrows(tInt, tInt, tInt)},
		{Name: "0", Type: tInt},
		{Name: "1", Type: tInt},
	}, nil)
	if _, err := l.Invent(mustParse(t, l, "(+ 1)")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		want  typesystem.Type
	}{
		{"primitive", "0", tInt},
		{"application", "(+ 0 1)", tInt},
		{"abstraction", "(λ (+ $0 1))", typesystem.Arrows(tInt, tInt)},
		{"instantiation", "(singleton 0)", tList(tInt)},
		{"invented", "(#(+ 1) 0)", tInt},
		{"mixed", "(singleton ((λ (>= $0 1)) (#(+ 1) 0)))", tList(tBool)},
		{"free index", "(+ $3 0)", tInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, err := l.Infer(mustParse(t, l, tt.input))
			if err != nil {
				t.Fatalf("Infer error: %v", err)
			}
			if !typesystem.Equal(tp, tt.want) {
				t.Errorf("Infer = %s, want %s", tp, tt.want)
			}
		})
	}
}

func TestInferErrors(t *testing.T) {
	l := Uniform([]PrimitiveDef{
		{Name: "+", Type: typesystem.Arrows(tInt, tInt, tInt)},
		{Name: "true", Type: tBool},
	}, nil)

	t.Run("unification failure", func(t *testing.T) {
		_, err := l.Infer(mustParse(t, l, "(+ true)"))
		if err == nil {
			t.Fatal("Infer should fail")
		}
		if _, ok := err.(*typesystem.UnificationError); !ok {
			t.Errorf("error is %T, want *typesystem.UnificationError", err)
		}
	})

	t.Run("bad primitive reference", func(t *testing.T) {
		_, err := l.Infer(&Primitive{Num: 99})
		if err == nil {
			t.Fatal("Infer should fail")
		}
		if _, ok := err.(*BadExpressionError); !ok {
			t.Errorf("error is %T, want *BadExpressionError", err)
		}
	})

	t.Run("bad invention reference", func(t *testing.T) {
		if _, err := l.Infer(&Invented{Num: 0}); err == nil {
			t.Fatal("Infer should fail")
		}
	})
}

func TestInvent(t *testing.T) {
	l := arithmetic()
	incr := mustParse(t, l, "(λ (+ $0 1))")

	num, err := l.Invent(incr)
	if err != nil {
		t.Fatal(err)
	}
	if num != 0 {
		t.Fatalf("Invent = %d, want 0", num)
	}

	tp, err := l.Infer(&Invented{Num: 0})
	if err != nil {
		t.Fatal(err)
	}
	if want := typesystem.Arrows(tInt, tInt); !typesystem.Equal(tp, want) {
		t.Errorf("Infer(Invented(0)) = %s, want %s", tp, want)
	}

	if got := l.StripInvented(&Invented{Num: 0}); !got.Equal(incr) {
		t.Errorf("StripInvented = %s", l.Stringify(got))
	}
}

func TestInventAppendOnly(t *testing.T) {
	l := arithmetic()
	first := mustParse(t, l, "(+ 1)")
	if _, err := l.Invent(first); err != nil {
		t.Fatal(err)
	}

	// a failed invention leaves the registry unchanged
	if _, err := l.Invent(&Primitive{Num: 99}); err == nil {
		t.Fatal("Invent of a bad expression should fail")
	}
	if len(l.Invented) != 1 || len(l.InventedLogProb) != 1 {
		t.Fatalf("registry changed on failure: %d inventions", len(l.Invented))
	}

	second := mustParse(t, l, "(λ (+ $0 $0))")
	num, err := l.Invent(second)
	if err != nil {
		t.Fatal(err)
	}
	if num != 1 {
		t.Fatalf("Invent = %d, want 1", num)
	}
	if len(l.Invented) != 2 || len(l.InventedLogProb) != 2 {
		t.Fatalf("tables out of step: %d exprs, %d logprobs", len(l.Invented), len(l.InventedLogProb))
	}
	expr, tp, _, ok := l.InventedAt(0)
	if !ok || !expr.Equal(first) || !typesystem.Equal(tp, typesystem.Arrows(tInt, tInt)) {
		t.Errorf("earlier invention disturbed: %v %v", expr, tp)
	}
}

func TestInventRejectsFreeIndices(t *testing.T) {
	l := arithmetic()
	if _, err := l.Invent(mustParse(t, l, "(+ $0 1)")); err == nil {
		t.Fatal("Invent should reject expressions with free indices")
	}
	if len(l.Invented) != 0 {
		t.Fatal("registry changed on rejected invention")
	}
}

func TestInventReferencesEarlier(t *testing.T) {
	l := arithmetic()
	if _, err := l.Invent(mustParse(t, l, "(+ 1)")); err != nil {
		t.Fatal(err)
	}
	// an invention may use strictly earlier inventions
	num, err := l.Invent(mustParse(t, l, "(λ (#(+ 1) (#(+ 1) $0)))"))
	if err != nil {
		t.Fatal(err)
	}
	if num != 1 {
		t.Fatalf("Invent = %d, want 1", num)
	}

	stripped := l.StripInvented(&Invented{Num: 1})
	if got := l.Stringify(stripped); got != "(λ (+ 1 (+ 1 $0)))" {
		t.Errorf("StripInvented = %q", got)
	}
}

func TestStripInventedIdempotent(t *testing.T) {
	l := arithmetic()
	if _, err := l.Invent(mustParse(t, l, "(+ 1)")); err != nil {
		t.Fatal(err)
	}
	expr := mustParse(t, l, "(λ (#(+ 1) (+ $0 (#(+ 1) 0))))")

	once := l.StripInvented(expr)
	twice := l.StripInvented(once)
	if !once.Equal(twice) {
		t.Errorf("StripInvented is not idempotent: %s vs %s", l.Stringify(once), l.Stringify(twice))
	}

	var hasInvented func(Expression) bool
	hasInvented = func(e Expression) bool {
		switch e := e.(type) {
		case *Invented:
			return true
		case *Application:
			return hasInvented(e.Func) || hasInvented(e.Arg)
		case *Abstraction:
			return hasInvented(e.Body)
		default:
			return false
		}
	}
	if hasInvented(once) {
		t.Errorf("stripped expression still has an Invented node: %s", l.Stringify(once))
	}
}
