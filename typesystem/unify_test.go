package typesystem

import (
	"testing"
)

var (
	tInt  = Con{Name: "int"}
	tBool = Con{Name: "bool"}
)

func TestUnify(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Type
		wantErr bool
	}{
		{
			name: "equal constants",
			a:    tInt,
			b:    tInt,
		},
		{
			name:    "constant mismatch",
			a:       tInt,
			b:       tBool,
			wantErr: true,
		},
		{
			name: "variable binds to constant",
			a:    Var{Name: "t0"},
			b:    tInt,
		},
		{
			name: "arrows unify pointwise",
			a:    Arrows(Var{Name: "t0"}, tInt),
			b:    Arrows(tBool, Var{Name: "t1"}),
		},
		{
			name:    "arrow against constant",
			a:       Arrows(tInt, tInt),
			b:       tInt,
			wantErr: true,
		},
		{
			name: "constructor arguments",
			a:    Con{Name: "list", Args: []Type{Var{Name: "t0"}}},
			b:    Con{Name: "list", Args: []Type{tBool}},
		},
		{
			name:    "constructor arity mismatch",
			a:       Con{Name: "list", Args: []Type{tInt}},
			b:       Con{Name: "list", Args: []Type{tInt, tInt}},
			wantErr: true,
		},
		{
			name:    "occurs check",
			a:       Var{Name: "t0"},
			b:       Con{Name: "list", Args: []Type{Var{Name: "t0"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			err := ctx.Unify(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unify(%s, %s) error = %v, wantErr %v", tt.a, tt.b, err, tt.wantErr)
			}
			if err == nil {
				ra := ctx.Apply(tt.a)
				rb := ctx.Apply(tt.b)
				if !Equal(ra, rb) {
					t.Errorf("after Unify, Apply gives %s and %s", ra, rb)
				}
			}
		})
	}
}

func TestUnifyTransitive(t *testing.T) {
	ctx := NewContext()
	a := ctx.Fresh()
	b := ctx.Fresh()
	if err := ctx.Unify(a, b); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Unify(b, tInt); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Apply(a); !Equal(got, tInt) {
		t.Errorf("Apply(a) = %s, want int", got)
	}
}

func TestCloneIsolation(t *testing.T) {
	ctx := NewContext()
	v := ctx.Fresh()

	branch := ctx.Clone()
	if err := branch.Unify(v, tInt); err != nil {
		t.Fatal(err)
	}

	if got := ctx.Apply(v); !Equal(got, v) {
		t.Errorf("binding leaked into original context: %s", got)
	}
	if got := branch.Apply(v); !Equal(got, tInt) {
		t.Errorf("branch lost its binding: %s", got)
	}

	// the original can still take the other path
	if err := ctx.Unify(v, tBool); err != nil {
		t.Fatal(err)
	}
	if got := branch.Apply(v); !Equal(got, tInt) {
		t.Errorf("original's binding leaked into branch: %s", got)
	}
}

func TestInstantiateIndependent(t *testing.T) {
	ctx := NewContext()
	scheme := Arrows(Var{Name: "t0"}, Con{Name: "list", Args: []Type{Var{Name: "t0"}}})

	first := ctx.Instantiate(scheme)
	second := ctx.Instantiate(scheme)

	fa := first.(Arrow)
	sa := second.(Arrow)
	if Equal(fa.Arg, sa.Arg) {
		t.Errorf("two instantiations share a variable: %s", fa.Arg)
	}
	// within one instantiation the variable is consistent
	if !Equal(fa.Ret.(Con).Args[0], fa.Arg) {
		t.Errorf("instantiation not consistent: %s vs %s", fa.Ret, fa.Arg)
	}

	// binding one instantiation must not constrain the other
	if err := ctx.Unify(fa.Arg, tInt); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Apply(sa.Arg); !Equal(got, sa.Arg) {
		t.Errorf("instantiations are entangled: %s", got)
	}
}
