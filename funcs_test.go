package calc

import (
	"math"
	"testing"
)

func TestBuiltinsResolve(t *testing.T) {
	funcs, consts := Builtins()
	if len(funcs) != int(fnCount-1) {
		t.Errorf("wrong number of functions: want %d, got %d", fnCount-1, len(funcs))
	}
	if len(consts) != int(constCount-1) {
		t.Errorf("wrong number of constants: want %d, got %d", constCount-1, len(consts))
	}
	for _, name := range funcs {
		f := lookupFunc(name)
		if f == fnNone {
			t.Errorf("function %q doesn't resolve", name)
			continue
		}
		if f.String() != name {
			t.Errorf("function %q resolves to %q", name, f)
		}
		if lookupConst(name) != constNone {
			t.Errorf("%q is both a function and a constant", name)
		}
	}
	for _, name := range consts {
		c := lookupConst(name)
		if c == constNone {
			t.Errorf("constant %q doesn't resolve", name)
			continue
		}
		if c.String() != name {
			t.Errorf("constant %q resolves to %q", name, c)
		}
	}
}

func TestBuiltinCall(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		want float64
	}{
		{"sqrt", 2, math.Sqrt2},
		{"ln", 1, 0},
		{"abs", -1.5, 1.5},
		{"abs", math.Inf(-1), math.Inf(1)},
		{"cos", math.Pi, -1},
		{"sin", 0, 0},
		{"tan", 0, 0},
		{"log", 1, 0},
		{"log10", 0, math.Inf(-1)},
	}
	for _, c := range cases {
		f := lookupFunc(c.name)
		if got := f.call(c.x); got != c.want {
			t.Errorf("%s(%g): want %g, got %g", c.name, c.x, c.want, got)
		}
	}
}

func TestBuiltinNotFound(t *testing.T) {
	for _, name := range []string{"", "Sqrt", "exp", "x", "PI", "log2"} {
		if f := lookupFunc(name); f != fnNone {
			t.Errorf("%q resolved to function %v", name, f)
		}
		if c := lookupConst(name); c != constNone {
			t.Errorf("%q resolved to constant %v", name, c)
		}
	}
}
