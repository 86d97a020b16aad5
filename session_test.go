package jabr_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/jabr"
	"github.com/zephyrtronium/jabr/sym"
)

func TestSession(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "assign",
			lines: []string{"x := 5", "x", "x := x + 1", "x", "_ * 2"},
			want:  []string{"5", "5", "6", "6", "12"},
		},
		{
			name:  "last",
			lines: []string{"(y + 1)**2 // expand", "_ // factor", "_ // expand"},
			want:  []string{"y**2 + 2*y + 1", "(y + 1)**2", "y**2 + 2*y + 1"},
		},
		{
			name:  "digits",
			lines: []string{"dps := 3", "y := 1.0/3", "dps := 20", "y", "dps"},
			want:  []string{"3", "0.333", "20", "0.333", "20"},
		},
		{
			name:  "prec",
			lines: []string{"prec := 64", "dps", "prec"},
			want:  []string{"64", "18", "64"},
		},
		{
			name:  "small-hyperbolic",
			lines: []string{"sinh(1e-20)", "tanh(1e-20)", "sinh(1e-10)", "sinh(1/10^20) // N"},
			want:  []string{"1e-20", "1e-20", "1e-10", "1e-20"},
		},
		{
			name:  "cancellation",
			lines: []string{"cos(pi/2 + 1/10^20) // N"},
			want:  []string{"-1e-20"},
		},
		{
			name:  "symbolic",
			lines: []string{"f := x**2", "f // diff(x)", "f // subs(x, 3)"},
			want:  []string{"x**2", "2*x", "9"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := jabr.NewSession(nil)
			for i, line := range c.lines {
				r, err := s.EvalString(line)
				if err != nil {
					t.Fatalf("line %d %q failed: %v", i, line, err)
				}
				if r != c.want[i] {
					t.Errorf("line %d %q: want %s, got %s", i, line, c.want[i], r)
				}
			}
			if s.Count() != len(c.lines) {
				t.Errorf("wrong count: want %d, got %d", len(c.lines), s.Count())
			}
		})
	}
}

func TestSessionErrors(t *testing.T) {
	s := jabr.NewSession(nil)
	if _, err := s.EvalString("x := 7"); err != nil {
		t.Fatal(err)
	}
	_, err := s.EvalString("x +")
	var ie jabr.InputError
	if !errors.As(err, &ie) {
		t.Errorf("parse failure gave %T (%v)", err, err)
	}
	if s.Count() != 1 {
		t.Errorf("parse failure changed count to %d", s.Count())
	}
	_, err = s.EvalString("1/0")
	var ee *jabr.EvaluationError
	if !errors.As(err, &ee) {
		t.Errorf("evaluation failure gave %T (%v)", err, err)
	}
	var de *sym.DomainError
	if !errors.As(err, &de) {
		t.Errorf("division by zero gave %T (%v)", err, err)
	}
	if s.Count() != 1 {
		t.Errorf("evaluation failure changed count to %d", s.Count())
	}
	if v, ok := s.Env().Lookup(jabr.LastResult); !ok || !v.Equal(sym.NewInt(7)) {
		t.Errorf("failed line changed _ to %v, %t", v, ok)
	}
	if _, err := s.EvalString("x + 1"); err != nil {
		t.Fatal(err)
	}
	if s.Count() != 2 {
		t.Errorf("wrong count after recovery: want 2, got %d", s.Count())
	}
}

func TestSessionEnv(t *testing.T) {
	env := jabr.NewEnv(jabr.SetVar("a", sym.NewInt(3)), jabr.Digits(5))
	s := jabr.NewSession(env)
	if s.Env() != env {
		t.Error("session does not use the given environment")
	}
	r, err := s.EvalString("a*pi // N")
	if err != nil {
		t.Fatal(err)
	}
	if r != "9.4248" {
		t.Errorf("wrong result: want 9.4248, got %s", r)
	}
	if v, ok := env.Lookup(jabr.LastResult); !ok || jabr.Print(v) != r {
		t.Errorf("_ is %v, %t", v, ok)
	}
}

func TestSessionLines(t *testing.T) {
	src := strings.NewReader("a := 2\na + 1\nb := a *\n3\nb\n")
	want := []string{"2", "3", "6", "6"}
	s := jabr.NewSession(nil)
	for i, w := range want {
		r, err := s.Eval(src, jabr.StopOn('\n'))
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if r != w {
			t.Errorf("line %d: want %s, got %s", i, w, r)
		}
	}
	if _, err := s.Eval(src, jabr.StopOn('\n')); err == nil {
		t.Error("no error at end of input")
	}
}
