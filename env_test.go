package jabr_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zephyrtronium/jabr"
	"github.com/zephyrtronium/jabr/sym"
)

func TestEnvPrecision(t *testing.T) {
	cases := []struct {
		name   string
		opts   []jabr.EnvOption
		digits uint
		prec   uint
	}{
		{"default", nil, 15, 53},
		{"digits", []jabr.EnvOption{jabr.Digits(30)}, 30, 103},
		{"prec", []jabr.EnvOption{jabr.Prec(64)}, 18, 64},
		{"last-wins", []jabr.EnvOption{jabr.Digits(10), jabr.Prec(64)}, 18, 64},
		{"last-wins-rev", []jabr.EnvOption{jabr.Prec(64), jabr.Digits(10)}, 10, sym.DigitsToBits(10)},
		{"var", []jabr.EnvOption{jabr.SetVar(jabr.DigitsName, sym.NewInt(7))}, 7, sym.DigitsToBits(7)},
		{"var-after-digits", []jabr.EnvOption{jabr.Digits(30), jabr.SetVar(jabr.PrecName, sym.NewInt(64))}, 18, 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := jabr.NewEnv(c.opts...)
			if env.Digits() != c.digits {
				t.Errorf("wrong digits: want %d, got %d", c.digits, env.Digits())
			}
			if env.Prec() != c.prec {
				t.Errorf("wrong prec: want %d, got %d", c.prec, env.Prec())
			}
			if v, ok := env.Lookup(jabr.DigitsName); !ok || !v.Equal(sym.NewInt(int64(c.digits))) {
				t.Errorf("dps reads as %v, %t", v, ok)
			}
			if v, ok := env.Lookup(jabr.PrecName); !ok || !v.Equal(sym.NewInt(int64(c.prec))) {
				t.Errorf("prec reads as %v, %t", v, ok)
			}
			if vars := env.Vars(); len(vars) != 0 {
				t.Errorf("precision options bound variables %q", vars)
			}
		})
	}
}

func TestEnvVars(t *testing.T) {
	zero, one := sym.NewInt(0), sym.NewInt(1)
	env := jabr.NewEnv(jabr.SetVar("x", zero))
	if x, ok := env.Lookup("x"); !ok || !x.Equal(zero) {
		t.Errorf("x should be 0 but is %v, %t", x, ok)
	}
	if y, ok := env.Lookup("y"); ok {
		t.Errorf("env has y: %v", y)
	}
	if err := env.Assign("y", one); err != nil {
		t.Fatal(err)
	}
	if x, ok := env.Lookup("x"); !ok || !x.Equal(zero) {
		t.Errorf("x should be 0 but is %v, %t", x, ok)
	}
	if y, ok := env.Lookup("y"); !ok || !y.Equal(one) {
		t.Errorf("y should be 1 but is %v, %t", y, ok)
	}
	if err := env.Assign("x", one); err != nil {
		t.Fatal(err)
	}
	if x, ok := env.Lookup("x"); !ok || !x.Equal(one) {
		t.Errorf("x should be 1 but is %v, %t", x, ok)
	}
	if vars := env.Vars(); !reflect.DeepEqual(vars, []string{"x", "y"}) {
		t.Errorf("wrong vars: %q", vars)
	}
}

func TestEnvClone(t *testing.T) {
	one, two := sym.NewInt(1), sym.NewInt(2)
	env := jabr.NewEnv(jabr.SetVars(map[string]sym.Expr{"a": one, "b": one}))
	c := env.Clone(jabr.SetVar("b", two), jabr.Digits(5))
	if err := c.Assign("c", two); err != nil {
		t.Fatal(err)
	}
	if v, _ := env.Lookup("b"); !v.Equal(one) {
		t.Errorf("clone changed b in original to %v", v)
	}
	if _, ok := env.Lookup("c"); ok {
		t.Error("clone assigned c in original")
	}
	if env.Digits() != jabr.DefaultDigits {
		t.Errorf("clone changed original digits to %d", env.Digits())
	}
	if v, _ := c.Lookup("a"); !v.Equal(one) {
		t.Errorf("clone has a = %v", v)
	}
	if v, _ := c.Lookup("b"); !v.Equal(two) {
		t.Errorf("clone has b = %v", v)
	}
	if c.Digits() != 5 {
		t.Errorf("clone has digits %d", c.Digits())
	}
}

func TestEnvAssignReserved(t *testing.T) {
	cases := []struct {
		name string
		val  sym.Expr
		err  interface{}
	}{
		{"symbol", sym.NewSymbol("x"), new(*sym.TypeError)},
		{"constant", sym.Pi, new(*sym.TypeError)},
		{"zero", sym.NewInt(0), new(*sym.DomainError)},
		{"negative", sym.NewInt(-3), new(*sym.DomainError)},
	}
	for _, name := range []string{jabr.DigitsName, jabr.PrecName} {
		for _, c := range cases {
			t.Run(name+"-"+c.name, func(t *testing.T) {
				env := jabr.NewEnv()
				err := env.Assign(name, c.val)
				if err == nil {
					t.Fatalf("assigning %v to %s succeeded", c.val, name)
				}
				if !errors.As(err, c.err) {
					t.Errorf("wrong error: want %T, got %#v", c.err, err)
				}
				if env.Digits() != jabr.DefaultDigits {
					t.Errorf("failed assignment changed digits to %d", env.Digits())
				}
				if _, ok := env.Lookup(name); !ok {
					t.Errorf("%s is unreadable", name)
				}
			})
		}
	}
}

func TestEnvInvalidPrecisionOption(t *testing.T) {
	cases := []struct {
		name string
		opt  jabr.EnvOption
	}{
		{"dps-symbol", jabr.SetVar(jabr.DigitsName, sym.NewSymbol("x"))},
		{"prec-zero", jabr.SetVar(jabr.PrecName, sym.NewInt(0))},
		{"vars-negative", jabr.SetVars(map[string]sym.Expr{jabr.DigitsName: sym.NewInt(-1)})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("no panic")
				}
			}()
			jabr.NewEnv(c.opt)
		})
	}
}
