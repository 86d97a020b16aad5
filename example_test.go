package jabr_test

import (
	"fmt"
	"strings"

	"github.com/zephyrtronium/jabr"
	"github.com/zephyrtronium/jabr/sym"
)

func Example() {
	s := jabr.NewSession(nil)
	for _, line := range []string{
		"x := 2",
		"(x + 1)**2",
		"(y+1)**2 // expand",
		"_ // factor",
		"3 <= 4",
		"5!",
	} {
		r, err := s.EvalString(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(r)
	}
	// Output:
	// 2
	// 9
	// y**2 + 2*y + 1
	// (y + 1)**2
	// 3 ≤ 4
	// 120
}

func ExampleParse() {
	n, err := jabr.Parse(strings.NewReader("2x^2 + 1"))
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output:
	// (expression (term 2 * (exponential x 2)) + 1)
}

func ExampleCompile() {
	n, err := jabr.ParseString("a*b + a")
	if err != nil {
		panic(err)
	}
	env := jabr.NewEnv(jabr.SetVar("a", sym.NewInt(3)))
	v, err := jabr.Compile(n, env)
	if err != nil {
		panic(err)
	}
	fmt.Println(jabr.Print(v))
	// Output:
	// 3*b + 3
}

func ExampleSession_Eval() {
	s := jabr.NewSession(jabr.NewEnv(jabr.Digits(10)))
	src := strings.NewReader("r := 2\npi*r**2 // N\n")
	for i := 0; i < 2; i++ {
		r, err := s.Eval(src, jabr.StopOn('\n'))
		if err != nil {
			panic(err)
		}
		fmt.Println(r)
	}
	// Output:
	// 2
	// 12.56637061
}
