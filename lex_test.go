package jabr

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}}, 0},
		{"1E1", []lexToken{{text: "1E1", kind: tokenNum, pos: 1}}, 0},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}}, 0},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}}, 0},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}}, 0},
		{".1e1", []lexToken{{text: ".1e1", kind: tokenNum, pos: 1}}, 0},
		{"1.", []lexToken{{text: "1.", kind: tokenNum, pos: 1}}, 0},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		// a number followed by a name
		{"1a", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 0},
		{"2e", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}}, 0},
		{"2e+", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}, {text: "+", kind: tokenOp, pos: 3}}, 0},
		{"2exp", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "exp", kind: tokenIdent, pos: 2}}, 0},
		{"2e-x", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "x", kind: tokenIdent, pos: 4}}, 0},
		// bad numbers
		{".", []lexToken{{pos: 1}}, 1},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}}, 1},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"e1", []lexToken{{text: "e1", kind: tokenIdent, pos: 1}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, 0},
		{"eπ", []lexToken{{text: "eπ", kind: tokenIdent, pos: 1}}, 0},
		{"_1234_", []lexToken{{text: "_1234_", kind: tokenIdent, pos: 1}}, 0},
		{"_", []lexToken{{text: "_", kind: tokenIdent, pos: 1}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		{"∞", []lexToken{{text: "oo", kind: tokenIdent, pos: 1}}, 0},
		{"Γ(x)", []lexToken{{text: "Γ", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}, {text: "x", kind: tokenIdent, pos: 3}, {text: ")", kind: tokenClose, pos: 4}}, 0},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}, 0},
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "+", kind: tokenOp, pos: 2}}, 0},
		{"a--b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, 0},
		{"**", []lexToken{{text: "**", kind: tokenOp, pos: 1}}, 0},
		{"***", []lexToken{{text: "**", kind: tokenOp, pos: 1}, {text: "*", kind: tokenOp, pos: 3}}, 0},
		{"//", []lexToken{{text: "//", kind: tokenOp, pos: 1}}, 0},
		{":=", []lexToken{{text: ":=", kind: tokenOp, pos: 1}}, 0},
		{"x!=y", []lexToken{{text: "x", kind: tokenIdent, pos: 1}, {text: "!=", kind: tokenOp, pos: 2}, {text: "y", kind: tokenIdent, pos: 4}}, 0},
		{"x!!!", []lexToken{{text: "x", kind: tokenIdent, pos: 1}, {text: "!!", kind: tokenOp, pos: 2}, {text: "!", kind: tokenOp, pos: 4}}, 0},
		{"<=>=", []lexToken{{text: "<=", kind: tokenOp, pos: 1}, {text: ">=", kind: tokenOp, pos: 3}}, 0},
		{"≤≥≠", []lexToken{{text: "≤", kind: tokenOp, pos: 1}, {text: "≥", kind: tokenOp, pos: 2}, {text: "≠", kind: tokenOp, pos: 3}}, 0},
		{"=", []lexToken{{text: "=", kind: tokenOp, pos: 1}}, 0},
		{"==", []lexToken{{text: "==", kind: tokenOp, pos: 1}}, 0},
		{"×÷", []lexToken{{text: "×", kind: tokenOp, pos: 1}, {text: "÷", kind: tokenOp, pos: 2}}, 0},
		// brackets and separators
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}, 0},
		{"[]", []lexToken{{text: "[", kind: tokenOpen, pos: 1}, {text: "]", kind: tokenClose, pos: 2}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokenOpen, pos: 1}, {text: "}", kind: tokenClose, pos: 2}}, 0},
		{",", []lexToken{{text: ",", kind: tokenSep, pos: 1}}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{":", []lexToken{{pos: 1, kind: tokenOp, text: ":"}}, 1},
		{";", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next("")
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for got, err := scan.next(""); got.kind != tokenEOF && err != io.EOF; got, err = scan.next("") {
			if c.errs > 0 {
				c.errs--
			}
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexStopOn(t *testing.T) {
	scan := lex(strings.NewReader("x\ny"))
	tok, err := scan.next("\n")
	if err != nil || tok.text != "x" {
		t.Fatalf("first token: got %v, %v", tok, err)
	}
	tok, err = scan.next("\n")
	if err != nil || tok.kind != tokenEOF {
		t.Fatalf("newline: want EOF, got %v, %v", tok, err)
	}
	if _, err := scan.next("\n"); err != io.EOF {
		t.Errorf("after EOF: want io.EOF, got %v", err)
	}
}
