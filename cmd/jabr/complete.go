package main

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zephyrtronium/jabr"
)

// shortcuts maps names typed after a backslash to the symbols they stand for.
var shortcuts = map[string]string{
	"alpha":   "α",
	"beta":    "β",
	"gamma":   "γ",
	"delta":   "δ",
	"epsilon": "ε",
	"zeta":    "ζ",
	"eta":     "η",
	"theta":   "θ",
	"iota":    "ι",
	"kappa":   "κ",
	"lambda":  "λ",
	"mu":      "μ",
	"nu":      "ν",
	"omicron": "ο",
	"xi":      "ξ",
	"pi":      "π",
	"rho":     "ρ",
	"sigma":   "σ",
	"tau":     "τ",
	"upsilon": "υ",
	"phi":     "φ",
	"chi":     "χ",
	"psi":     "ψ",
	"omega":   "ω",
	"Alpha":   "Α",
	"Beta":    "Β",
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Epsilon": "Ε",
	"Zeta":    "Ζ",
	"Eta":     "Η",
	"Theta":   "Θ",
	"Iota":    "Ι",
	"Kappa":   "Κ",
	"Lambda":  "Λ",
	"Mu":      "Μ",
	"Nu":      "Ν",
	"Omicron": "Ο",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Rho":     "Ρ",
	"Sigma":   "Σ",
	"Tau":     "Τ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Chi":     "Χ",
	"Psi":     "Ψ",
	"Omega":   "Ω",
	"inf":     "∞",
	"le":      "≤",
	"leq":     "≤",
	"ge":      "≥",
	"geq":     "≥",
	"ne":      "≠",
	"neq":     "≠",
}

// complete completes the word at the end of line. A word after a backslash,
// as in \Gamma or \le, becomes the symbol it names; any other word is
// completed from the lexicon.
func complete(line string) []string {
	k := 0
	if i := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	}); i >= 0 {
		_, sz := utf8.DecodeRuneInString(line[i:])
		k = i + sz
	}
	head, word := line[:k], line[k:]
	if word == "" {
		return nil
	}
	if strings.HasSuffix(head, `\`) {
		head = head[:len(head)-1]
		if g, ok := shortcuts[word]; ok {
			return []string{head + g}
		}
		var names []string
		for name := range shortcuts {
			if strings.HasPrefix(name, word) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		r := make([]string, 0, len(names))
		for _, name := range names {
			r = append(r, head+shortcuts[name])
		}
		return r
	}
	var r []string
	for _, name := range jabr.Names() {
		if strings.HasPrefix(name, word) {
			r = append(r, head+name)
		}
	}
	return r
}
