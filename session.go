package jabr

import (
	"io"
	"strings"

	"github.com/zephyrtronium/jabr/sym"
)

// Session evaluates input lines one at a time against a persistent
// environment. It is not safe to use a Session concurrently.
type Session struct {
	env   *Env
	count int
}

// NewSession creates a session. If env is nil, the session uses a new
// environment with default options.
func NewSession(env *Env) *Session {
	if env == nil {
		env = NewEnv()
	}
	return &Session{env: env}
}

// Env returns the session's environment.
func (s *Session) Env() *Env {
	return s.env
}

// Count returns the number of lines the session has evaluated successfully.
func (s *Session) Count() int {
	return s.count
}

// Run evaluates a parsed line, binds the result to LastResult, and returns
// the printed result. Errors are *EvaluationError.
func (s *Session) Run(n *Node) (string, error) {
	v, err := s.Value(n)
	if err != nil {
		return "", err
	}
	return Print(v), nil
}

// Value is like Run but returns the result without printing it.
func (s *Session) Value(n *Node) (sym.Expr, error) {
	v, err := Compile(n, s.env)
	if err != nil {
		return nil, err
	}
	s.count++
	s.env.bind(LastResult, v)
	return v, nil
}

// Eval parses a line from src and evaluates it. Parse errors implement
// InputError.
func (s *Session) Eval(src io.RuneScanner, opts ...ParseOption) (string, error) {
	n, err := Parse(src, opts...)
	if err != nil {
		return "", err
	}
	return s.Run(n)
}

// EvalString is a shortcut to evaluate a string.
func (s *Session) EvalString(src string) (string, error) {
	return s.Eval(strings.NewReader(src))
}
