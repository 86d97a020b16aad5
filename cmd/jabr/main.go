package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/jabr"
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

func main() {
	log.SetFlags(0)
	var (
		inname, hist string
		with         [][2]string
		nl, echo     bool
		digits, prec int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default interactive if stdin is a terminal and no args given)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&digits, "digits", jabr.DefaultDigits, "decimal precision of real numbers")
	flag.IntVar(&prec, "p", 0, "binary precision of real numbers; overrides -digits if positive")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.StringVar(&hist, "history", defaultHistory(), "interactive history file; empty to disable")
	flag.Parse()
	if digits < 1 {
		log.Fatalf("precision (%d) must be positive", digits)
	}
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	opt := jabr.Digits(uint(digits))
	if prec > 0 {
		opt = jabr.Prec(uint(prec))
	}
	env := jabr.NewEnv(opt)
	for _, d := range with {
		nm, vl := d[0], d[1]
		n, err := jabr.ParseString(vl)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		v, err := jabr.Compile(n, env)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		if err := env.Assign(nm, v); err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
	}
	sess := jabr.NewSession(env)

	if inname == "" && flag.NArg() == 0 && isTerminal(os.Stdin) {
		repl(sess, hist, echo)
		return
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}
	var opts []jabr.ParseOption
	if nl {
		opts = append(opts, jabr.StopOn('\n'))
	}
	failed := false
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if done, err := skipSpace(in); err != nil {
				log.Fatal(err)
			} else if done {
				break
			}
			n, err := jabr.Parse(in, opts...)
			if err != nil {
				failed = true
				fmt.Fprintln(os.Stderr, err)
				if !nl {
					break
				}
				if err := skipLine(in); err != nil {
					log.Fatal(err)
				}
				continue
			}
			if echo {
				fmt.Printf("%v : ", n)
			}
			r, err := sess.Run(n)
			if err != nil {
				failed = true
				fmt.Println(err)
				continue
			}
			fmt.Println(r)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// repl runs an interactive session until EOF.
func repl(sess *jabr.Session, hist string, echo bool) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(hist); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}
	for {
		k := sess.Count() + 1
		line, err := ln.Prompt(fmt.Sprintf("In [%d]: ", k))
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stderr, red(err.Error()))
			}
			fmt.Println()
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		n, err := jabr.ParseString(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, red("Got unexpected input while parsing"))
			fmt.Fprintln(os.Stderr, red(caret(line, err)))
			continue
		}
		if echo {
			fmt.Println(n)
		}
		r, err := sess.Run(n)
		if err != nil {
			fmt.Fprintln(os.Stderr, red("ERROR: Could not evaluate expression"))
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Printf("%s %s\n\n", green(fmt.Sprintf("Out[%d]:", k)), r)
	}
}

// caret formats a parse error with a marker under the offending column.
func caret(line string, err error) string {
	var ie jabr.InputError
	if !errors.As(err, &ie) || ie.Pos() < 1 {
		return err.Error()
	}
	return line + "\n" + strings.Repeat(" ", ie.Pos()-1) + "^\n" + err.Error()
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jabr_history")
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// skipSpace consumes whitespace from in. The result is true at EOF.
func skipSpace(in io.RuneScanner) (bool, error) {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			if err == io.EOF {
				return true, nil
			}
			return false, err
		}
		if !unicode.IsSpace(r) {
			return false, in.UnreadRune()
		}
	}
}

// skipLine consumes the rest of the current line.
func skipLine(in io.RuneScanner) error {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
