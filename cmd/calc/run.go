package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"

	"github.com/zephyrtronium/calc"
)

// runner evaluates input lines and prints their results.
type runner struct {
	it    *calc.Interpreter
	out   io.Writer
	verb  string
	depth int
	echo  bool
}

// line evaluates one line of input. Errors are printed rather than returned;
// the returned error is only for errors writing output.
func (r *runner) line(src string) error {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "#") {
		return nil
	}
	s, err := calc.ParseString(src, calc.MaxDepth(r.depth))
	if err != nil {
		_, err = fmt.Fprintln(r.out, describe(src, err))
		return err
	}
	if r.echo {
		if _, err := fmt.Fprintf(r.out, "%v : ", s); err != nil {
			return err
		}
	}
	v, err := r.it.Eval(s)
	if err != nil {
		_, err = fmt.Fprintln(r.out, err)
		return err
	}
	if s.IsDefinition() {
		log.LogVf("defined %v", s)
	}
	_, err = fmt.Fprintf(r.out, r.verb, v)
	return err
}

// lines evaluates each line read from in.
func (r *runner) lines(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := r.line(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// describe formats a syntax error with a caret under the offending column.
func describe(src string, err error) string {
	se, ok := err.(calc.SyntaxError)
	if !ok || se.Pos() < 1 {
		return err.Error()
	}
	col := se.Pos() - 1
	if n := len([]rune(src)); col > n {
		col = n
	}
	return src + "\n" + strings.Repeat(" ", col) + "^ " + err.Error()
}
