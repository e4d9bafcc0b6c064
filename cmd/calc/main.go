package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/zephyrtronium/calc"
)

func main() {
	var (
		inname, verb, cfgname, histname string
		given                           []string
		echo, verbose, quiet            bool
		depth                           int
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`constant definitions must be "name=value", not %q`, s)
		}
		given = append(given, strings.TrimSpace(d[0])+" = "+strings.TrimSpace(d[1]))
		return nil
	}
	home, _ := os.UserHomeDir()
	flag.StringVar(&inname, "in", "", "input file, one statement per line (- for stdin)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value constant definition (any number of times)", addgiven)
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.IntVar(&depth, "depth", calc.DefaultMaxDepth, "maximum nesting of expressions and function calls")
	flag.StringVar(&histname, "history", filepath.Join(home, ".calc_history"), "REPL history file (empty to disable)")
	flag.BoolVar(&verbose, "v", false, "log definitions and function calls")
	flag.BoolVar(&quiet, "q", false, "log only errors")
	flag.Parse()
	switch {
	case verbose:
		log.SetLogLevel(log.Verbose)
	case quiet:
		log.SetLogLevel(log.Error)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg := new(config)
	if cfgname != "" {
		var err error
		cfg, err = readConfig(cfgname)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}
	if !set["fmt"] && cfg.Format != "" {
		verb = cfg.Format
	}
	if !set["depth"] && cfg.MaxDepth != 0 {
		depth = cfg.MaxDepth
	}
	if depth < 1 {
		log.Fatalf("depth (%d) must be positive", depth)
	}

	it := calc.NewInterpreter(calc.SetConsts(cfg.Consts), calc.MaxDepth(depth))
	for _, d := range append(cfg.Defs, given...) {
		if _, err := it.Run(d); err != nil {
			log.Fatalf("defining %s: %v", d, err)
		}
	}

	r := runner{
		it:    it,
		out:   os.Stdout,
		verb:  verb + "\n",
		depth: depth,
		echo:  echo,
	}
	var err error
	switch {
	case flag.NArg() != 0:
		for _, arg := range flag.Args() {
			if err = r.line(arg); err != nil {
				break
			}
		}
	case inname != "":
		var in io.ReadCloser = os.Stdin
		if inname != "-" {
			in, err = os.Open(inname)
			if err != nil {
				log.Fatalf("%v", err)
			}
		}
		err = r.lines(in)
		in.Close()
	default:
		err = repl(&r, histname)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// repl runs an interactive session until EOF.
func repl(r *runner, histname string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return complete(r.it.Names(), line, pos)
	})
	if histname != "" {
		if f, err := os.Open(histname); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := os.Create(histname)
			if err != nil {
				log.Warnf("saving history: %v", err)
				return
			}
			if _, err := ln.WriteHistory(f); err != nil {
				log.Warnf("saving history: %v", err)
			}
			f.Close()
		}()
	}
	for {
		line, err := ln.Prompt("> ")
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			fmt.Fprintln(r.out)
			return nil
		default:
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if err := r.line(line); err != nil {
			return err
		}
	}
}

// complete finds the names which could complete the identifier ending at pos
// in line.
func complete(names []string, line string, pos int) (head string, completions []string, tail string) {
	rs := []rune(line)
	if pos > len(rs) {
		pos = len(rs)
	}
	start := pos
	for start > 0 && (rs[start-1] == '_' || unicode.IsLetter(rs[start-1]) || unicode.IsDigit(rs[start-1])) {
		start--
	}
	head, word, tail := string(rs[:start]), string(rs[start:pos]), string(rs[pos:])
	for _, name := range names {
		if strings.HasPrefix(name, word) {
			completions = append(completions, name)
		}
	}
	return head, completions, tail
}
