package calc

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"fortio.org/log"
)

// Interpreter evaluates statements and holds the constants and functions they
// define. Definitions persist until they are redefined. It is safe to use an
// Interpreter concurrently; statements are evaluated one at a time.
type Interpreter struct {
	mu     sync.Mutex
	consts map[string]float64
	funcs  map[string]userFunc
	max    int
}

// userFunc is a user-defined function of one variable.
type userFunc struct {
	param string
	body  *node
}

// scope is the parameter binding of a user function call.
type scope struct {
	name string
	val  float64
}

// Option is an option used when creating an interpreter.
type Option interface {
	interpOption()
}

type (
	constopt struct {
		name string
		val  float64
	}
	constsopt map[string]float64
)

func (constopt) interpOption()  {}
func (constsopt) interpOption() {}

// SetConst defines a constant in the interpreter.
func SetConst(name string, val float64) Option {
	return constopt{name, val}
}

// SetConsts defines any number of constants in the interpreter.
func SetConsts(consts map[string]float64) Option {
	return constsopt(consts)
}

// NewInterpreter creates an interpreter with an empty environment, then
// applies options to it. Constants with built-in names are stored but can
// never be read, since built-ins win every lookup.
func NewInterpreter(opts ...Option) *Interpreter {
	it := Interpreter{
		consts: make(map[string]float64),
		funcs:  make(map[string]userFunc),
		max:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case constopt:
			it.setConst(opt.name, opt.val)
		case constsopt:
			for k, v := range opt {
				it.setConst(k, v)
			}
		case depthopt:
			it.max = int(opt)
		default:
			panic("calc: unknown option type")
		}
	}
	return &it
}

func (it *Interpreter) setConst(name string, val float64) {
	if lookupConst(name) != constNone {
		log.Warnf("calc: constant %s is hidden by the built-in", name)
	}
	it.consts[name] = val
}

// Run parses and evaluates one statement.
func (it *Interpreter) Run(src string) (float64, error) {
	return it.RunFrom(strings.NewReader(src))
}

// RunFrom parses and evaluates one statement read to EOF from src.
func (it *Interpreter) RunFrom(src io.RuneScanner) (float64, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	s, err := Parse(src, depthopt(it.max))
	if err != nil {
		return 0, err
	}
	return s.n.eval(it, nil, 0)
}

// Eval evaluates a parsed statement. If the statement is a definition, the
// definition is applied. Constant definitions evaluate to the defined value,
// and function definitions evaluate to 0. A nil or zero Stmt is an
// *EmptyExpressionError.
func (it *Interpreter) Eval(s *Stmt) (float64, error) {
	if s.empty() {
		return 0, &EmptyExpressionError{}
	}
	it.mu.Lock()
	defer it.mu.Unlock()
	return s.n.eval(it, nil, 0)
}

// Const returns the value of a built-in or user-defined constant.
func (it *Interpreter) Const(name string) (float64, bool) {
	if c := lookupConst(name); c != constNone {
		return c.value(), true
	}
	it.mu.Lock()
	defer it.mu.Unlock()
	v, ok := it.consts[name]
	return v, ok
}

// Func returns the parameter name and a string representation of the body of
// a user-defined function.
func (it *Interpreter) Func(name string) (param, body string, ok bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	f, ok := it.funcs[name]
	if !ok {
		return "", "", false
	}
	return f.param, f.body.String(), true
}

// Names returns the names of all built-in and user-defined constants and
// functions, sorted and without duplicates.
func (it *Interpreter) Names() []string {
	funcs, consts := Builtins()
	seen := make(map[string]bool, len(funcs)+len(consts))
	for _, name := range funcs {
		seen[name] = true
	}
	for _, name := range consts {
		seen[name] = true
	}
	it.mu.Lock()
	for name := range it.consts {
		seen[name] = true
	}
	for name := range it.funcs {
		seen[name] = true
	}
	it.mu.Unlock()
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone creates a copy of an interpreter. Definitions made in either
// interpreter afterward do not affect the other.
func (it *Interpreter) Clone() *Interpreter {
	it.mu.Lock()
	defer it.mu.Unlock()
	n := Interpreter{
		consts: make(map[string]float64, len(it.consts)),
		funcs:  make(map[string]userFunc, len(it.funcs)),
		max:    it.max,
	}
	for k, v := range it.consts {
		n.consts[k] = v
	}
	// Bodies are never modified, so they can be shared.
	for k, v := range it.funcs {
		n.funcs[k] = v
	}
	return &n
}

// eval computes the value of the node. sc is the parameter binding of the
// innermost user function call, if any, and depth is the number of user
// function calls in progress.
func (n *node) eval(it *Interpreter, sc *scope, depth int) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeConst:
		if c := lookupConst(n.name); c != constNone {
			return c.value(), nil
		}
		if sc != nil && sc.name == n.name {
			return sc.val, nil
		}
		if v, ok := it.consts[n.name]; ok {
			return v, nil
		}
		return 0, &UnknownConstantError{Name: n.name}
	case nodeCall:
		if n.fn != fnNone {
			x, err := n.left.eval(it, sc, depth)
			if err != nil {
				return 0, err
			}
			return n.fn.call(x), nil
		}
		f, ok := it.funcs[n.name]
		if !ok {
			return 0, &UnknownFunctionError{Name: n.name}
		}
		if depth >= it.max {
			return 0, &RecursionError{Func: n.name, Max: it.max}
		}
		x, err := n.left.eval(it, sc, depth)
		if err != nil {
			return 0, err
		}
		log.LogVf("calc: call %s(%s = %g)", n.name, f.param, x)
		return f.body.eval(it, &scope{name: f.param, val: x}, depth+1)
	case nodeNeg:
		x, err := n.left.eval(it, sc, depth)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(it, sc, depth)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(it, sc, depth)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return l + r, nil
		case nodeSub:
			return l - r, nil
		case nodeMul:
			return l * r, nil
		case nodeDiv:
			return l / r, nil
		default:
			return math.Pow(l, r), nil
		}
	case nodeAssignConst:
		v, err := n.left.eval(it, sc, depth)
		if err != nil {
			return 0, err
		}
		// A built-in name is stored like any other, but reads never reach it.
		if lookupConst(n.name) != constNone {
			log.Warnf("calc: constant %s is hidden by the built-in", n.name)
		}
		it.consts[n.name] = v
		log.LogVf("calc: define %s = %g", n.name, v)
		return v, nil
	case nodeAssignFunc:
		if lookupFunc(n.name) != fnNone {
			log.Warnf("calc: function %s is hidden by the built-in", n.name)
		}
		if lookupConst(n.param) != constNone {
			log.Warnf("calc: parameter %s of %s is hidden by the built-in", n.param, n.name)
		}
		it.funcs[n.name] = userFunc{param: n.param, body: n.left}
		log.LogVf("calc: define %s(%s) = %v", n.name, n.param, n.left)
		return 0, nil
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// UnknownConstantError is an error from a lookup for a constant that is
// neither built in nor defined.
type UnknownConstantError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnknownConstantError) Error() string {
	return "undefined constant: " + strconv.Quote(err.Name)
}

// UnknownFunctionError is an error from a call to a function that is neither
// built in nor defined.
type UnknownFunctionError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "undefined function: " + strconv.Quote(err.Name)
}

// RecursionError is an error from calls to user-defined functions nesting
// more deeply than the interpreter allows.
type RecursionError struct {
	// Func is the function whose call exceeded the limit.
	Func string
	// Max is the limit.
	Max int
}

func (err *RecursionError) Error() string {
	return "calling " + err.Func + ": calls nested deeper than " + strconv.Itoa(err.Max)
}
