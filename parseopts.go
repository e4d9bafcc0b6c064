package calc

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 256

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing.
type parsectx struct {
	// depth is the current subexpression nesting depth. The whole expression
	// is at depth 0.
	depth int
	// max is the largest allowed depth and tree height.
	max int
}

// enter records descending into a subexpression. col is the position to
// report if doing so exceeds the depth limit.
func (p *parsectx) enter(col int) error {
	if p.depth > p.max {
		return &DepthError{Col: col, Max: p.max}
	}
	p.depth++
	return nil
}

// grow sets the height of an operator or call node from its operands and
// checks it against the limit. Chains of left-associative operators are built
// without recursion in the parser, so only this catches them.
func (p *parsectx) grow(n *node, col int) error {
	n.height = n.left.height + 1
	if n.right != nil && n.right.height >= n.left.height {
		n.height = n.right.height + 1
	}
	if n.height > p.max {
		return &DepthError{Col: col, Max: p.max}
	}
	return nil
}

func (p *parsectx) leave() {
	p.depth--
}

// DepthOption is an option that applies both to parsing and to interpreters.
type DepthOption interface {
	ParseOption
	Option
}

type depthopt int

// MaxDepth limits how deeply expressions may nest. As a ParseOption, it
// bounds parentheses, calls, and the height of the operator tree, so that
// "1+2" and "(1)" need a limit of 1 and "1+2+3" and "((1))" need 2. The left
// side of a definition does not count. As an Option for an Interpreter, it
// also bounds nested calls to user-defined functions. Limits less than 1 are
// treated as 1.
func MaxDepth(n int) DepthOption {
	if n < 1 {
		n = 1
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.max = int(o)
	return p
}

func (depthopt) interpOption() {}
