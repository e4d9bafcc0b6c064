package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of a statement.
type node struct {
	kind nodeKind

	// name is the number text, constant name, or function name.
	name  string
	param string
	num   float64
	fn    builtinFunc
	// height is the number of operator levels below and including this node.
	// Leaves have height 0.
	height int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // num
	nodeConst // lookup(name)

	nodeCall // name is function to call with left as its argument

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right

	nodeAssignConst // evaluate left, store as name
	nodeAssignFunc  // store left as the body of name(param)
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeConst:
		return "Const"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	case nodeAssignConst:
		return "AssignConst"
	case nodeAssignFunc:
		return "AssignFunc"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node fully parenthesized, so that the output parses to the
// same tree.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeAssignConst:
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b)
		return
	case nodeAssignFunc:
		b.WriteString(n.name)
		b.WriteByte('(')
		b.WriteString(n.param)
		b.WriteString(") = ")
		n.left.fmt(b)
		return
	}
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum, nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeAdd:
		n.left.fmt(b)
		b.WriteString(" + ")
		n.right.fmt(b)
	case nodeSub:
		n.left.fmt(b)
		b.WriteString(" - ")
		n.right.fmt(b)
	case nodeMul:
		n.left.fmt(b)
		b.WriteString(" * ")
		n.right.fmt(b)
	case nodeDiv:
		n.left.fmt(b)
		b.WriteString(" / ")
		n.right.fmt(b)
	case nodePow:
		n.left.fmt(b)
		b.WriteString(" ^ ")
		n.right.fmt(b)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// names adds the constant names the subtree refers to.
func (n *node) names(seen map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeConst {
		seen[n.name] = true
	}
	n.left.names(seen)
	n.right.names(seen)
}
