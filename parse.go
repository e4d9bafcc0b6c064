package calc

import (
	"io"
	"sort"
	"strconv"
	"strings"
)

// Stmt = Assign | Expr
// Assign = ident '=' Expr | ident '(' ident ')' '=' Expr
// Expr = num | name | Call | Neg | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Stmt is a parsed statement that can be evaluated by an Interpreter. The
// zero Stmt is an empty statement; evaluating it is an error.
type Stmt struct {
	// n is the root node of the statement.
	n *node
}

// Parse parses a statement so it can be evaluated by an interpreter. The
// given options are applied in order. The entire input is one statement.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Stmt, error) {
	scan := lex(src)
	p := parsectx{max: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	n, err := parsestmt(scan, &p)
	if err != nil {
		return nil, err
	}
	return &Stmt{n: n}, nil
}

// ParseString is a shortcut to parse a statement from a string.
func ParseString(src string, opts ...ParseOption) (*Stmt, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parsestmt parses a complete statement up to EOF.
func parsestmt(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenIdent {
		n, err := parseassign(scan, p, tok)
		if n != nil || err != nil {
			return n, err
		}
	} else {
		scan.push(tok)
	}
	return parseexpr(scan, p)
}

// parseassign parses the definition beginning with name, if the tokens
// following it make the statement a definition. Otherwise, parseassign
// pushes back everything it scanned, including name, and returns nil, nil.
func parseassign(scan *lexer, p *parsectx, name lexToken) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenAssign:
		// name = expr
		rhs, err := parseexpr(scan, p)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeAssignConst, name: name.text, left: rhs}, nil
	case tokenOpen:
		// name(param) = expr, or else a call.
		param, err := scan.next()
		if err != nil {
			return nil, err
		}
		if param.kind == tokenIdent {
			cl, err := scan.next()
			if err != nil {
				return nil, err
			}
			if cl.kind == tokenClose {
				eq, err := scan.next()
				if err != nil {
					return nil, err
				}
				if eq.kind == tokenAssign {
					body, err := parseexpr(scan, p)
					if err != nil {
						return nil, err
					}
					return &node{kind: nodeAssignFunc, name: name.text, param: param.text, left: body}, nil
				}
				scan.push(eq)
			}
			scan.push(cl)
		}
		scan.push(param)
	}
	scan.push(tok)
	scan.push(name)
	return nil, nil
}

// parseexpr parses an entire expression which must extend to EOF.
func parseexpr(scan *lexer, p *parsectx) (*node, error) {
	n, err := parseterm(scan, p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if n == nil {
		// parseterm only returns nil without error on a close bracket.
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return n, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression ending at a close bracket, the result is nil with no error;
// callers must create an error in contexts where that is illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	if err := p.enter(scan.col); err != nil {
		return nil, err
	}
	defer p.leave()
	n, err := parselhs(scan, p)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				panic("calc: lexer produced unknown operator " + strconv.Quote(tok.text))
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
			if err := p.grow(n, tok.pos); err != nil {
				return nil, err
			}
		case tokenNum, tokenIdent, tokenOpen:
			return nil, &TokenError{Col: tok.pos, Text: tok.text}
		case tokenClose, tokenAssign, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && v == 0 {
			// Overflow gives ±Inf with an error, which is the result we want.
			// Anything else means the lexer accepted a bad number.
			panic("calc: invalid number " + strconv.Quote(tok.text) + ": " + err.Error())
		}
		n = &node{kind: nodeNum, name: tok.text, num: v}
	case tokenIdent:
		open, err := scan.next()
		if err != nil {
			return nil, err
		}
		if open.kind != tokenOpen {
			scan.push(open)
			n = &node{kind: nodeConst, name: tok.text}
			break
		}
		arg, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if arg == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: nodeCall, name: tok.text, fn: lookupFunc(tok.text), left: arg}
		if err := p.grow(n, tok.pos); err != nil {
			return nil, err
		}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
		if err := p.grow(n, tok.pos); err != nil {
			return nil, err
		}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// Let the caller decide what an empty group means.
		scan.push(tok)
		return nil, nil
	case tokenAssign:
		return nil, &TokenError{Col: tok.pos, Text: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return n, nil
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression
// began with an open bracket.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	switch tok.kind {
	case tokenEOF:
		if !open {
			panic("calc: EOF at end of ungrouped expression is not an error")
		}
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: "(", Right: ""}
	case tokenClose:
		if open {
			panic("calc: close bracket at end of group is not an error")
		}
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenAssign:
		// Definitions are only recognized at the start of a statement.
		return &TokenError{Col: tok.pos, Text: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// Names returns the constant names the statement refers to, sorted. A
// function definition's parameter is not included.
func (s *Stmt) Names() []string {
	if s.empty() {
		return nil
	}
	seen := make(map[string]bool)
	if s.n.kind == nodeAssignFunc {
		s.n.left.names(seen)
		delete(seen, s.n.param)
	} else {
		s.n.names(seen)
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsDefinition returns whether the statement defines a constant or function.
func (s *Stmt) IsDefinition() bool {
	if s.empty() {
		return false
	}
	return s.n.kind == nodeAssignConst || s.n.kind == nodeAssignFunc
}

// String creates a string representation of the parsed statement with every
// term in parentheses.
func (s *Stmt) String() string {
	if s.empty() {
		return ""
	}
	return s.n.String()
}

func (s *Stmt) empty() bool {
	return s == nil || s.n == nil
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Negation binds more
// tightly than exponentiation, so -2^2 is (-2)^2.
func unop(text string) operator {
	switch text {
	case "-":
		return operator{20, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
