package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// lexToken is a single token and the column at which it starts.
type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + "(" + strconv.Quote(t.text) + ")@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF is the end of the line.
	tokenEOF
	// tokenNum is a decimal literal.
	tokenNum
	// tokenIdent is a constant, function, or parameter name.
	tokenIdent
	// tokenOp is one of Operators.
	tokenOp
	tokenOpen
	tokenClose
	// tokenAssign is the = of a definition.
	tokenAssign
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenAssign:
		return "Assign"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators lists the operator runes.
const Operators = "+-*/^"

// delimits reports whether r ends a number or name.
func delimits(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(Operators+"()=", r)
}

type lexer struct {
	in  io.RuneScanner
	buf strings.Builder
	// col is the column of the next rune to be read.
	col int
	// pending holds pushed tokens, most recent last.
	pending []lexToken
	done    bool
}

func lex(in io.RuneScanner) *lexer {
	return &lexer{in: in, col: 1}
}

// push returns a token to the lexer. Pushed tokens come back from next in
// reverse order, so a sequence of lookahead is undone by pushing it from last
// to first.
func (l *lexer) push(tok lexToken) {
	if tok.kind == tokenNone {
		panic("calc: push of empty token")
	}
	l.pending = append(l.pending, tok)
}

// must pops the most recently pushed token. It panics if none is pending.
func (l *lexer) must() lexToken {
	n := len(l.pending) - 1
	if n < 0 {
		panic("calc: no pushed token")
	}
	tok := l.pending[n]
	l.pending = l.pending[:n]
	return tok
}

func (l *lexer) read() (rune, error) {
	r, sz, err := l.in.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

func (l *lexer) unread() {
	if err := l.in.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// peek returns the next rune without consuming it. ok is false at the end of
// input or on a read error, which the next call to next reports.
func (l *lexer) peek() (r rune, ok bool) {
	r, err := l.read()
	if err != nil {
		return 0, false
	}
	l.unread()
	return r, true
}

// next scans the next token. The end of input yields one EOF token with a nil
// error; after that, unless a token is pushed, next returns io.EOF.
func (l *lexer) next() (lexToken, error) {
	if len(l.pending) != 0 {
		return l.must(), nil
	}
	if l.done {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		tok := lexToken{pos: l.col}
		r, err := l.read()
		switch {
		case errors.Is(err, io.EOF):
			tok.kind = tokenEOF
			l.done = true
			return tok, nil
		case err != nil:
			return tok, err
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unread()
			if err := l.number(); err != nil {
				return tok, err
			}
			tok.kind, tok.text = tokenNum, l.buf.String()
		case r == '_', unicode.IsLetter(r):
			l.unread()
			l.name()
			tok.kind, tok.text = tokenIdent, l.buf.String()
		case r == '(':
			tok.kind, tok.text = tokenOpen, "("
		case r == ')':
			tok.kind, tok.text = tokenClose, ")"
		case r == '=':
			tok.kind, tok.text = tokenAssign, "="
		case strings.ContainsRune(Operators, r):
			tok.kind, tok.text = tokenOp, string(r)
		default:
			l.buf.WriteRune(r)
			return tok, l.fail("")
		}
		return tok, nil
	}
}

// number scans a decimal literal: digits with an optional fraction, then an
// optional signed exponent. At least one digit must precede the exponent.
func (l *lexer) number() error {
	n := l.digits()
	if l.accept(".") {
		n += l.digits()
	}
	if n == 0 {
		return l.fail("number")
	}
	if l.accept("eE") {
		l.accept("+-")
		if l.digits() == 0 {
			return l.fail("number")
		}
	}
	if r, ok := l.peek(); ok && !delimits(r) {
		return l.fail("number")
	}
	return nil
}

// digits consumes a run of decimal digits and returns its length.
func (l *lexer) digits() int {
	n := 0
	for {
		r, ok := l.peek()
		if !ok || r < '0' || r > '9' {
			return n
		}
		l.read()
		l.buf.WriteRune(r)
		n++
	}
}

// accept consumes the next rune if it is in set.
func (l *lexer) accept(set string) bool {
	r, ok := l.peek()
	if !ok || !strings.ContainsRune(set, r) {
		return false
	}
	l.read()
	l.buf.WriteRune(r)
	return true
}

// name scans an identifier. The caller has already seen its first rune.
func (l *lexer) name() {
	for {
		r, ok := l.peek()
		if !ok || (r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)) {
			return
		}
		l.read()
		l.buf.WriteRune(r)
	}
}

// fail creates a LexError. If the next rune cannot end the token, it is
// consumed and reported as the invalid rune.
func (l *lexer) fail(kind string) error {
	if kind != "" {
		if r, ok := l.peek(); ok && !delimits(r) {
			l.read()
			l.buf.WriteRune(r)
		}
	}
	return &LexError{Text: l.buf.String(), Kind: kind, Col: l.col - 1}
}

// LexError is an invalid token. It implements SyntaxError.
type LexError struct {
	// Text is what was scanned of the token, ending with the invalid rune.
	Text string
	// Kind is "number", or empty if the first rune began no token.
	Kind string
	// Col is the column of the last rune of Text.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
