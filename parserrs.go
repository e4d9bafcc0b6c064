package calc

import "strconv"

// OperatorError is an error indicating an operator in a position where it
// has no meaning, e.g. a binary-only operator at the start of an operand. It
// implements SyntaxError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" has no left operand")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input. It
// implements SyntaxError.
type BracketError struct {
	// Col is the position of the bracket or end of input.
	Col int
	// Left is the opening bracket, or empty if there was none.
	Left string
	// Right is the closing bracket, or empty if there was none.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token which cannot follow what came
// before it, like the second number in "2 3". It implements SyntaxError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the unexpected token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression, which
// includes blank input and operators missing their right operand.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// DepthError is an error indicating that an expression nests more deeply
// than the parser allows.
type DepthError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// SyntaxError is an error with position information. Every error resulting
// from malformed input implements SyntaxError.
type SyntaxError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ SyntaxError = (*OperatorError)(nil)
	_ SyntaxError = (*BracketError)(nil)
	_ SyntaxError = (*TokenError)(nil)
	_ SyntaxError = (*EmptyExpressionError)(nil)
	_ SyntaxError = (*DepthError)(nil)
	_ SyntaxError = (*LexError)(nil)
)
