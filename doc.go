// Package calc implements a line-oriented floating-point calculator.
//
// Each line is one statement: an expression such as "2 + 3 * 4", a constant
// definition such as "g = 9.81", or a function definition such as
// "sq(x) = x^2". Operators follow the usual precedence, "^" groups to the
// right, and unary minus binds tighter than "^", so "-2^2" is 4.
//
// An Interpreter keeps the constants and functions defined by earlier lines,
// so a REPL can feed it one line at a time with Run.
package calc
