package calc

import "math"

// builtinFunc identifies a built-in function. The zero value is no function.
type builtinFunc uint8

const (
	fnNone builtinFunc = iota
	fnSqrt
	fnLn
	fnAbs
	fnCos
	fnSin
	fnTan
	fnLog

	fnCount
)

// lookupFunc gets the built-in function with the given name, or fnNone if
// there is none.
func lookupFunc(name string) builtinFunc {
	switch name {
	case "sqrt":
		return fnSqrt
	case "ln":
		return fnLn
	case "abs":
		return fnAbs
	case "cos":
		return fnCos
	case "sin":
		return fnSin
	case "tan":
		return fnTan
	case "log", "log10":
		return fnLog
	default:
		return fnNone
	}
}

func (f builtinFunc) call(x float64) float64 {
	switch f {
	case fnSqrt:
		return math.Sqrt(x)
	case fnLn:
		return math.Log(x)
	case fnAbs:
		return math.Abs(x)
	case fnCos:
		return math.Cos(x)
	case fnSin:
		return math.Sin(x)
	case fnTan:
		return math.Tan(x)
	case fnLog:
		return math.Log10(x)
	default:
		panic("calc: call of invalid builtin")
	}
}

func (f builtinFunc) String() string {
	switch f {
	case fnSqrt:
		return "sqrt"
	case fnLn:
		return "ln"
	case fnAbs:
		return "abs"
	case fnCos:
		return "cos"
	case fnSin:
		return "sin"
	case fnTan:
		return "tan"
	case fnLog:
		return "log"
	default:
		return ""
	}
}

// builtinConst identifies a built-in constant. The zero value is no constant.
type builtinConst uint8

const (
	constNone builtinConst = iota
	constPi
	constE

	constCount
)

// lookupConst gets the built-in constant with the given name, or constNone if
// there is none.
func lookupConst(name string) builtinConst {
	switch name {
	case "pi":
		return constPi
	case "e":
		return constE
	default:
		return constNone
	}
}

func (c builtinConst) value() float64 {
	switch c {
	case constPi:
		return math.Pi
	case constE:
		return math.E
	default:
		panic("calc: value of invalid builtin constant")
	}
}

func (c builtinConst) String() string {
	switch c {
	case constPi:
		return "pi"
	case constE:
		return "e"
	default:
		return ""
	}
}

// Builtins returns the names of the built-in functions and constants.
func Builtins() (funcs, consts []string) {
	funcs = make([]string, 0, fnCount-1)
	for f := fnNone + 1; f < fnCount; f++ {
		funcs = append(funcs, f.String())
	}
	consts = make([]string, 0, constCount-1)
	for c := constNone + 1; c < constCount; c++ {
		consts = append(consts, c.String())
	}
	return funcs, consts
}
