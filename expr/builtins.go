package expr

import (
	"math"
	"sort"
	"strconv"
)

// builtin describes a numeric function callable from expressions.
// maxArgs < 0 means variadic.
type builtin struct {
	minArgs int
	maxArgs int
	fn      func(args []float64) float64
}

func (b builtin) arity() string {
	switch {
	case b.maxArgs < 0:
		return "at least " + strconv.Itoa(b.minArgs) + " arguments"
	case b.minArgs == b.maxArgs && b.minArgs == 1:
		return "1 argument"
	case b.minArgs == b.maxArgs:
		return strconv.Itoa(b.minArgs) + " arguments"
	default:
		return strconv.Itoa(b.minArgs) + ".." + strconv.Itoa(b.maxArgs) + " arguments"
	}
}

func unary(fn func(float64) float64) builtin {
	return builtin{minArgs: 1, maxArgs: 1, fn: func(args []float64) float64 { return fn(args[0]) }}
}

func binary(fn func(a, b float64) float64) builtin {
	return builtin{minArgs: 2, maxArgs: 2, fn: func(args []float64) float64 { return fn(args[0], args[1]) }}
}

var builtins = map[string]builtin{
	// Trigonometry.
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"atan2": binary(math.Atan2),
	"sec":   unary(func(x float64) float64 { return 1 / math.Cos(x) }),
	"csc":   unary(func(x float64) float64 { return 1 / math.Sin(x) }),
	"cot":   unary(func(x float64) float64 { return 1 / math.Tan(x) }),

	// Hyperbolic.
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"asinh": unary(math.Asinh),
	"acosh": unary(math.Acosh),
	"atanh": unary(math.Atanh),

	// Exponentials and logs. log is the natural log, as in most calculators.
	"exp":   unary(math.Exp),
	"expm1": unary(math.Expm1),
	"ln":    unary(math.Log),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"log2":  unary(math.Log2),
	"log1p": unary(math.Log1p),

	// Powers and roots.
	"pow":   binary(math.Pow),
	"sqrt":  unary(math.Sqrt),
	"cbrt":  unary(math.Cbrt),
	"hypot": binary(math.Hypot),

	// Rounding and sign.
	"abs":   unary(math.Abs),
	"sign":  unary(sign),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"trunc": unary(math.Trunc),

	"mod": binary(func(a, b float64) float64 { return a - b*math.Floor(a/b) }),
	"min": {minArgs: 1, maxArgs: -1, fn: func(args []float64) float64 {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Min(m, v)
		}
		return m
	}},
	"max": {minArgs: 1, maxArgs: -1, fn: func(args []float64) float64 {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Max(m, v)
		}
		return m
	}},
	"clamp": {minArgs: 3, maxArgs: 3, fn: func(args []float64) float64 {
		x, lo, hi := args[0], args[1], args[2]
		if lo > hi {
			lo, hi = hi, lo
		}
		return math.Max(lo, math.Min(hi, x))
	}},
}

func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Functions returns the sorted names of the callable functions.
func Functions() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
