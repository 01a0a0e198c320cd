package expr

import (
	"errors"
	"math"
)

var (
	ErrParse = errors.New("parse error")
	ErrEval  = errors.New("eval error")
	// ErrUnknownVar is returned when evaluating an identifier that is neither x nor a constant.
	ErrUnknownVar  = errors.New("unknown variable")
	ErrUnknownFunc = errors.New("unknown function")
	ErrArity       = errors.New("wrong number of arguments")
)

// Var is the name of the plotted variable.
const Var = "x"

var constants = map[string]float64{
	"pi":    math.Pi,
	"PI":    math.Pi,
	"tau":   2 * math.Pi,
	"e":     math.E,
	"E":     math.E,
	"phi":   math.Phi,
	"LN2":   math.Ln2,
	"LN10":  math.Ln10,
	"SQRT2": math.Sqrt2,
}

// Env binds the variable x for evaluation.
type Env struct {
	X float64
}

func (e *Env) lookup(name string) (float64, bool) {
	if name == Var {
		return e.X, true
	}
	v, ok := constants[name]
	return v, ok
}

// Func is a compiled f(x).
type Func struct {
	root Node
	env  Env
}

// Compile parses src into a callable function of x.
func Compile(src string) (*Func, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Func{root: n}, nil
}

// Eval evaluates f at x. A Func is not safe for concurrent use.
func (f *Func) Eval(x float64) (float64, error) {
	f.env.X = x
	return f.root.Eval(&f.env)
}
