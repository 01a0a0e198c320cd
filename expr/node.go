package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is a parsed expression.
type Node interface {
	Eval(e *Env) (float64, error)
	// String renders the node fully parenthesized.
	String() string
}

type numberNode struct{ v float64 }

func (n numberNode) Eval(_ *Env) (float64, error) { return n.v, nil }

func (n numberNode) String() string { return strconv.FormatFloat(n.v, 'g', -1, 64) }

type identNode struct{ name string }

func (n identNode) Eval(e *Env) (float64, error) {
	v, ok := e.lookup(n.name)
	if !ok {
		return 0, fmt.Errorf("%w: %w %q", ErrEval, ErrUnknownVar, n.name)
	}
	return v, nil
}

func (n identNode) String() string { return n.name }

type unaryNode struct {
	op byte
	x  Node
}

func (n unaryNode) Eval(e *Env) (float64, error) {
	v, err := n.x.Eval(e)
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

func (n unaryNode) String() string { return "(" + string(n.op) + n.x.String() + ")" }

type binaryNode struct {
	op    byte
	left  Node
	right Node
}

func (n binaryNode) Eval(e *Env) (float64, error) {
	a, err := n.left.Eval(e)
	if err != nil {
		return 0, err
	}
	b, err := n.right.Eval(e)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		// IEEE semantics: 1/0 is +Inf and 0/0 is NaN.
		return a / b, nil
	case '%':
		return math.Mod(a, b), nil
	case '^':
		return math.Pow(a, b), nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrEval, n.op)
	}
}

func (n binaryNode) String() string {
	return "(" + n.left.String() + " " + string(n.op) + " " + n.right.String() + ")"
}

type callNode struct {
	name string
	args []Node
}

func (n callNode) Eval(e *Env) (float64, error) {
	b, ok := builtins[n.name]
	if !ok {
		return 0, fmt.Errorf("%w: %w %q", ErrEval, ErrUnknownFunc, n.name)
	}
	if len(n.args) < b.minArgs || (b.maxArgs >= 0 && len(n.args) > b.maxArgs) {
		return 0, fmt.Errorf("%w: %w: %s expects %s, got %d", ErrEval, ErrArity, n.name, b.arity(), len(n.args))
	}
	var buf [4]float64
	args := buf[:0]
	for _, a := range n.args {
		v, err := a.Eval(e)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	return b.fn(args), nil
}

func (n callNode) String() string {
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return n.name + "(" + strings.Join(parts, ", ") + ")"
}
