package expr

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "3x", want: "3*x"},
		{in: "x3", want: "x*3"},
		{in: "x^3", want: "pow(x,3)"},
		{in: "2x^2", want: "2*pow(x,2)"},
		{in: "x^2 + 10x", want: "pow(x,2) + 10*x"},
		{in: "x^2.5", want: "x^2.5"},
		{in: "x * x", want: "x * x"},
		{in: "Math.sin(x)", want: "Math.sin(x)"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_KeepsMeaning(t *testing.T) {
	for _, in := range []string{"3x", "x^3", "2x^2", "x^2.5", "x^2x", "x2 + 1"} {
		raw, err := Compile(in)
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", in, err)
		}
		norm, err := Compile(Normalize(in))
		if err != nil {
			t.Fatalf("Compile(Normalize(%q)) error: %v", in, err)
		}
		for _, x := range []float64{0.5, 1, 2, 3} {
			a, errA := raw.Eval(x)
			b, errB := norm.Eval(x)
			if errB != nil {
				t.Fatalf("normalized %q at %v: %v", in, x, errB)
			}
			if errA != nil {
				// x2 is an unknown identifier without the rewrite.
				continue
			}
			if math.Abs(a-b) > 1e-9 {
				t.Fatalf("%q at %v: raw %v, normalized %v", in, x, a, b)
			}
		}
	}
}
