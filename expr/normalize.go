package expr

import "regexp"

// The rewrites run in this order, each once over the whole string.
var normalizeRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(\d+)x`), "${1}*x"},
	{regexp.MustCompile(`x(\d+)`), "x*${1}"},
	// A fractional exponent is left to the parser: x^2.5 must not become pow(x,2).5.
	{regexp.MustCompile(`x\^(\d+)([^.\d]|$)`), "pow(x,${1})${2}"},
}

// Normalize rewrites shorthand notation into text the parser accepts:
// "3x" becomes "3*x", "x3" becomes "x*3" and "x^3" becomes "pow(x,3)".
// The parser accepts the shorthand directly as well.
func Normalize(text string) string {
	for _, r := range normalizeRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}
