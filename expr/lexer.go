package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokInvalid
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokPercent:
		return "'%'"
	case tokCaret:
		return "'^'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		return "invalid token"
	}
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// mathQualifier is accepted in front of identifiers so that "Math.sin(x)" and "Math.PI"
// mean the same as "sin(x)" and "PI".
const mathQualifier = "Math."

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && isSpace(l.s[l.i]) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: start}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: start}
	case '*':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '*' {
			l.i += 2
			return token{kind: tokCaret, text: "**", pos: start}
		}
		l.i++
		return token{kind: tokStar, text: "*", pos: start}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: start}
	case '%':
		l.i++
		return token{kind: tokPercent, text: "%", pos: start}
	case '^':
		l.i++
		return token{kind: tokCaret, text: "^", pos: start}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	case ',':
		l.i++
		return token{kind: tokComma, text: ",", pos: start}
	}

	if strings.HasPrefix(l.s[l.i:], mathQualifier) {
		rest := l.i + len(mathQualifier)
		if rest < len(l.s) && isIdentStart(rune(l.s[rest])) {
			l.i = rest
		}
	}

	ch := rune(l.s[l.i])
	if isIdentStart(ch) {
		identStart := l.i
		l.i++
		for l.i < len(l.s) && isIdentContinue(rune(l.s[l.i])) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[identStart:l.i], pos: start}
	}
	if ch == '.' || isDigit(l.s[l.i]) {
		end := scanNumber(l.s, l.i)
		if end == l.i {
			l.i++
			return token{kind: tokInvalid, text: string(ch), pos: start}
		}
		txt := l.s[l.i:end]
		l.i = end
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokInvalid, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, num: f, pos: start}
	}

	// Consume a whole UTF-8 sequence so error messages quote the real character.
	r, size := utf8.DecodeRuneInString(l.s[l.i:])
	l.i += size
	return token{kind: tokInvalid, text: string(r), pos: start}
}

// scanNumber returns the end of the numeric literal starting at i, or i if there is none.
func scanNumber(s string, i int) int {
	start := i
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return start
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		// "2e" is 2 times e, not a malformed exponent.
		if k > j {
			i = k
		}
	}
	return i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || (r < unicode.MaxASCII && unicode.IsDigit(r))
}
