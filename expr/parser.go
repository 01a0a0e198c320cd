package expr

import "fmt"

type parser struct {
	l   lexer
	cur token
}

// Parse parses src into an expression tree.
func Parse(src string) (Node, error) {
	p := &parser{l: lexer{s: src}}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) unexpected() error {
	if p.cur.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrParse)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, p.cur.text, p.cur.pos)
}

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokStar, tokSlash, tokPercent:
			op := p.cur.text[0]
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: op, left: left, right: right}
		case tokNumber, tokIdent, tokLParen:
			// Juxtaposition: 2x, 2(x+1), (x+1)(x-1), 2 pi x.
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '*', left: left, right: right}
		default:
			return left, nil
		}
	}
}

// parsePower binds tighter than unary minus on its left (-x^2 is -(x^2)) but accepts a
// signed exponent on its right (x^-2).
func (p *parser) parsePower() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokCaret {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.next()
		return numberNode{v: v}, nil
	case tokIdent:
		name := p.cur.text
		p.next()
		if p.cur.kind != tokLParen {
			return identNode{name: name}, nil
		}
		p.next()
		var args []Node
		if p.cur.kind != tokRParen {
			for {
				a, err := p.parseSum()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.cur.kind != tokComma {
					break
				}
				p.next()
			}
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' after arguments of %s", ErrParse, name)
		}
		p.next()
		return callNode{name: name, args: args}, nil
	case tokLParen:
		p.next()
		n, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrParse)
		}
		p.next()
		return n, nil
	default:
		return nil, p.unexpected()
	}
}
