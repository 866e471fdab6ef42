package pluralforms

import (
	"fmt"
	"strconv"
)

// Tokens spanning more than one byte, or with no single byte
// representation. Single byte tokens are returned as themselves, and
// "==", "&&" and "||" are returned as '=', '&' and '|'.
const (
	eofTok = iota
	numTok = iota + 256
	neTok
	ltTok
	lteTok
	gtTok
	gteTok
	invalidTok
)

type lexer struct {
	data string
	pos  int
}

func (l *lexer) Lex() (tok int, num int) {
	for {
		if l.pos >= len(l.data) {
			return eofTok, 0
		}
		if l.data[l.pos] != ' ' && l.data[l.pos] != '\t' {
			break
		}
		l.pos += 1
	}

	pos := l.pos
	result := int(l.data[pos])
	l.pos += 1
	switch result {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
			l.pos += 1
		}
		if num, err := strconv.ParseInt(l.data[pos:l.pos], 10, 32); err == nil {
			return numTok, int(num)
		}
		return invalidTok, 0
	case '=':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return result, 0
		}
		return invalidTok, 0
	case '!':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return neTok, 0
		}
		return result, 0
	case '&', '|':
		if l.pos < len(l.data) && l.data[l.pos] == l.data[pos] {
			l.pos += 1
			return result, 0
		}
		return invalidTok, 0
	case '<':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return lteTok, 0
		}
		return ltTok, 0
	case '>':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return gteTok, 0
		}
		return gtTok, 0
	case 'n', '?', ':', '(', ')', '*', '/', '%', '+', '-':
		// Return as is
		return result, 0
	case ';', '\n':
		return eofTok, 0
	default:
		return invalidTok, 0
	}
}

// parser is a precedence climbing parser over the lexer's tokens, with
// the operator precedence of C.
type parser struct {
	lex lexer
	tok int
	num int
}

func (p *parser) advance() {
	p.tok, p.num = p.lex.Lex()
}

func (p *parser) fail(what string) error {
	return fmt.Errorf("%s at offset %d", what, p.lex.pos)
}

func (p *parser) expect(tok int, what string) error {
	if p.tok != tok {
		return p.fail("expected " + what)
	}
	p.advance()
	return nil
}

func (p *parser) ternary() (Expression, error) {
	test, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if p.tok != '?' {
		return test, nil
	}
	p.advance()
	ifTrue, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(':', "':'"); err != nil {
		return nil, err
	}
	ifFalse, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return ternaryExpr{test: test, ifTrue: ifTrue, ifFalse: ifFalse}, nil
}

// levels lists binary operators from lowest to highest precedence.
var levels = [][]int{
	{'|'},
	{'&'},
	{'=', neTok},
	{ltTok, lteTok, gtTok, gteTok},
	{'+', '-'},
	{'*', '/', '%'},
}

func makeBinary(op int, left, right Expression) Expression {
	b := binaryExpr{left: left, right: right}
	switch op {
	case '|':
		return orExpr(b)
	case '&':
		return andExpr(b)
	case '=':
		return eqExpr(b)
	case neTok:
		return neExpr(b)
	case ltTok:
		return ltExpr(b)
	case lteTok:
		return lteExpr(b)
	case gtTok:
		return gtExpr(b)
	case gteTok:
		return gteExpr(b)
	case '+':
		return addExpr(b)
	case '-':
		return subExpr(b)
	case '*':
		return mulExpr(b)
	case '/':
		return divExpr(b)
	case '%':
		return modExpr(b)
	}
	panic(fmt.Sprintf("unknown operator token %d", op))
}

func (p *parser) binary(level int) (Expression, error) {
	if level == len(levels) {
		return p.unary()
	}
	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.tok, false
		for _, candidate := range levels[level] {
			if op == candidate {
				ok = true
				break
			}
		}
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		left = makeBinary(op, left, right)
	}
}

func (p *parser) unary() (Expression, error) {
	if p.tok == '!' {
		p.advance()
		sub, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notExpr{sub: sub}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expression, error) {
	switch p.tok {
	case 'n':
		p.advance()
		return varExpr{}, nil
	case numTok:
		value := p.num
		p.advance()
		return numberExpr{value}, nil
	case '(':
		p.advance()
		exp, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')', "')'"); err != nil {
			return nil, err
		}
		return exp, nil
	case eofTok:
		return nil, p.fail("unexpected end of expression")
	}
	return nil, p.fail("unexpected token")
}

// Compile a string containing a plural form expression to a Expression object.
//
// The expression uses the C syntax of the gettext Plural-Forms header, for
// example "n%10==1 && n%100!=11 ? 0 : n != 0 ? 1 : 2". Parsing stops at a
// ';' or newline.
func Compile(expr string) (Expression, error) {
	p := parser{lex: lexer{data: expr}}
	p.advance()
	exp, err := p.ternary()
	if err == nil && p.tok != eofTok {
		err = p.fail("unexpected trailing input")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse expression: %s", err)
	}
	return exp, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(expr string) Expression {
	exp, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return exp
}
