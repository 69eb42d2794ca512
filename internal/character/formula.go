package character

import (
	"strconv"
	"strings"
	"unicode"

	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
)

// EvalFormula evaluates a prepared-spells formula against the given
// variables. The grammar is deliberately tiny (integer literals, named
// variables, `+`, and `max(a, b)`) so catalog-authored formula strings are
// never executed as code.
//
//	expr := term ("+" term)*
//	term := int | ident | "max" "(" expr "," expr ")" | "(" expr ")"
func EvalFormula(formula string, vars map[string]int) (int, error) {
	p := &formulaParser{input: formula, vars: vars}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, dnderr.Validationf("unexpected %q in formula %q", p.input[p.pos:], formula)
	}
	return value, nil
}

type formulaParser struct {
	input string
	pos   int
	vars  map[string]int
}

func (p *formulaParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *formulaParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *formulaParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return dnderr.Validationf("expected %q at offset %d in formula %q", string(c), p.pos, p.input)
	}
	p.pos++
	return nil
}

func (p *formulaParser) parseExpr() (int, error) {
	total, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.peek() != '+' {
			return total, nil
		}
		p.pos++
		term, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		total += term
	}
}

func (p *formulaParser) parseTerm() (int, error) {
	p.skipSpace()

	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(')'); err != nil {
			return 0, err
		}
		return value, nil

	case c == '-' || unicode.IsDigit(rune(c)):
		return p.parseNumber()

	case unicode.IsLetter(rune(c)):
		ident := p.parseIdent()
		if ident == "max" {
			return p.parseMax()
		}
		value, ok := p.vars[strings.ToLower(ident)]
		if !ok {
			return 0, dnderr.Validationf("unknown variable %q in formula %q", ident, p.input)
		}
		return value, nil
	}

	return 0, dnderr.Validationf("unexpected character at offset %d in formula %q", p.pos, p.input)
}

func (p *formulaParser) parseNumber() (int, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.input) && unicode.IsDigit(rune(p.input[p.pos])) {
		p.pos++
	}
	value, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, dnderr.Validationf("bad number at offset %d in formula %q", start, p.input)
	}
	return value, nil
}

func (p *formulaParser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsLetter(rune(p.input[p.pos])) || p.input[p.pos] == '_') {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *formulaParser) parseMax() (int, error) {
	if err := p.expect('('); err != nil {
		return 0, err
	}
	a, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if err := p.expect(','); err != nil {
		return 0, err
	}
	b, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if err := p.expect(')'); err != nil {
		return 0, err
	}
	if a > b {
		return a, nil
	}
	return b, nil
}
