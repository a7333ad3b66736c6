package logic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormula is matched by every parse failure.
var ErrInvalidFormula = errors.New("invalid formula")

// SyntaxError reports where a formula stopped parsing.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid formula: %s at offset %d", e.Msg, e.Pos)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidFormula
}

// Parse reads a formula. Accepted syntax, loosest binding first:
//
//	a <-> b, a -> b (right associative), a | b, a & b, a = b, a != b,
//	-a, \x.a, all x.a, exists x.a, f(a, b), (a)
//
// Unicode spellings (λ ∀ ∃ ¬ ∧ ∨ → ↔) are accepted as well. A binder whose
// variable is not followed by a dot scopes over a single operand, so
// ∀x(man(x)→mortal(x)) parses as expected.
func Parse(src string) (Term, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &SyntaxError{Pos: 0, Msg: "empty formula"}
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	t, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.unexpected(tok)
	}
	return t, nil
}

// MustParse is Parse for formulas known to be well formed, such as templates
// compiled into tests.
func MustParse(src string) Term {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate checks that src is a well-formed formula.
func Validate(src string) error {
	_, err := Parse(src)
	return err
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("expected %s, found %s", kind, describe(tok))}
	}
	return tok, nil
}

func (p *parser) unexpected(tok token) error {
	return &SyntaxError{Pos: tok.pos, Msg: "unexpected " + describe(tok)}
}

func describe(tok token) string {
	if tok.kind == tokEOF {
		return tok.kind.String()
	}
	return fmt.Sprintf("%q", tok.text)
}

func (p *parser) expr() (Term, error) {
	return p.iff()
}

func (p *parser) iff() (Term, error) {
	l, err := p.imp()
	if err != nil {
		return nil, err
	}
	for p.accept(tokIff) {
		r, err := p.imp()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: Iff, L: l, R: r}
	}
	return l, nil
}

func (p *parser) imp() (Term, error) {
	l, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.accept(tokImp) {
		r, err := p.imp()
		if err != nil {
			return nil, err
		}
		return Binary{Op: Imp, L: l, R: r}, nil
	}
	return l, nil
}

func (p *parser) or() (Term, error) {
	l, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		r, err := p.and()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: Or, L: l, R: r}
	}
	return l, nil
}

func (p *parser) and() (Term, error) {
	l, err := p.eq()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		r, err := p.eq()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: And, L: l, R: r}
	}
	return l, nil
}

func (p *parser) eq() (Term, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	switch {
	case p.accept(tokEq):
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Binary{Op: Eq, L: l, R: r}, nil
	case p.accept(tokNeq):
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Not{X: Binary{Op: Eq, L: l, R: r}}, nil
	}
	return l, nil
}

func (p *parser) unary() (Term, error) {
	switch p.peek().kind {
	case tokNot:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	case tokLambda, tokAll, tokExists:
		return p.binder()
	}
	return p.application()
}

func (p *parser) binder() (Term, error) {
	kind := p.next().kind
	var vars []string
	for p.peek().kind == tokIdent {
		vars = append(vars, p.next().text)
	}
	if len(vars) == 0 {
		tok := p.peek()
		return nil, &SyntaxError{Pos: tok.pos, Msg: "binder without variable before " + describe(tok)}
	}

	var body Term
	var err error
	switch {
	case p.accept(tokDot):
		body, err = p.expr()
	case len(vars) == 1:
		body, err = p.unary()
	default:
		tok := p.peek()
		return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("expected %s after binder variables", tokDot)}
	}
	if err != nil {
		return nil, err
	}

	for i := len(vars) - 1; i >= 0; i-- {
		switch kind {
		case tokLambda:
			body = Lambda{Param: vars[i], Body: body}
		case tokAll:
			body = Quant{Kind: All, Var: vars[i], Body: body}
		case tokExists:
			body = Quant{Kind: Exists, Var: vars[i], Body: body}
		}
	}
	return body, nil
}

func (p *parser) application() (Term, error) {
	t, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokLParen {
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		t = NewApp(t, args...)
	}
	return t, nil
}

func (p *parser) arguments() ([]Term, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind == tokRParen {
		return nil, &SyntaxError{Pos: tok.pos, Msg: "empty argument list"}
	}
	var args []Term
	for {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.accept(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) primary() (Term, error) {
	tok := p.next()
	switch tok.kind {
	case tokIdent:
		return Ident{Name: tok.text}, nil
	case tokLParen:
		t, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, p.unexpected(tok)
}
