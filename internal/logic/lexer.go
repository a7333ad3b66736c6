package logic

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokDot
	tokNot
	tokAnd
	tokOr
	tokImp
	tokIff
	tokEq
	tokNeq
	tokLambda
	tokAll
	tokExists
)

var tokenNames = map[tokenKind]string{
	tokEOF:    "end of input",
	tokIdent:  "identifier",
	tokLParen: `"("`,
	tokRParen: `")"`,
	tokComma:  `","`,
	tokDot:    `"."`,
	tokNot:    "negation",
	tokAnd:    "conjunction",
	tokOr:     "disjunction",
	tokImp:    "implication",
	tokIff:    "biconditional",
	tokEq:     `"="`,
	tokNeq:    `"!="`,
	tokLambda: "lambda",
	tokAll:    "universal quantifier",
	tokExists: "existential quantifier",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

var keywords = map[string]tokenKind{
	"all":    tokAll,
	"forall": tokAll,
	"exists": tokExists,
}

// symbols maps multi- and single-rune operators, longest first.
var symbols = []struct {
	text string
	kind tokenKind
}{
	{"<->", tokIff},
	{"->", tokImp},
	{"!=", tokNeq},
	{"(", tokLParen},
	{")", tokRParen},
	{",", tokComma},
	{".", tokDot},
	{"-", tokNot},
	{"~", tokNot},
	{"¬", tokNot},
	{"&", tokAnd},
	{"∧", tokAnd},
	{"|", tokOr},
	{"∨", tokOr},
	{"→", tokImp},
	{"↔", tokIff},
	{"=", tokEq},
	{`\`, tokLambda},
	{"λ", tokLambda},
	{"∀", tokAll},
	{"∃", tokExists},
}

func isIdentRune(r rune) bool {
	if r == 'λ' {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
scan:
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, &SyntaxError{Pos: i, Msg: "invalid UTF-8"}
		}
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		for _, s := range symbols {
			if len(src)-i >= len(s.text) && src[i:i+len(s.text)] == s.text {
				toks = append(toks, token{kind: s.kind, text: s.text, pos: i})
				i += len(s.text)
				continue scan
			}
		}
		if !isIdentRune(r) {
			return nil, &SyntaxError{Pos: i, Msg: "unexpected character " + string(r)}
		}
		start := i
		for i < len(src) {
			r, size = utf8.DecodeRuneInString(src[i:])
			if !isIdentRune(r) {
				break
			}
			i += size
		}
		word := src[start:i]
		if kind, ok := keywords[word]; ok {
			toks = append(toks, token{kind: kind, text: word, pos: start})
			continue
		}
		toks = append(toks, token{kind: tokIdent, text: word, pos: start})
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}
