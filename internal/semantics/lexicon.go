// Package semantics composes logical formulas along derivation trees using a
// template lexicon, prunes the composed trees and extracts the typed
// vocabulary they need.
package semantics

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/Harshitk-cp/semprove/internal/logic"
	"gopkg.in/yaml.v3"
)

// Template is one lexicon entry. Templates without a rule give leaves their
// meaning from the token's base form; templates with a rule combine the
// meanings of a node's children in order.
type Template struct {
	Category  string `yaml:"category"`
	Rule      string `yaml:"rule,omitempty"`
	Base      string `yaml:"base,omitempty"`
	Surf      string `yaml:"surf,omitempty"`
	Semantics string `yaml:"semantics"`
	CoqType   string `yaml:"coq_type,omitempty"`

	sem logic.Term
	typ logic.Type
}

// Wildcard matches any category.
const Wildcard = "*"

type entryKey struct {
	category string
	word     string
}

// Lexicon dispatches on (category, word) for leaves and (category, rule) for
// internal nodes. It is immutable once loaded and safe for concurrent use.
type Lexicon struct {
	leaves map[entryKey]*Template
	rules  map[entryKey]*Template
	size   int
}

func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return ParseLexicon(data)
}

// ParseLexicon reads a YAML list of templates. The first template for a key
// wins.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var templates []*Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	lex := &Lexicon{
		leaves: make(map[entryKey]*Template),
		rules:  make(map[entryKey]*Template),
	}
	for i, t := range templates {
		if t == nil || t.Category == "" {
			return nil, fmt.Errorf("template %d: category is required", i)
		}
		sem, err := logic.Parse(t.Semantics)
		if err != nil {
			return nil, fmt.Errorf("template %d (%s): %w", i, t.Category, err)
		}
		t.sem = sem
		if t.CoqType != "" {
			if t.typ, err = logic.ParseType(t.CoqType); err != nil {
				return nil, fmt.Errorf("template %d (%s): %w", i, t.Category, err)
			}
		}

		table, key := lex.leaves, entryKey{category: t.Category, word: t.Base}
		if t.Rule != "" {
			table, key = lex.rules, entryKey{category: t.Category, word: t.Rule}
		} else if t.Base == "" {
			key.word = t.Surf
		}
		if _, dup := table[key]; !dup {
			table[key] = t
		}
		lex.size++
	}
	return lex, nil
}

// Len returns the number of templates read.
func (l *Lexicon) Len() int { return l.size }

// Leaf finds the lexical template for a token of the given category.
func (l *Lexicon) Leaf(category, base, surf string) (*Template, bool) {
	for _, cat := range []string{category, StripFeatures(category)} {
		for _, word := range []string{base, surf, ""} {
			if t, ok := l.leaves[entryKey{cat, word}]; ok {
				return t, true
			}
		}
	}
	t, ok := l.leaves[entryKey{Wildcard, ""}]
	return t, ok
}

// Rule finds the combinatory template for an internal node.
func (l *Lexicon) Rule(category, rule string) (*Template, bool) {
	for _, cat := range []string{category, StripFeatures(category), Wildcard} {
		if t, ok := l.rules[entryKey{cat, rule}]; ok {
			return t, true
		}
	}
	return nil, false
}

// StripFeatures removes bracketed features: S[dcl]\NP[nom] becomes S\NP.
func StripFeatures(category string) string {
	if !strings.ContainsRune(category, '[') {
		return category
	}
	var b strings.Builder
	depth := 0
	for _, r := range category {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// reservedNames are formula binders plus the words the Coq parser will not
// take as a Parameter name.
var reservedNames = map[string]bool{
	"all": true, "exists": true,
	"as": true, "at": true, "cofix": true, "else": true, "end": true, "exists2": true,
	"fix": true, "for": true, "forall": true, "fun": true, "if": true, "IF": true,
	"in": true, "let": true, "match": true, "mod": true, "return": true, "then": true,
	"using": true, "where": true, "with": true,
	"Prop": true, "Set": true, "SProp": true, "Type": true, "Entity": true,
	"Parameter": true, "Hypothesis": true, "Theorem": true, "Section": true,
	"End": true, "Proof": true, "Qed": true, "Require": true, "Export": true,
}

// Sanitize turns a token's base form into a constant name the formula
// grammar accepts.
func Sanitize(word string) string {
	var b strings.Builder
	for i, r := range word {
		switch {
		case r == '_' || unicode.IsLetter(r) && r != 'λ':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" {
		return "_"
	}
	if reservedNames[name] {
		name += "_"
	}
	return name
}
