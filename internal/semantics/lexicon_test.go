package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplates = `
- category: 'NP/N'
  base: every
  semantics: '\E F G.all x.(F(x) -> G(x))'
- category: 'NP/N'
  base: some
  semantics: '\E F G.exists x.(F(x) & G(x))'
- category: N
  base: dog
  semantics: '\E x.E(x)'
  coq_type: 'Animal -> Prop'
- category: N
  base: socrates
  semantics: '\E x.E(x)'
  coq_type: Entity
- category: N
  semantics: '\E x.E(x)'
- category: 'S\NP'
  semantics: '\E Q.Q(\x.E(x))'
- category: '*'
  rule: '>'
  semantics: '\L R.L(R)'
- category: '*'
  rule: '<'
  semantics: '\L R.R(L)'
`

func testLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := ParseLexicon([]byte(testTemplates))
	require.NoError(t, err)
	return lex
}

func TestParseLexicon_Dispatch(t *testing.T) {
	lex, err := ParseLexicon([]byte(`
- {category: N, base: dog, semantics: '\E x.dog1(x)'}
- {category: N, base: dog, semantics: '\E x.dog2(x)'}
- {category: N, surf: Dogs, semantics: '\E x.dogs(x)'}
- {category: N, semantics: '\E x.E(x)'}
- {category: 'S\NP', semantics: '\E x.E(x)'}
- {category: '*', semantics: '\E.E'}
- {category: 'S', rule: '<', semantics: '\L R.R(L)'}
- {category: '*', rule: '<', semantics: '\L R.L(R)'}
`))
	require.NoError(t, err)
	assert.Equal(t, 8, lex.Len())

	leaf := func(cat, base, surf string) string {
		tmpl, ok := lex.Leaf(cat, base, surf)
		require.True(t, ok)
		return tmpl.Semantics
	}
	assert.Equal(t, `\E x.dog1(x)`, leaf("N", "dog", "dog"), "first template for a key wins")
	assert.Equal(t, `\E x.dogs(x)`, leaf("N", "dog_", "Dogs"))
	assert.Equal(t, `\E x.E(x)`, leaf("N", "cat", "cat"))
	assert.Equal(t, `\E x.E(x)`, leaf(`S[dcl]\NP[nom]`, "run", "runs"))
	assert.Equal(t, `\E.E`, leaf("PP", "to", "to"))

	rule, ok := lex.Rule("S[dcl]", "<")
	require.True(t, ok)
	assert.Equal(t, `\L R.R(L)`, rule.Semantics)
	rule, ok = lex.Rule("NP", "<")
	require.True(t, ok)
	assert.Equal(t, `\L R.L(R)`, rule.Semantics)
	_, ok = lex.Rule("NP", ">")
	assert.False(t, ok)
}

func TestParseLexicon_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not a list", "category: N"},
		{"missing category", "- {semantics: '\\x.x'}"},
		{"bad semantics", "- {category: N, semantics: '\\x.(x'}"},
		{"bad type", "- {category: N, semantics: '\\x.x', coq_type: 'Entity ->'}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLexicon([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestStripFeatures(t *testing.T) {
	assert.Equal(t, `S\NP`, StripFeatures(`S[dcl]\NP[nom]`))
	assert.Equal(t, "NP/N", StripFeatures("NP/N"))
	assert.Equal(t, "S", StripFeatures("S[nm=t,mod=nm]"))
}

func TestSanitize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"dog", "dog"},
		{"New-York", "New_York"},
		{"3rd", "_3rd"},
		{"all", "all_"},
		{"exists", "exists_"},
		{"走る", "走る"},
		{"", "_"},
		{"O'Neil", "O_Neil"},
		{"in", "in_"},
		{"fun", "fun_"},
		{"match", "match_"},
		{"Prop", "Prop_"},
		{"Type", "Type_"},
		{"Entity", "Entity_"},
		{"inside", "inside"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}
