package semantics

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/semprove/internal/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_FromComposition(t *testing.T) {
	attempts, err := newTestComposer(t).ComposeSentence(context.Background(), testSentences(t)[0], 0)
	require.NoError(t, err)

	ex := Extract(attempts)
	assert.Equal(t, []string{"all x.(dog(x) -> die(x))"}, ex.Formulas)
	assert.Equal(t, "Parameter Animal : Type.\nParameter dog : Animal -> Prop.\nParameter die : Animal -> Prop.", ex.Library)
}

func TestExtract_DeduplicatesInOrder(t *testing.T) {
	pred := logic.Func(logic.Prop, logic.Entity)
	attempts := []Attempt{
		{Status: StatusSuccess, Formula: "man(socrates)", Symbols: []logic.Symbol{
			{Name: "man", Type: pred}, {Name: "socrates", Type: logic.Entity},
		}},
		{Status: StatusFailed},
		{Status: StatusSuccess, Formula: "mortal(socrates)", Symbols: []logic.Symbol{
			{Name: "mortal", Type: pred}, {Name: "socrates", Type: logic.Entity},
		}},
		{Status: StatusSuccess, Formula: "kind(rex)", Symbols: []logic.Symbol{
			{Name: "kind", Type: logic.Func(logic.Prop, logic.BaseType("Dog"))}, {Name: "rex", Type: logic.BaseType("Dog")},
		}},
	}

	ex := Extract(attempts)
	assert.Equal(t, []string{"man(socrates)", "mortal(socrates)", "kind(rex)"}, ex.Formulas)
	assert.Equal(t, `Parameter Dog : Type.
Parameter man : Entity -> Prop.
Parameter socrates : Entity.
Parameter mortal : Entity -> Prop.
Parameter kind : Dog -> Prop.
Parameter rex : Dog.`, ex.Library)
}

func TestExtract_NoSuccess(t *testing.T) {
	ex := Extract([]Attempt{{Status: StatusFailed}})
	assert.Empty(t, ex.Formulas)
	assert.Empty(t, ex.Library)
}

func TestMergeLibraries(t *testing.T) {
	a := "Parameter man : Entity -> Prop.\nParameter socrates : Entity."
	b := "Parameter man : Entity -> Prop.\n"
	assert.Equal(t,
		"Parameter man : Entity -> Prop.\nParameter socrates : Entity.\nParameter man : Entity -> Prop.",
		MergeLibraries(a, "", b),
	)
	assert.Empty(t, MergeLibraries())
}
