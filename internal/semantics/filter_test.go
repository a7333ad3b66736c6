package semantics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`["Parameter Animal."]`, "Animal"},
		{`["Parameter dog : Entity -> Prop."]`, "dog : Entity -> Prop"},
		{`["Parameter ["Parameter Animal."]."]`, "Animal"},
		{"Animal", "Animal"},
		{"Entity -> Prop", "Entity -> Prop"},
		{"", ""},
		{`["Parameter Animal.`, `["Parameter Animal.`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeType(tt.in), tt.in)
	}
}

func sampleTree() *Node {
	return &Node{
		ID: "sp0", Sem: "bark(fido)", Type: "Prop",
		Meta: map[string]string{"category": "S", "rule": "<"},
		Children: []*Node{
			{
				ID: "sp1", Sem: "fido", Type: `["Parameter Animal."]`,
				Meta: map[string]string{"category": "NP", "surf": "Fido", "base": "fido"},
			},
			{
				ID: "sp2", Sem: `\x.bark(x)`, Type: "Entity -> Prop",
				Meta: map[string]string{"category": `S\NP`, "coq_type": Decorate("bark : Animal -> Prop")},
			},
			{ID: "sp3", Sem: "p"},
		},
	}
}

func TestFilter(t *testing.T) {
	in := sampleTree()
	got := Filter(in)

	want := &Node{
		ID: "sp0", Sem: "bark(fido)", Type: "Prop",
		Children: []*Node{
			{ID: "sp1", Sem: "fido", Type: "Animal"},
			{ID: "sp2", Sem: `\x.bark(x)`, Type: "bark : Animal -> Prop"},
			{ID: "sp3", Sem: "p"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "S", in.Meta["category"], "input tree must not be modified")
	assert.Equal(t, `["Parameter Animal."]`, in.Children[0].Type)
}

func TestFilter_Idempotent(t *testing.T) {
	once := Filter(sampleTree())
	twice := Filter(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("re-filtering changed the tree (-once +twice):\n%s", diff)
	}
	assert.Nil(t, Filter(nil))
}
