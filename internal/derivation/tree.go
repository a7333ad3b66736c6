package derivation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedTree = errors.New("malformed derivation tree")

// Tree is an arena of derivation nodes. It is never modified after Build.
type Tree struct {
	ID   string
	Root string
	Rank int

	nodes []Node
	root  int
}

// Node is one span of a derivation. Leaves carry their token.
type Node struct {
	ID       string
	Category string
	Rule     string
	Children []int
	Token    *Token
}

func (t *Tree) Node(i int) *Node { return &t.nodes[i] }
func (t *Tree) RootIndex() int   { return t.root }
func (t *Tree) Len() int         { return len(t.nodes) }

// Build resolves the rank-th (1-based) derivation of s into a tree.
func Build(s *Sentence, rank int) (*Tree, error) {
	if rank < 1 || rank > len(s.CCGs) {
		return nil, fmt.Errorf("%w: derivation %d of %d requested", ErrMalformedTree, rank, len(s.CCGs))
	}
	ccg := &s.CCGs[rank-1]

	tokens := make(map[string]*Token, len(s.Tokens))
	for i := range s.Tokens {
		tokens[s.Tokens[i].ID] = &s.Tokens[i]
	}

	t := &Tree{ID: ccg.ID, Root: ccg.Root, Rank: rank, nodes: make([]Node, len(ccg.Spans))}
	index := make(map[string]int, len(ccg.Spans))
	for i, sp := range ccg.Spans {
		if _, dup := index[sp.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate span %q", ErrMalformedTree, sp.ID)
		}
		index[sp.ID] = i
	}

	referenced := make(map[int]bool)
	for i, sp := range ccg.Spans {
		n := &t.nodes[i]
		n.ID, n.Category, n.Rule = sp.ID, sp.Category, sp.Rule
		for _, c := range strings.Fields(sp.Child) {
			ci, ok := index[c]
			if !ok {
				return nil, fmt.Errorf("%w: span %q has unknown child %q", ErrMalformedTree, sp.ID, c)
			}
			n.Children = append(n.Children, ci)
			referenced[ci] = true
		}
		if len(n.Children) == 0 {
			tok, ok := tokens[sp.Terminal]
			if !ok {
				return nil, fmt.Errorf("%w: leaf span %q has no token", ErrMalformedTree, sp.ID)
			}
			n.Token = tok
		}
	}

	switch {
	case ccg.Root != "":
		ri, ok := index[ccg.Root]
		if !ok {
			return nil, fmt.Errorf("%w: root %q not found", ErrMalformedTree, ccg.Root)
		}
		t.root = ri
	default:
		t.root = -1
		for i := range t.nodes {
			if !referenced[i] {
				t.root = i
				break
			}
		}
		if t.root < 0 {
			return nil, fmt.Errorf("%w: no root span", ErrMalformedTree)
		}
		t.Root = t.nodes[t.root].ID
	}

	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) checkAcyclic() error {
	const (
		unvisited = iota
		active
		done
	)
	state := make([]int, len(t.nodes))
	var visit func(int) error
	visit = func(i int) error {
		switch state[i] {
		case active:
			return fmt.Errorf("%w: cycle through span %q", ErrMalformedTree, t.nodes[i].ID)
		case done:
			return nil
		}
		state[i] = active
		for _, c := range t.nodes[i].Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}
	return visit(t.root)
}

// SelectTrees returns the 1-based derivation indices to attempt. A gold
// annotation g selects g+1 alone. Otherwise the first min(nbest, available)
// ranks are selected, all of them when nbest < 1.
func SelectTrees(available int, gold int, hasGold bool, nbest int) []int {
	if hasGold {
		return []int{gold + 1}
	}
	k := available
	if nbest >= 1 && nbest < available {
		k = nbest
	}
	out := make([]int, k)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
