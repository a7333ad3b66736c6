package semantics

import "strings"

const (
	declPrefix = `["Parameter `
	declSuffix = `."]`
)

// Decorate wraps a bare type in the declaration-list form some annotators
// emit, e.g. Animal becomes ["Parameter Animal."].
func Decorate(bare string) string {
	return declPrefix + bare + declSuffix
}

// NormalizeType strips the declaration-list wrapper from a type annotation.
// Nested wrappers are stripped too; bare annotations are returned unchanged.
func NormalizeType(s string) string {
	for len(s) >= len(declPrefix)+len(declSuffix) && strings.HasPrefix(s, declPrefix) && strings.HasSuffix(s, declSuffix) {
		s = strings.TrimSpace(s[len(declPrefix) : len(s)-len(declSuffix)])
	}
	return s
}

// Filter returns a copy of n that keeps only id, child links, sem and type on
// every node. A leaf carrying a coq_type annotation takes it as its type.
// Filtering a filtered tree returns an equal tree.
func Filter(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{ID: n.ID, Sem: n.Sem, Type: n.Type}
	if len(n.Children) == 0 {
		if decl, ok := n.Meta["coq_type"]; ok {
			if bare := NormalizeType(decl); bare != "" {
				out.Type = bare
			}
		}
	}
	out.Type = NormalizeType(out.Type)
	for _, c := range n.Children {
		out.Children = append(out.Children, Filter(c))
	}
	return out
}
