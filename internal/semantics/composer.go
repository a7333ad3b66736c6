package semantics

import (
	"context"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/semprove/internal/derivation"
	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/logic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status of a composition attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Node is a composed derivation node. Meta carries the derivation attributes
// that Filter discards.
type Node struct {
	ID       string            `json:"id"`
	Sem      string            `json:"sem"`
	Type     string            `json:"type,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Attempt is the outcome of composing one selected derivation.
type Attempt struct {
	Rank    int
	CCGID   string
	Root    string
	Status  Status
	Tree    *Node
	Formula string
	Symbols []logic.Symbol
	Err     error
}

// Composer builds formulas from derivations. It holds no per-attempt state.
type Composer struct {
	lex     *Lexicon
	logger  *zap.Logger
	workers int
}

func NewComposer(lex *Lexicon, workers int, logger *zap.Logger) *Composer {
	if workers < 1 {
		workers = 1
	}
	return &Composer{lex: lex, logger: logger, workers: workers}
}

// ComposeSentence composes every derivation selected for s. Attempts come
// back in selection order. Only a sentence without derivations is an error.
func (c *Composer) ComposeSentence(ctx context.Context, s *derivation.Sentence, nbest int) ([]Attempt, error) {
	if len(s.CCGs) == 0 {
		return nil, fmt.Errorf("sentence %q: %w", s.ID, domain.ErrDerivationUnavailable)
	}
	gold, hasGold := s.Gold()
	ranks := derivation.SelectTrees(len(s.CCGs), gold, hasGold, nbest)

	attempts := make([]Attempt, len(ranks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, rank := range ranks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			attempts[i] = c.attempt(s, rank)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// ComposeDocument composes every sentence of root and returns a copy of the
// document with a semantics block per attempt. root is not modified.
func (c *Composer) ComposeDocument(ctx context.Context, root *derivation.Root, nbest int) (*derivation.Root, error) {
	out := *root
	out.Document.Sentences = make([]*derivation.Sentence, len(root.Sentences()))
	for i, s := range root.Sentences() {
		cp := *s
		cp.Semantics = append([]derivation.Semantics(nil), s.Semantics...)
		attempts, err := c.ComposeSentence(ctx, s, nbest)
		if err != nil && ctx.Err() != nil {
			return nil, err
		}
		for _, a := range attempts {
			cp.Semantics = append(cp.Semantics, a.Semantics())
		}
		if err != nil {
			cp.Semantics = append(cp.Semantics, derivation.Semantics{Status: string(StatusFailed)})
		}
		out.Document.Sentences[i] = &cp
	}
	return &out, nil
}

func (c *Composer) attempt(s *derivation.Sentence, rank int) (a Attempt) {
	a = Attempt{Rank: rank, Status: StatusFailed}
	defer func() {
		if r := recover(); r != nil {
			a = Attempt{Rank: rank, Status: StatusFailed, Err: fmt.Errorf("%w: panic: %v", domain.ErrCompositionFailure, r)}
		}
		if a.Status == StatusFailed {
			c.logger.Warn("composition failed",
				zap.String("sentence", s.Surface()),
				zap.String("sentence_id", s.ID),
				zap.Int("rank", rank),
				zap.String("ccg_id", a.CCGID),
				zap.Error(a.Err),
			)
		}
	}()

	tree, err := derivation.Build(s, rank)
	if err != nil {
		a.Err = fmt.Errorf("%w: %v", domain.ErrCompositionFailure, err)
		return a
	}
	a.CCGID, a.Root = tree.ID, tree.Root

	b := &builder{lex: c.lex, tree: tree, fixed: make(map[string]logic.Type)}
	node, term, err := b.compose(tree.RootIndex())
	if err != nil {
		a.Err = err
		return a
	}
	typing, err := logic.InferFormula(term, b.fixed)
	if err != nil {
		a.Err = fmt.Errorf("%w: %v", domain.ErrCompositionFailure, err)
		return a
	}
	node.Type = typing.Type.String()

	a.Status = StatusSuccess
	a.Tree = Filter(node)
	a.Formula = logic.String(term)
	a.Symbols = typing.Symbols
	return a
}

// builder composes one tree. fixed collects the lexicon-assigned types of
// the constants seen so far.
type builder struct {
	lex   *Lexicon
	tree  *derivation.Tree
	fixed map[string]logic.Type
}

func (b *builder) compose(i int) (*Node, logic.Term, error) {
	dn := b.tree.Node(i)
	node := &Node{ID: dn.ID, Meta: map[string]string{"category": dn.Category}}
	if dn.Rule != "" {
		node.Meta["rule"] = dn.Rule
	}

	var term logic.Term
	if dn.Token != nil {
		t, err := b.leaf(dn, node)
		if err != nil {
			return nil, nil, err
		}
		term = t
	} else {
		args := make([]logic.Term, len(dn.Children))
		for k, ci := range dn.Children {
			child, t, err := b.compose(ci)
			if err != nil {
				return nil, nil, err
			}
			node.Children = append(node.Children, child)
			args[k] = t
		}
		tmpl, ok := b.lex.Rule(dn.Category, dn.Rule)
		switch {
		case ok:
			t, err := logic.Normalize(logic.NewApp(tmpl.sem, args...))
			if err != nil {
				return nil, nil, fmt.Errorf("%w: span %s: %v", domain.ErrCompositionFailure, dn.ID, err)
			}
			term = t
		case len(args) == 1:
			term = args[0]
		default:
			return nil, nil, fmt.Errorf("%w: no template for rule %q at category %s", domain.ErrCompositionFailure, dn.Rule, dn.Category)
		}
	}

	typing, err := logic.Infer(term, b.fixed)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: span %s: %v", domain.ErrCompositionFailure, dn.ID, err)
	}
	node.Sem = logic.String(term)
	node.Type = typing.Type.String()
	return node, term, nil
}

func (b *builder) leaf(dn *derivation.Node, node *Node) (logic.Term, error) {
	tok := dn.Token
	node.Meta["surf"] = tok.Surf
	node.Meta["base"] = tok.Base
	if tok.POS != "" {
		node.Meta["pos"] = tok.POS
	}

	tmpl, ok := b.lex.Leaf(dn.Category, tok.Base, tok.Surf)
	if !ok {
		return nil, fmt.Errorf("%w: no lexical template for %q at category %s", domain.ErrCompositionFailure, tok.Surf, dn.Category)
	}

	word := tok.Base
	if word == "" || word == "*" {
		word = tok.Surf
	}
	sym := Sanitize(word)

	if tmpl.typ != nil {
		if prev, ok := b.fixed[sym]; ok && prev.String() != tmpl.typ.String() {
			return nil, fmt.Errorf("%w: %s typed both %s and %s", domain.ErrCompositionFailure, sym, prev, tmpl.typ)
		}
		b.fixed[sym] = tmpl.typ
		node.Meta["coq_type"] = Decorate(sym + " : " + tmpl.typ.String())
	}

	term := tmpl.sem
	if _, isLambda := term.(logic.Lambda); isLambda {
		term = logic.NewApp(term, logic.Ident{Name: sym})
	}
	norm, err := logic.Normalize(term)
	if err != nil {
		return nil, fmt.Errorf("%w: token %s: %v", domain.ErrCompositionFailure, tok.ID, err)
	}
	return norm, nil
}

// Semantics renders the attempt as a document semantics block, listing the
// tree's spans root first.
func (a *Attempt) Semantics() derivation.Semantics {
	sem := derivation.Semantics{Status: string(a.Status), Rank: a.Rank, CCGID: a.CCGID, Root: a.Root}
	if a.Status != StatusSuccess {
		return sem
	}
	var walk func(*Node)
	walk = func(n *Node) {
		ids := make([]string, len(n.Children))
		for i, c := range n.Children {
			ids[i] = c.ID
		}
		sem.Spans = append(sem.Spans, derivation.SemSpan{
			ID:    n.ID,
			Child: strings.Join(ids, " "),
			Sem:   n.Sem,
			Type:  n.Type,
		})
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(a.Tree)
	return sem
}
