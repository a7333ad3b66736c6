package prover

import (
	"context"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/semprove/internal/logic"
	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"go.uber.org/zap"
)

// DatalogBackend decides the Horn fragment in process. Premises must be
// ground literals or universally closed implications from a conjunction of
// literals to a conjunction of literals. Negated literals are separate
// predicates, so a conclusion is "no" only when its complement is derived.
// Premises outside the fragment are skipped; dropping premises never turns a
// wrong answer into yes or no.
type DatalogBackend struct {
	logger *zap.Logger
}

func NewDatalogBackend(logger *zap.Logger) *DatalogBackend {
	return &DatalogBackend{logger: logger}
}

func (b *DatalogBackend) Run(ctx context.Context, s *Script) (string, error) {
	enc := newHornEncoder()
	for i, p := range s.Premises {
		if !enc.premise(p) {
			b.logger.Debug("premise outside horn fragment", zap.Int("premise", i+1), zap.String("formula", logic.String(p)))
		}
	}
	goals, ok := enc.goals(s.Conclusion)
	if !ok {
		return "unknown", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	store, err := enc.evaluate()
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	proved := true
	for _, g := range goals {
		found, err := enc.holds(store, g)
		if err != nil {
			return "", err
		}
		if !found {
			proved = false
		}
		refuted, err := enc.holds(store, g.complement())
		if err != nil {
			return "", err
		}
		if refuted {
			return "no", nil
		}
	}
	if proved {
		return "yes", nil
	}
	return "unknown", nil
}

type predKey struct {
	name  string
	arity int
}

// literal is an atom or its classical negation. Args are variable names
// (X0, X1, ...) or constant names (/c0, /c1, ...).
type literal struct {
	negated bool
	pred    predKey
	args    []string
}

func (l literal) complement() literal {
	l.negated = !l.negated
	return l
}

type hornRule struct {
	head literal
	body []literal
}

type hornEncoder struct {
	preds  map[predKey]int
	consts map[string]string
	facts  []literal
	rules  []hornRule
}

// unitConst stands in for the missing argument of a nullary predicate.
const unitConst = "/unit"

func newHornEncoder() *hornEncoder {
	return &hornEncoder{preds: make(map[predKey]int), consts: make(map[string]string)}
}

func (e *hornEncoder) predicate(l literal) string {
	id, ok := e.preds[l.pred]
	if !ok {
		id = len(e.preds)
		e.preds[l.pred] = id
	}
	if l.negated {
		return fmt.Sprintf("neg%d", id)
	}
	return fmt.Sprintf("pos%d", id)
}

func (e *hornEncoder) constant(name string) string {
	c, ok := e.consts[name]
	if !ok {
		c = fmt.Sprintf("/c%d", len(e.consts))
		e.consts[name] = c
	}
	return c
}

// literal encodes t if it is an atom or a negated atom. vars maps bound
// variable names to Datalog variables.
func (e *hornEncoder) literal(t logic.Term, vars map[string]string) (literal, bool) {
	if n, ok := t.(logic.Not); ok {
		l, ok := e.literal(n.X, vars)
		if !ok || l.negated {
			return literal{}, false
		}
		return l.complement(), true
	}
	switch a := t.(type) {
	case logic.Ident:
		if _, bound := vars[a.Name]; bound {
			return literal{}, false
		}
		return literal{pred: predKey{a.Name, 0}, args: []string{unitConst}}, true
	case logic.App:
		fn, ok := a.Fn.(logic.Ident)
		if !ok {
			return literal{}, false
		}
		if _, bound := vars[fn.Name]; bound {
			return literal{}, false
		}
		l := literal{pred: predKey{fn.Name, len(a.Args)}}
		for _, arg := range a.Args {
			id, ok := arg.(logic.Ident)
			if !ok {
				return literal{}, false
			}
			if v, bound := vars[id.Name]; bound {
				l.args = append(l.args, v)
			} else {
				l.args = append(l.args, e.constant(id.Name))
			}
		}
		return l, true
	}
	return literal{}, false
}

func conjuncts(t logic.Term) []logic.Term {
	if b, ok := t.(logic.Binary); ok && b.Op == logic.And {
		return append(conjuncts(b.L), conjuncts(b.R)...)
	}
	return []logic.Term{t}
}

func (e *hornEncoder) literals(t logic.Term, vars map[string]string) ([]literal, bool) {
	var out []literal
	for _, c := range conjuncts(t) {
		l, ok := e.literal(c, vars)
		if !ok {
			return nil, false
		}
		out = append(out, l)
	}
	return out, true
}

// premise records t and reports whether all of it was inside the fragment.
// The parts of a conjunction are recorded independently.
func (e *hornEncoder) premise(t logic.Term) bool {
	if parts := conjuncts(t); len(parts) > 1 {
		all := true
		for _, p := range parts {
			if !e.premise(p) {
				all = false
			}
		}
		return all
	}
	if l, ok := e.literal(t, nil); ok {
		e.facts = append(e.facts, l)
		return true
	}

	vars := make(map[string]string)
	body := t
	for {
		q, ok := body.(logic.Quant)
		if !ok || q.Kind != logic.All {
			break
		}
		vars[q.Var] = fmt.Sprintf("X%d", len(vars))
		body = q.Body
	}
	imp, ok := body.(logic.Binary)
	if !ok || imp.Op != logic.Imp {
		return false
	}

	antecedent, ok := e.literals(imp.L, vars)
	if !ok {
		return false
	}
	consequent, ok := e.literals(imp.R, vars)
	if !ok {
		return false
	}
	bodyVars := make(map[string]bool)
	for _, l := range antecedent {
		for _, a := range l.args {
			bodyVars[a] = true
		}
	}
	for _, h := range consequent {
		for _, a := range h.args {
			if strings.HasPrefix(a, "X") && !bodyVars[a] {
				return false
			}
		}
	}
	for _, h := range consequent {
		e.rules = append(e.rules, hornRule{head: h, body: antecedent})
	}
	return true
}

// goals encodes a conclusion made of ground literals.
func (e *hornEncoder) goals(t logic.Term) ([]literal, bool) {
	return e.literals(t, nil)
}

func (e *hornEncoder) atom(l literal) string {
	return e.predicate(l) + "(" + strings.Join(l.args, ", ") + ")"
}

// program renders the facts and the rules whose bodies can fire. Rules over
// predicates nothing defines are dropped; analysis rejects them.
func (e *hornEncoder) program() string {
	defined := make(map[string]bool)
	var b strings.Builder
	for _, f := range e.facts {
		defined[e.predicate(f)] = true
		b.WriteString(e.atom(f))
		b.WriteString(".\n")
	}

	pending := e.rules
	for changed := true; changed; {
		changed = false
		var rest []hornRule
		for _, r := range pending {
			usable := true
			for _, l := range r.body {
				if !defined[e.predicate(l)] {
					usable = false
					break
				}
			}
			if !usable {
				rest = append(rest, r)
				continue
			}
			body := make([]string, len(r.body))
			for i, l := range r.body {
				body[i] = e.atom(l)
			}
			fmt.Fprintf(&b, "%s :- %s.\n", e.atom(r.head), strings.Join(body, ", "))
			defined[e.predicate(r.head)] = true
			changed = true
		}
		pending = rest
	}
	return b.String()
}

func (e *hornEncoder) evaluate() (factstore.FactStore, error) {
	store := factstore.NewSimpleInMemoryStore()
	src := e.program()
	if src == "" {
		return store, nil
	}
	unit, err := parse.Unit(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse horn program: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analyze horn program: %w", err)
	}
	if _, err := engine.EvalProgramWithStats(info, store); err != nil {
		return nil, fmt.Errorf("evaluate horn program: %w", err)
	}
	return store, nil
}

func (e *hornEncoder) holds(store factstore.FactStore, l literal) (bool, error) {
	sym := ast.PredicateSym{Symbol: e.predicate(l), Arity: len(l.args)}
	found := false
	err := store.GetFacts(ast.NewQuery(sym), func(a ast.Atom) error {
		if len(a.Args) != len(l.args) {
			return nil
		}
		for i, arg := range a.Args {
			if arg.String() != l.args[i] {
				return nil
			}
		}
		found = true
		return nil
	})
	return found, err
}
