package logic

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultReductionLimit bounds the beta steps Normalize will take.
const DefaultReductionLimit = 10000

// ErrReductionLimit is returned when a term does not normalize in time.
var ErrReductionLimit = errors.New("beta reduction limit exceeded")

// Normalize beta-reduces t to normal form.
func Normalize(t Term) (Term, error) {
	return NormalizeN(t, DefaultReductionLimit)
}

// NormalizeN is Normalize with an explicit step limit.
func NormalizeN(t Term, limit int) (Term, error) {
	r := &reducer{limit: limit}
	return r.norm(t)
}

type reducer struct {
	steps int
	limit int
}

func (r *reducer) norm(t Term) (Term, error) {
	switch n := t.(type) {
	case Ident:
		return n, nil
	case App:
		fn, err := r.norm(n.Fn)
		if err != nil {
			return nil, err
		}
		if lam, ok := fn.(Lambda); ok {
			r.steps++
			if r.steps > r.limit {
				return nil, fmt.Errorf("%w after %d steps", ErrReductionLimit, r.limit)
			}
			body := Subst(lam.Body, lam.Param, n.Args[0])
			return r.norm(NewApp(body, n.Args[1:]...))
		}
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			if args[i], err = r.norm(a); err != nil {
				return nil, err
			}
		}
		return NewApp(fn, args...), nil
	case Lambda:
		body, err := r.norm(n.Body)
		if err != nil {
			return nil, err
		}
		return Lambda{Param: n.Param, Body: body}, nil
	case Quant:
		body, err := r.norm(n.Body)
		if err != nil {
			return nil, err
		}
		return Quant{Kind: n.Kind, Var: n.Var, Body: body}, nil
	case Not:
		x, err := r.norm(n.X)
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	case Binary:
		l, err := r.norm(n.L)
		if err != nil {
			return nil, err
		}
		rr, err := r.norm(n.R)
		if err != nil {
			return nil, err
		}
		return Binary{Op: n.Op, L: l, R: rr}, nil
	}
	return nil, fmt.Errorf("unknown term %T", t)
}

// Subst replaces the free occurrences of name in t with val, renaming
// binders that would capture free identifiers of val.
func Subst(t Term, name string, val Term) Term {
	free := make(map[string]bool)
	for _, id := range FreeIdents(val) {
		free[id] = true
	}
	return subst(t, name, val, free)
}

func subst(t Term, name string, val Term, free map[string]bool) Term {
	switch n := t.(type) {
	case Ident:
		if n.Name == name {
			return val
		}
		return n
	case App:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = subst(a, name, val, free)
		}
		return NewApp(subst(n.Fn, name, val, free), args...)
	case Lambda:
		param, body, ok := substBinder(n.Param, n.Body, name, val, free)
		if !ok {
			return n
		}
		return Lambda{Param: param, Body: body}
	case Quant:
		v, body, ok := substBinder(n.Var, n.Body, name, val, free)
		if !ok {
			return n
		}
		return Quant{Kind: n.Kind, Var: v, Body: body}
	case Not:
		return Not{X: subst(n.X, name, val, free)}
	case Binary:
		return Binary{Op: n.Op, L: subst(n.L, name, val, free), R: subst(n.R, name, val, free)}
	}
	return t
}

// substBinder handles a binder of v over body. ok is false when v shadows
// name and the binder is left untouched.
func substBinder(v string, body Term, name string, val Term, free map[string]bool) (string, Term, bool) {
	if v == name {
		return v, body, false
	}
	if free[v] && occursFree(body, name) {
		avoid := make(map[string]bool, len(free))
		for id := range free {
			avoid[id] = true
		}
		for _, id := range FreeIdents(body) {
			avoid[id] = true
		}
		fresh := freshName(v, avoid)
		body = subst(body, v, Ident{Name: fresh}, map[string]bool{fresh: true})
		v = fresh
	}
	return v, subst(body, name, val, free), true
}

func occursFree(t Term, name string) bool {
	for _, id := range FreeIdents(t) {
		if id == name {
			return true
		}
	}
	return false
}

func freshName(base string, avoid map[string]bool) string {
	for i := 1; ; i++ {
		cand := base + strconv.Itoa(i)
		if !avoid[cand] {
			return cand
		}
	}
}
