package logic

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Type is a semantic type.
type Type interface {
	String() string
}

// BaseType is an atomic type such as Entity, Prop, or a lexicon-defined type.
type BaseType string

// FuncType is From -> To.
type FuncType struct {
	From, To Type
}

type typeVar int

const (
	Entity BaseType = "Entity"
	Prop   BaseType = "Prop"
)

func (b BaseType) String() string { return string(b) }

func (f FuncType) String() string {
	from := f.From.String()
	if _, ok := f.From.(FuncType); ok {
		from = "(" + from + ")"
	}
	return from + " -> " + f.To.String()
}

func (v typeVar) String() string { return fmt.Sprintf("t%d", int(v)) }

// Func builds the curried type args[0] -> ... -> result.
func Func(result Type, args ...Type) Type {
	for i := len(args) - 1; i >= 0; i-- {
		result = FuncType{From: args[i], To: result}
	}
	return result
}

// BaseTypes returns the atomic types of t in order, without duplicates.
func BaseTypes(t Type) []BaseType {
	var out []BaseType
	seen := make(map[BaseType]bool)
	var walk func(Type)
	walk = func(t Type) {
		switch x := t.(type) {
		case BaseType:
			if !seen[x] {
				seen[x] = true
				out = append(out, x)
			}
		case FuncType:
			walk(x.From)
			walk(x.To)
		}
	}
	walk(t)
	return out
}

// ParseType reads a type such as "Entity -> Prop" or "(Entity -> Prop) -> Prop".
func ParseType(src string) (Type, error) {
	tp := &typeParser{src: src}
	t, err := tp.arrow()
	if err != nil {
		return nil, err
	}
	tp.skipSpace()
	if tp.pos != len(tp.src) {
		return nil, fmt.Errorf("type %q: unexpected %q at offset %d", src, tp.src[tp.pos:], tp.pos)
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (tp *typeParser) skipSpace() {
	for tp.pos < len(tp.src) && tp.src[tp.pos] == ' ' {
		tp.pos++
	}
}

func (tp *typeParser) arrow() (Type, error) {
	from, err := tp.atom()
	if err != nil {
		return nil, err
	}
	tp.skipSpace()
	if strings.HasPrefix(tp.src[tp.pos:], "->") {
		tp.pos += 2
		to, err := tp.arrow()
		if err != nil {
			return nil, err
		}
		return FuncType{From: from, To: to}, nil
	}
	return from, nil
}

func (tp *typeParser) atom() (Type, error) {
	tp.skipSpace()
	if tp.pos < len(tp.src) && tp.src[tp.pos] == '(' {
		tp.pos++
		t, err := tp.arrow()
		if err != nil {
			return nil, err
		}
		tp.skipSpace()
		if tp.pos >= len(tp.src) || tp.src[tp.pos] != ')' {
			return nil, fmt.Errorf("type %q: missing \")\"", tp.src)
		}
		tp.pos++
		return t, nil
	}
	start := tp.pos
	for tp.pos < len(tp.src) {
		r, size := utf8.DecodeRuneInString(tp.src[tp.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		tp.pos += size
	}
	if start == tp.pos {
		return nil, fmt.Errorf("type %q: expected type name at offset %d", tp.src, start)
	}
	return BaseType(tp.src[start:tp.pos]), nil
}

// ErrTypeMismatch is matched by every inference failure.
var ErrTypeMismatch = errors.New("type mismatch")

// TypeError reports two types that could not be unified.
type TypeError struct {
	Want, Got Type
	Term      string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type mismatch in %s: cannot unify %s with %s", e.Term, e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// Symbol is a free constant and its inferred type.
type Symbol struct {
	Name string
	Type Type
}

// Typing is the result of inferring a term.
type Typing struct {
	Type    Type
	Symbols []Symbol
}

// Infer computes the type of t and of every free constant in it. fixed pins
// the types of known constants. A constant used as a function returns Prop
// unless something else constrains its result. Other leftover variables,
// including those of lambda parameters, default to Entity.
func Infer(t Term, fixed map[string]Type) (*Typing, error) {
	return inferTerm(t, fixed, false)
}

// InferFormula is Infer for a complete formula: a term whose type is not a
// function type must be a Prop.
func InferFormula(t Term, fixed map[string]Type) (*Typing, error) {
	return inferTerm(t, fixed, true)
}

func inferTerm(t Term, fixed map[string]Type, formula bool) (*Typing, error) {
	in := &inferencer{
		subst:  make(map[typeVar]Type),
		consts: make(map[string]Type),
		fixed:  fixed,
	}
	typ, err := in.infer(t, nil)
	if err != nil {
		return nil, err
	}
	if _, isFunc := in.walk(typ).(FuncType); formula && !isFunc {
		if err := in.unify(Prop, typ, t); err != nil {
			return nil, err
		}
	}
	for _, name := range in.order {
		in.defaultResult(in.consts[name])
	}
	out := &Typing{Type: in.resolve(typ)}
	for _, name := range in.order {
		out.Symbols = append(out.Symbols, Symbol{Name: name, Type: in.resolve(in.consts[name])})
	}
	return out, nil
}

type scope struct {
	name string
	typ  Type
	up   *scope
}

func (s *scope) lookup(name string) (Type, bool) {
	for ; s != nil; s = s.up {
		if s.name == name {
			return s.typ, true
		}
	}
	return nil, false
}

type inferencer struct {
	next   int
	subst  map[typeVar]Type
	consts map[string]Type
	order  []string
	fixed  map[string]Type
}

func (in *inferencer) fresh() typeVar {
	in.next++
	return typeVar(in.next)
}

func (in *inferencer) infer(t Term, env *scope) (Type, error) {
	switch n := t.(type) {
	case Ident:
		if typ, ok := env.lookup(n.Name); ok {
			return typ, nil
		}
		if typ, ok := in.consts[n.Name]; ok {
			return typ, nil
		}
		var typ Type = in.fresh()
		if pinned, ok := in.fixed[n.Name]; ok {
			typ = pinned
		}
		in.consts[n.Name] = typ
		in.order = append(in.order, n.Name)
		return typ, nil
	case App:
		ft, err := in.infer(n.Fn, env)
		if err != nil {
			return nil, err
		}
		for _, a := range n.Args {
			at, err := in.infer(a, env)
			if err != nil {
				return nil, err
			}
			res := in.fresh()
			if err := in.unify(ft, FuncType{From: at, To: res}, t); err != nil {
				return nil, err
			}
			ft = res
		}
		return ft, nil
	case Lambda:
		pv := in.fresh()
		bt, err := in.infer(n.Body, &scope{name: n.Param, typ: pv, up: env})
		if err != nil {
			return nil, err
		}
		return FuncType{From: pv, To: bt}, nil
	case Quant:
		bt, err := in.infer(n.Body, &scope{name: n.Var, typ: in.fresh(), up: env})
		if err != nil {
			return nil, err
		}
		if err := in.unify(Prop, bt, n.Body); err != nil {
			return nil, err
		}
		return Prop, nil
	case Not:
		xt, err := in.infer(n.X, env)
		if err != nil {
			return nil, err
		}
		if err := in.unify(Prop, xt, n.X); err != nil {
			return nil, err
		}
		return Prop, nil
	case Binary:
		lt, err := in.infer(n.L, env)
		if err != nil {
			return nil, err
		}
		rt, err := in.infer(n.R, env)
		if err != nil {
			return nil, err
		}
		if n.Op == Eq {
			if err := in.unify(lt, rt, t); err != nil {
				return nil, err
			}
			return Prop, nil
		}
		if err := in.unify(Prop, lt, n.L); err != nil {
			return nil, err
		}
		if err := in.unify(Prop, rt, n.R); err != nil {
			return nil, err
		}
		return Prop, nil
	}
	return nil, fmt.Errorf("unknown term %T", t)
}

func (in *inferencer) walk(t Type) Type {
	for {
		v, ok := t.(typeVar)
		if !ok {
			return t
		}
		bound, ok := in.subst[v]
		if !ok {
			return t
		}
		t = bound
	}
}

func (in *inferencer) unify(a, b Type, at Term) error {
	a, b = in.walk(a), in.walk(b)
	if va, ok := a.(typeVar); ok {
		return in.bind(va, b, at)
	}
	if vb, ok := b.(typeVar); ok {
		return in.bind(vb, a, at)
	}
	switch x := a.(type) {
	case BaseType:
		if y, ok := b.(BaseType); ok && x == y {
			return nil
		}
	case FuncType:
		if y, ok := b.(FuncType); ok {
			if err := in.unify(x.From, y.From, at); err != nil {
				return err
			}
			return in.unify(x.To, y.To, at)
		}
	}
	return &TypeError{Want: in.resolve(a), Got: in.resolve(b), Term: String(at)}
}

func (in *inferencer) bind(v typeVar, t Type, at Term) error {
	if tv, ok := t.(typeVar); ok && tv == v {
		return nil
	}
	if in.occurs(v, t) {
		return &TypeError{Want: v, Got: in.resolve(t), Term: String(at)}
	}
	in.subst[v] = t
	return nil
}

func (in *inferencer) occurs(v typeVar, t Type) bool {
	switch x := in.walk(t).(type) {
	case typeVar:
		return x == v
	case FuncType:
		return in.occurs(v, x.From) || in.occurs(v, x.To)
	}
	return false
}

// defaultResult binds the final result of a function type to Prop when it is
// still unconstrained. Nothing happens for types that are not functions.
func (in *inferencer) defaultResult(t Type) {
	f, ok := in.walk(t).(FuncType)
	if !ok {
		return
	}
	res := in.walk(f.To)
	for {
		next, ok := res.(FuncType)
		if !ok {
			break
		}
		res = in.walk(next.To)
	}
	if v, ok := res.(typeVar); ok {
		in.subst[v] = Prop
	}
}

// resolve applies the substitution and defaults leftover variables to Entity.
func (in *inferencer) resolve(t Type) Type {
	switch x := in.walk(t).(type) {
	case typeVar:
		return Entity
	case FuncType:
		return FuncType{From: in.resolve(x.From), To: in.resolve(x.To)}
	default:
		return x
	}
}
