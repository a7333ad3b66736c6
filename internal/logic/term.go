// Package logic implements the lambda-calculus formula language that sentence
// meanings are composed in: parsing, canonical printing, beta reduction, type
// inference and rendering into the prover's script dialect.
package logic

// Term is a node of a logical expression.
type Term interface {
	isTerm()
}

// Ident is a variable or constant. Whether it is a variable is decided by the
// binders that enclose it; free identifiers are constants.
type Ident struct {
	Name string
}

// App applies Fn to Args. Constructors keep App flat, so Fn is never an App.
type App struct {
	Fn   Term
	Args []Term
}

// Lambda is the abstraction \Param.Body.
type Lambda struct {
	Param string
	Body  Term
}

type Quantifier int

const (
	All Quantifier = iota
	Exists
)

// Quant is a first-order quantification over Var.
type Quant struct {
	Kind Quantifier
	Var  string
	Body Term
}

type Not struct {
	X Term
}

type Op int

const (
	And Op = iota
	Or
	Imp
	Iff
	Eq
)

// Binary is a binary connective or an equality.
type Binary struct {
	Op   Op
	L, R Term
}

func (Ident) isTerm()  {}
func (App) isTerm()    {}
func (Lambda) isTerm() {}
func (Quant) isTerm()  {}
func (Not) isTerm()    {}
func (Binary) isTerm() {}

// NewApp builds fn(args...), flattening nested applications.
func NewApp(fn Term, args ...Term) Term {
	if len(args) == 0 {
		return fn
	}
	if inner, ok := fn.(App); ok {
		merged := make([]Term, 0, len(inner.Args)+len(args))
		merged = append(merged, inner.Args...)
		merged = append(merged, args...)
		return App{Fn: inner.Fn, Args: merged}
	}
	return App{Fn: fn, Args: args}
}

// FreeIdents returns the free identifiers of t in order of first occurrence.
func FreeIdents(t Term) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Term, map[string]int)
	walk = func(t Term, bound map[string]int) {
		switch n := t.(type) {
		case Ident:
			if bound[n.Name] == 0 && !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case App:
			walk(n.Fn, bound)
			for _, a := range n.Args {
				walk(a, bound)
			}
		case Lambda:
			bound[n.Param]++
			walk(n.Body, bound)
			bound[n.Param]--
		case Quant:
			bound[n.Var]++
			walk(n.Body, bound)
			bound[n.Var]--
		case Not:
			walk(n.X, bound)
		case Binary:
			walk(n.L, bound)
			walk(n.R, bound)
		}
	}
	walk(t, make(map[string]int))
	return out
}

// Equal reports structural equality. Bound variable names must match.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Ident:
		y, ok := b.(Ident)
		return ok && x.Name == y.Name
	case App:
		y, ok := b.(App)
		if !ok || len(x.Args) != len(y.Args) || !Equal(x.Fn, y.Fn) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Lambda:
		y, ok := b.(Lambda)
		return ok && x.Param == y.Param && Equal(x.Body, y.Body)
	case Quant:
		y, ok := b.(Quant)
		return ok && x.Kind == y.Kind && x.Var == y.Var && Equal(x.Body, y.Body)
	case Not:
		y, ok := b.(Not)
		return ok && Equal(x.X, y.X)
	case Binary:
		y, ok := b.(Binary)
		return ok && x.Op == y.Op && Equal(x.L, y.L) && Equal(x.R, y.R)
	}
	return false
}
