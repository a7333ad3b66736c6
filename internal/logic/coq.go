package logic

import "strings"

var coqOps = map[Op]string{
	And: " /\\ ",
	Or:  " \\/ ",
	Imp: " -> ",
	Iff: " <-> ",
	Eq:  " = ",
}

// Coq renders t in the prover's script dialect. Every compound term is
// parenthesized, so the output does not depend on Coq's precedence table.
func Coq(t Term) string {
	var b strings.Builder
	writeCoq(&b, t)
	return b.String()
}

func writeCoq(b *strings.Builder, t Term) {
	switch n := t.(type) {
	case Ident:
		b.WriteString(n.Name)
	case App:
		b.WriteByte('(')
		writeCoq(b, n.Fn)
		for _, a := range n.Args {
			b.WriteByte(' ')
			writeCoq(b, a)
		}
		b.WriteByte(')')
	case Lambda:
		b.WriteString("(fun ")
		b.WriteString(n.Param)
		b.WriteString(" => ")
		writeCoq(b, n.Body)
		b.WriteByte(')')
	case Quant:
		if n.Kind == All {
			b.WriteString("(forall ")
		} else {
			b.WriteString("(exists ")
		}
		b.WriteString(n.Var)
		b.WriteString(", ")
		writeCoq(b, n.Body)
		b.WriteByte(')')
	case Not:
		b.WriteString("(~ ")
		writeCoq(b, n.X)
		b.WriteByte(')')
	case Binary:
		b.WriteByte('(')
		writeCoq(b, n.L)
		b.WriteString(coqOps[n.Op])
		writeCoq(b, n.R)
		b.WriteByte(')')
	}
}
