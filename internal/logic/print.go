package logic

import "strings"

var opText = map[Op]string{
	And: " & ",
	Or:  " | ",
	Imp: " -> ",
	Iff: " <-> ",
	Eq:  " = ",
}

// String renders t in the canonical ASCII syntax. The output always parses
// back to a term equal to t.
func String(t Term) string {
	var b strings.Builder
	write(&b, t, true)
	return b.String()
}

// write prints t. tail is false when more input follows t at the same level;
// binders there would swallow it, so they get wrapped in parentheses.
func write(b *strings.Builder, t Term, tail bool) {
	switch n := t.(type) {
	case Ident:
		b.WriteString(n.Name)
	case App:
		if id, ok := n.Fn.(Ident); ok {
			b.WriteString(id.Name)
		} else {
			b.WriteByte('(')
			write(b, n.Fn, true)
			b.WriteByte(')')
		}
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, a, true)
		}
		b.WriteByte(')')
	case Lambda:
		writeBinder(b, `\`, n.Param, n.Body, tail)
	case Quant:
		if n.Kind == All {
			writeBinder(b, "all ", n.Var, n.Body, tail)
		} else {
			writeBinder(b, "exists ", n.Var, n.Body, tail)
		}
	case Not:
		b.WriteByte('-')
		write(b, n.X, tail)
	case Binary:
		b.WriteByte('(')
		write(b, n.L, false)
		b.WriteString(opText[n.Op])
		write(b, n.R, true)
		b.WriteByte(')')
	}
}

func writeBinder(b *strings.Builder, head, v string, body Term, tail bool) {
	if !tail {
		b.WriteByte('(')
	}
	b.WriteString(head)
	b.WriteString(v)
	b.WriteByte('.')
	write(b, body, true)
	if !tail {
		b.WriteByte(')')
	}
}
