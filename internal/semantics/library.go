package semantics

import (
	"strings"

	"github.com/Harshitk-cp/semprove/internal/logic"
)

// Extraction is what one sentence contributes to persistence: a root formula
// per successful attempt, in attempt order, and the merged vocabulary they
// reference.
type Extraction struct {
	Formulas []string
	Library  string
}

// Extract collects the formulas and dynamic library of the successful
// attempts.
func Extract(attempts []Attempt) Extraction {
	var ex Extraction
	var symbols []logic.Symbol
	for _, a := range attempts {
		if a.Status != StatusSuccess {
			continue
		}
		ex.Formulas = append(ex.Formulas, a.Formula)
		symbols = append(symbols, a.Symbols...)
	}
	ex.Library = Library(symbols)
	return ex
}

// Library renders symbol declarations one per line. Declarations keep
// first-seen order and are de-duplicated by text. Custom base types are
// declared before the symbols that use them.
func Library(symbols []logic.Symbol) string {
	var types, params []string
	seen := make(map[string]bool)
	add := func(list *[]string, decl string) {
		if !seen[decl] {
			seen[decl] = true
			*list = append(*list, decl)
		}
	}
	for _, sym := range symbols {
		for _, bt := range logic.BaseTypes(sym.Type) {
			if bt != logic.Entity && bt != logic.Prop {
				add(&types, "Parameter "+string(bt)+" : Type.")
			}
		}
		add(&params, "Parameter "+sym.Name+" : "+sym.Type.String()+".")
	}
	return strings.Join(append(types, params...), "\n")
}

// MergeLibraries concatenates library fragments verbatim. Conflicting
// declarations across fragments are left for the prover to report.
func MergeLibraries(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f = strings.TrimRight(f, "\n"); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, "\n")
}
