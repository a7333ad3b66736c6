package prover

import (
	"fmt"
	"strings"

	"github.com/Harshitk-cp/semprove/internal/logic"
	"github.com/Harshitk-cp/semprove/internal/semantics"
)

// Problem is an entailment question over formula texts.
type Problem struct {
	Premises   []string
	Conclusion string
	Library    string
}

// Script is a built proof script. Text is the prover input; the parsed terms
// are kept for backends that reason over them directly.
type Script struct {
	Text       string
	Library    string
	Premises   []logic.Term
	Conclusion logic.Term
}

// BuildScript parses the problem and renders it in the prover dialect. The
// goal is stated twice: directly, then negated. When no library is given one
// is inferred from the formulas.
func BuildScript(p Problem) (*Script, error) {
	s := &Script{Library: p.Library}
	for i, src := range p.Premises {
		t, err := logic.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("premise %d: %w", i+1, err)
		}
		s.Premises = append(s.Premises, t)
	}
	concl, err := logic.Parse(p.Conclusion)
	if err != nil {
		return nil, fmt.Errorf("conclusion: %w", err)
	}
	s.Conclusion = concl

	if strings.TrimSpace(s.Library) == "" {
		lib, err := inferLibrary(append(append([]logic.Term{}, s.Premises...), concl))
		if err != nil {
			return nil, err
		}
		s.Library = lib
	}

	var b strings.Builder
	b.WriteString("Require Export coqlib.\n")
	seen := make(map[string]bool)
	for _, line := range strings.Split(s.Library, "\n") {
		line = strings.TrimSpace(line)
		// Coq rejects a second Parameter with the same name.
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		b.WriteString(line)
		b.WriteByte('\n')
	}
	writeSection(&b, "Direct", "direct", s.Premises, logic.Coq(concl))
	writeSection(&b, "Negated", "negated", s.Premises, "~ "+logic.Coq(concl))
	s.Text = b.String()
	return s, nil
}

func writeSection(b *strings.Builder, section, theorem string, premises []logic.Term, goal string) {
	fmt.Fprintf(b, "Section %s.\n", section)
	for i, p := range premises {
		fmt.Fprintf(b, "Hypothesis p%d : %s.\n", i+1, logic.Coq(p))
	}
	fmt.Fprintf(b, "Theorem %s : %s.\n", theorem, goal)
	b.WriteString("Proof. nltac. Qed.\n")
	fmt.Fprintf(b, "End %s.\n", section)
}

// inferLibrary types all formulas together so shared constants agree.
func inferLibrary(terms []logic.Term) (string, error) {
	if len(terms) == 0 {
		return "", nil
	}
	all := terms[0]
	for _, t := range terms[1:] {
		all = logic.Binary{Op: logic.And, L: all, R: t}
	}
	typing, err := logic.Infer(all, nil)
	if err != nil {
		return "", fmt.Errorf("infer library: %w", err)
	}
	return semantics.Library(typing.Symbols), nil
}
