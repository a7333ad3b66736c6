package domain

// Table names a provenance relation.
type Table string

const (
	TableSentence Table = "sentence"
	TableFormula  Table = "formula"
	TableTheorem  Table = "theorem"
)

// ParseTable accepts the relation names and their plural route forms.
func ParseTable(s string) (Table, error) {
	switch s {
	case "sentence", "sentences":
		return TableSentence, nil
	case "formula", "formulas":
		return TableFormula, nil
	case "theorem", "theorems":
		return TableTheorem, nil
	}
	return "", ErrUnknownTable
}
