package cgd

type amountMode int

const (
	// One signed column, e.g. Montante "-10,00".
	amountSigned amountMode = iota
	// Separate unsigned Débito and Crédito columns.
	amountDebitCredit
)

// layout is the header set of one CGD export.
type layout struct {
	name     string
	date     string
	desc     string
	mode     amountMode
	amount   string
	debit    string
	credit   string
	required []string
}

func newLayout(l layout) layout {
	l.required = []string{l.date, l.desc}

	switch l.mode {
	case amountSigned:
		l.required = append(l.required, l.amount)
	case amountDebitCredit:
		l.required = append(l.required, l.debit, l.credit)
	}

	return l
}

// Tried in order; the card layout shares Descrição with the others and must
// be checked before them.
var layouts = []layout{
	newLayout(layout{name: "cartão", date: "Data", desc: "Descrição", mode: amountDebitCredit, debit: "Débito", credit: "Crédito"}),
	newLayout(layout{name: "extrato", date: "Data mov.", desc: "Descrição", mode: amountSigned, amount: "Movimento"}),
	newLayout(layout{name: "conta", date: "Data mov.", desc: "Descrição", mode: amountSigned, amount: "Montante"}),
}
