package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Betrag (€)" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns (e.g. "Débito"/"Crédito").
	amountSplit
)

// Profile describes the column layout of a bank CSV export.
// Adding a new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	Locale      string
	DateCol     string
	DateLayouts []string
	DescCol     string
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit

	// CounterpartyCol is required when set; the rest are read when present.
	CounterpartyCol string
	PurposeCol      string
	IBANCol         string
	ReferenceCol    string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol}
	if p.DescCol != "" {
		cols = append(cols, p.DescCol)
	}

	if p.CounterpartyCol != "" {
		cols = append(cols, p.CounterpartyCol)
	}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:            "dkb",
		Locale:          "de_DE",
		DateCol:         "Buchungsdatum",
		DateLayouts:     []string{"02.01.06", "02.01.2006"},
		CounterpartyCol: "Zahlungsempfänger*in",
		PurposeCol:      "Verwendungszweck",
		AmountMode:      amountSingle,
		AmountCol:       "Betrag (€)",
		IBANCol:         "IBAN",
		ReferenceCol:    "Kundenreferenz",
	},
	{
		Name:        "cartão",
		Locale:      "pt_PT",
		DateCol:     "Data",
		DateLayouts: []string{"02-01-2006"},
		DescCol:     "Descrição",
		AmountMode:  amountSplit,
		DebitCol:    "Débito",
		CreditCol:   "Crédito",
	},
	{
		Name:        "extrato",
		Locale:      "pt_PT",
		DateCol:     "Data mov.",
		DateLayouts: []string{"02-01-2006"},
		DescCol:     "Descrição",
		AmountMode:  amountSingle,
		AmountCol:   "Movimento",
	},
	{
		Name:        "conta",
		Locale:      "pt_PT",
		DateCol:     "Data mov.",
		DateLayouts: []string{"02-01-2006"},
		DescCol:     "Descrição",
		AmountMode:  amountSingle,
		AmountCol:   "Montante",
	},
}

// Profiles returns the names of the supported export formats in detection order.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}

	return names
}
