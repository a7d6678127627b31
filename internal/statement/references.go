package statement

import "strings"

// ReferenceIndex maps the end-to-end reference of a booking (Kundenreferenz)
// to its counterparty.
type ReferenceIndex struct {
	Merchants map[string]string
	// Conflicts lists references that named more than one counterparty, in
	// the order they were found. They are absent from Merchants.
	Conflicts []string
	// Considered counts rows that passed the IBAN filter.
	Considered      int
	BlankReferences int
}

// IndexReferences builds a ReferenceIndex from rows booked on iban. An empty
// iban considers every row. IBANs are compared ignoring spaces and case.
func IndexReferences(rows []Row, iban string) ReferenceIndex {
	idx := ReferenceIndex{Merchants: make(map[string]string)}
	target := compactIBAN(iban)
	conflicted := make(map[string]bool)

	for _, row := range rows {
		if target != "" && compactIBAN(row.IBAN) != target {
			continue
		}

		idx.Considered++

		ref := strings.TrimSpace(row.Reference)
		if ref == "" {
			idx.BlankReferences++
			continue
		}

		if conflicted[ref] {
			continue
		}

		existing, ok := idx.Merchants[ref]

		switch {
		case !ok:
			idx.Merchants[ref] = row.Counterparty
		case existing != row.Counterparty:
			delete(idx.Merchants, ref)
			conflicted[ref] = true
			idx.Conflicts = append(idx.Conflicts, ref)
		}
	}

	return idx
}

// Lookup returns the counterparty recorded for ref.
func (idx ReferenceIndex) Lookup(ref string) (string, bool) {
	m, ok := idx.Merchants[strings.TrimSpace(ref)]
	return m, ok
}

func compactIBAN(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
