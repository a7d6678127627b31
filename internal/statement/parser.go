package statement

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lehrbaum/firefly/internal/amount"
	enc "github.com/lehrbaum/firefly/internal/encoding"
)

var ErrUnknownFormat = errors.New("no matching statement format found")

//go:generate mockgen -source=parser.go -destination=normalizer_mock.go -package=statement
type Normalizer interface {
	Normalize(ctx context.Context, raw, localeID string) (amount.Parsed, error)
}

// Row is one booking of a statement with its amount in canonical form.
type Row struct {
	Number       int
	Date         time.Time
	Description  string
	Counterparty string
	IBAN         string
	Reference    string
	Amount       amount.Parsed
	Cents        int64
}

// Issue describes a data row that could not be turned into a Row.
type Issue struct {
	Row     int
	Message string
}

type Statement struct {
	Profile string
	Charset enc.Charset
	Rows    []Row
	Issues  []Issue
}

// Parser reads bank CSV exports. It auto-detects the export format by
// matching column headers against known profiles and normalizes every
// amount in the profile's locale.
type Parser struct {
	normalizer Normalizer
}

func NewParser(normalizer Normalizer) *Parser {
	return &Parser{normalizer: normalizer}
}

type record struct {
	line   int
	fields []string
}

func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Statement, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	records, err := readRecords(utf8r)
	if err != nil {
		return nil, err
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, fmt.Errorf("%w: expected columns for %s", ErrUnknownFormat, strings.Join(Profiles(), ", "))
	}

	st := &Statement{Profile: profile.Name, Charset: charset}

	for _, rec := range records[headerIdx+1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, ok, err := p.parseRow(ctx, profile, cols, rec)
		if err != nil {
			st.Issues = append(st.Issues, Issue{Row: rec.line, Message: err.Error()})
			continue
		}

		if ok {
			st.Rows = append(st.Rows, row)
		}
	}

	return st, nil
}

func readRecords(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans records for a header that matches a known profile.
// Returns the matched profile, column index map, and header record index.
func detectProfile(records []record) (*Profile, colIndex, int) {
	for idx, rec := range records {
		cols := make(colIndex)

		for i, cell := range rec.fields {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, idx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRow turns a data record into a Row. Records without a parseable date
// (blank lines, footers) are skipped without an error.
func (p *Parser) parseRow(ctx context.Context, profile *Profile, cols colIndex, rec record) (Row, bool, error) {
	date, ok := parseDate(profile, cellValue(rec.fields, cols, profile.DateCol))
	if !ok {
		return Row{}, false, nil
	}

	row := Row{
		Number:       rec.line,
		Date:         date,
		Counterparty: cellValue(rec.fields, cols, profile.CounterpartyCol),
		IBAN:         cellValue(rec.fields, cols, profile.IBANCol),
		Reference:    cellValue(rec.fields, cols, profile.ReferenceCol),
	}

	row.Description = firstNonEmpty(
		cellValue(rec.fields, cols, profile.DescCol),
		cellValue(rec.fields, cols, profile.PurposeCol),
		row.Counterparty,
	)
	if row.Description == "" {
		return Row{}, false, errors.New("missing description")
	}

	parsed, err := p.parseAmount(ctx, profile, cols, rec.fields)
	if err != nil {
		return Row{}, false, err
	}

	cents, err := parsed.Cents()
	if err != nil {
		return Row{}, false, fmt.Errorf("amount %q: %w", parsed, err)
	}

	row.Amount = parsed
	row.Cents = cents

	return row, true, nil
}

// parseDate tries each layout of the profile. Returns false for empty cells
// or unparseable values (footer rows, etc).
func parseDate(profile *Profile, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range profile.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount extracts the signed amount of a row based on the profile's amount mode.
func (p *Parser) parseAmount(ctx context.Context, profile *Profile, cols colIndex, fields []string) (amount.Parsed, error) {
	switch profile.AmountMode {
	case amountSingle:
		return p.normalize(ctx, profile, cellValue(fields, cols, profile.AmountCol))
	case amountSplit:
		return p.parseSplitAmount(ctx, profile, cellValue(fields, cols, profile.DebitCol), cellValue(fields, cols, profile.CreditCol))
	}

	return "", fmt.Errorf("unsupported amount mode %d", profile.AmountMode)
}

// parseSplitAmount handles separate debit/credit columns. Debits are negated.
func (p *Parser) parseSplitAmount(ctx context.Context, profile *Profile, debit, credit string) (amount.Parsed, error) {
	if debit != "" {
		parsed, err := p.normalize(ctx, profile, debit)
		if err != nil {
			return "", err
		}

		if !isZero(parsed) || credit == "" {
			return negate(parsed), nil
		}
	}

	if credit != "" {
		return p.normalize(ctx, profile, credit)
	}

	return "", errors.New("missing amount")
}

func (p *Parser) normalize(ctx context.Context, profile *Profile, raw string) (amount.Parsed, error) {
	parsed, err := p.normalizer.Normalize(ctx, raw, profile.Locale)
	if err != nil {
		return "", fmt.Errorf("amount %q: %w", raw, err)
	}

	return parsed, nil
}

func negate(p amount.Parsed) amount.Parsed {
	if !p.IsCanonical() || isZero(p) {
		return p
	}

	if s, ok := strings.CutPrefix(string(p), "-"); ok {
		return amount.Parsed(s)
	}

	return "-" + p
}

func isZero(p amount.Parsed) bool {
	d, err := p.Decimal()
	return err == nil && d.IsZero()
}

// cellValue safely gets a trimmed cell value for the named column.
func cellValue(fields []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(fields) {
		return ""
	}

	return strings.TrimSpace(fields[idx])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
