package finance

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ParseErrorCode identifies the structural failure category of a statement
// upload. Row-level failures are not errors; bad rows are dropped.
type ParseErrorCode string

const (
	ErrMissingColumn       ParseErrorCode = "missing_column"
	ErrEmptyOrUnparseable  ParseErrorCode = "empty_or_unparseable"
	ErrNoValidTransactions ParseErrorCode = "no_valid_transactions"
)

// ParseError is a terminal statement-parse failure with a user-facing
// remediation message. No partial result accompanies it.
type ParseError struct {
	Code    ParseErrorCode
	Column  string // set for ErrMissingColumn
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Synonym sets for header matching, after normalization.
var (
	dateHeaders    = []string{"date", "transaction_date", "trans_date"}
	descHeaders    = []string{"description", "memo", "details", "payee", "name"}
	amountHeaders  = []string{"amount", "transaction_amount", "debit/credit", "value"}
	balanceHeaders = []string{"balance", "running_balance", "available_balance"}
)

// normalizeHeader lowercases a raw header and collapses whitespace runs to
// underscores, so "Transaction Date" and "transaction_date" both match.
func normalizeHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(header))), "_")
}

var amountCleaner = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "", "\t", "")

// parseAmount strips currency symbols, thousands separators and whitespace,
// then parses the remainder as a decimal.
func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseDate tries ISO-8601 first, then MM/DD/YYYY.
func parseDate(raw string) (civil.Date, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return civil.Date{}, false
	}
	if d, err := civil.ParseDate(cleaned); err == nil {
		return d, true
	}
	parts := strings.Split(cleaned, "/")
	if len(parts) == 3 {
		month, okM := atoi(parts[0])
		day, okD := atoi(parts[1])
		year, okY := atoi(parts[2])
		if okM && okD && okY {
			d := civil.Date{Year: year, Month: time.Month(month), Day: day}
			if d.IsValid() {
				return d, true
			}
		}
	}
	return civil.Date{}, false
}

func findHeader(normalized []string, candidates []string) int {
	for i, h := range normalized {
		for _, c := range candidates {
			if h == c {
				return i
			}
		}
	}
	return -1
}

// ParseCSV normalizes a raw statement export into transactions. Rows whose
// date or amount fail to parse are skipped silently; statements routinely
// carry footer and subtotal rows. If a running-balance column is present,
// the balance on the chronologically latest parsed row becomes the starting
// balance (ties keep the first-seen value for that date).
func ParseCSV(csvText string) (*ParsedCSV, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed record does not doom the file; skip it like any
			// other unparseable row.
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &ParseError{
			Code:    ErrEmptyOrUnparseable,
			Message: "Could not parse the CSV file. Check that it's a valid CSV.",
		}
	}

	rawHeaders := records[0]
	normalized := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		normalized[i] = normalizeHeader(h)
	}

	dateIdx := findHeader(normalized, dateHeaders)
	descIdx := findHeader(normalized, descHeaders)
	amountIdx := findHeader(normalized, amountHeaders)

	if dateIdx == -1 {
		return nil, missingColumn("date")
	}
	if descIdx == -1 {
		return nil, missingColumn("description")
	}
	if amountIdx == -1 {
		return nil, missingColumn("amount")
	}

	balanceIdx := findHeader(normalized, balanceHeaders)

	var (
		transactions  []Transaction
		latestDate    civil.Date
		latestBalance decimal.Decimal
		haveBalance   bool
	)

	for _, row := range records[1:] {
		date, okDate := parseDate(fieldAt(row, dateIdx))
		amount, okAmount := parseAmount(fieldAt(row, amountIdx))
		if !okDate || !okAmount {
			continue
		}

		transactions = append(transactions, Transaction{
			Date:        date,
			Description: strings.TrimSpace(fieldAt(row, descIdx)),
			Amount:      amount,
		})

		if balanceIdx != -1 {
			if balance, ok := parseAmount(fieldAt(row, balanceIdx)); ok {
				if !haveBalance || date.After(latestDate) {
					latestDate = date
					latestBalance = balance
					haveBalance = true
				}
			}
		}
	}

	if len(transactions) == 0 {
		return nil, &ParseError{
			Code:    ErrNoValidTransactions,
			Message: "No valid transactions found in the CSV. Check that the date and amount columns contain valid values.",
		}
	}

	return &ParsedCSV{
		Transactions:      transactions,
		HasBalanceColumn:  haveBalance,
		StartingBalance:   latestBalance,
		NeedsBalanceInput: !haveBalance,
	}, nil
}

func missingColumn(name string) *ParseError {
	return &ParseError{
		Code:    ErrMissingColumn,
		Column:  name,
		Message: "Required column \"" + name + "\" not found. Expected headers: date, description, amount.",
	}
}

func fieldAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func atoi(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
