package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawField is one cell as extracted from the input file. Present is false when
// the row had no cell for the mapped column.
type RawField struct {
	Value   string
	Present bool
}

// RawRecord is one untyped row extracted from the input file. Row is the
// 1-based data row index (the header is row 0) for provenance.
type RawRecord struct {
	TransactionID RawField
	CustomerID    RawField
	Date          RawField
	Amount        RawField
	Currency      RawField
	Status        RawField
	Row           int
}

// NormalizedRecord is a RawRecord after per-field heuristic conversion to
// typed values. Absent fields are the empty string for identifiers, nil for
// date and amount, and the zero enum value for currency and status. IsValid
// and Errors are set by the validator.
type NormalizedRecord struct {
	TransactionID string
	CustomerID    string
	Date          *time.Time
	Amount        *decimal.Decimal
	Currency      Currency
	Status        TransactionStatus
	Row           int
	IsValid       bool
	Errors        []string
}

// Transaction is a fully-typed, fully-present record. Every field is
// guaranteed non-absent by construction.
type Transaction struct {
	TransactionID string
	CustomerID    string
	Date          time.Time
	Amount        decimal.Decimal
	Currency      Currency
	Status        TransactionStatus
	Metadata      map[string]any
}

// TransactionFromNormalized promotes a normalized record to a Transaction.
// Returns ok=false if any field is absent.
func TransactionFromNormalized(rec *NormalizedRecord) (*Transaction, bool) {
	if rec == nil {
		return nil, false
	}
	if rec.TransactionID == "" || rec.CustomerID == "" ||
		rec.Date == nil || rec.Amount == nil ||
		rec.Currency == "" || rec.Status == "" {
		return nil, false
	}

	return &Transaction{
		TransactionID: rec.TransactionID,
		CustomerID:    rec.CustomerID,
		Date:          *rec.Date,
		Amount:        *rec.Amount,
		Currency:      rec.Currency,
		Status:        rec.Status,
		Metadata:      make(map[string]any),
	}, true
}
