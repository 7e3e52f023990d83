package report

import (
	"github.com/shopspring/decimal"

	"github.com/acmepay/txproc/internal/domain"
	"github.com/acmepay/txproc/internal/usecase"
)

// transactionJSON is the wire form of an accepted or duplicate transaction.
type transactionJSON struct {
	TransactionID string          `json:"transaction_id"`
	CustomerID    string          `json:"customer_id"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
}

// recordJSON is the wire form of a normalized record; absent fields are null.
type recordJSON struct {
	Row              int              `json:"row"`
	TransactionID    string           `json:"transaction_id"`
	CustomerID       string           `json:"customer_id"`
	Date             *string          `json:"date"`
	Amount           *decimal.Decimal `json:"amount"`
	Currency         *string          `json:"currency"`
	Status           *string          `json:"status"`
	IsValid          bool             `json:"is_valid"`
	ValidationErrors []string         `json:"validation_errors"`
}

// invalidJSON pairs an invalid record with its error list.
type invalidJSON struct {
	Transaction recordJSON `json:"transaction"`
	Errors      []string   `json:"errors"`
}

// reportMetadata describes one generated report.
type reportMetadata struct {
	GeneratedAt      string `json:"generated_at"`
	ReportID         string `json:"report_id"`
	GeneratorVersion string `json:"generator_version"`
	ReportType       string `json:"report_type"`
}

// reportJSON is the top-level structure of the full JSON report.
type reportJSON struct {
	ReportMetadata        reportMetadata           `json:"report_metadata"`
	Summary               domain.SummaryStatistics `json:"summary"`
	ValidTransactions     []transactionJSON        `json:"valid_transactions"`
	InvalidTransactions   []invalidJSON            `json:"invalid_transactions"`
	DuplicateTransactions []transactionJSON        `json:"duplicate_transactions"`
}

// errorReportJSON is the top-level structure of the error report.
type errorReportJSON struct {
	ReportMetadata reportMetadata `json:"report_metadata"`
	ErrorCount     int            `json:"error_count"`
	Errors         []invalidJSON  `json:"errors"`
}

func toTransactionJSON(tx *domain.Transaction) transactionJSON {
	return transactionJSON{
		TransactionID: tx.TransactionID,
		CustomerID:    tx.CustomerID,
		Date:          tx.Date.Format("2006-01-02"),
		Amount:        tx.Amount,
		Currency:      tx.Currency.String(),
		Status:        tx.Status.String(),
	}
}

func toTransactionsJSON(txs []*domain.Transaction) []transactionJSON {
	out := make([]transactionJSON, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionJSON(tx))
	}
	return out
}

func toRecordJSON(rec *domain.NormalizedRecord) recordJSON {
	out := recordJSON{
		Row:              rec.Row,
		TransactionID:    rec.TransactionID,
		CustomerID:       rec.CustomerID,
		Amount:           rec.Amount,
		IsValid:          rec.IsValid,
		ValidationErrors: rec.Errors,
	}
	if rec.Date != nil {
		d := rec.Date.Format("2006-01-02")
		out.Date = &d
	}
	if rec.Currency != "" {
		c := rec.Currency.String()
		out.Currency = &c
	}
	if rec.Status != "" {
		s := rec.Status.String()
		out.Status = &s
	}
	return out
}

func toInvalidJSON(entries []usecase.InvalidEntry) []invalidJSON {
	out := make([]invalidJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, invalidJSON{
			Transaction: toRecordJSON(e.Record),
			Errors:      e.Errors,
		})
	}
	return out
}
