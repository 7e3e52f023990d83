package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acmepay/txproc/internal/domain"
)

// dateLayouts is tried in order; the first successful parse wins. Order
// matters: it resolves ambiguous day/month forms by fixed priority.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02-01-2006",
	"02/01/2006",
	"02-01-06",
	"02/01/06",
	"20060102",
}

// serialEpoch is the classic spreadsheet date epoch.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var amountStrip = regexp.MustCompile(`[^0-9.,-]`)

// Cleaner converts raw string fields into typed values, one field at a time.
// Every method is pure and never fails: unparseable input yields an absent
// value, which the validator reports later.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean normalizes every record, preserving input order.
func (c *Cleaner) Clean(records []domain.RawRecord) []*domain.NormalizedRecord {
	cleaned := make([]*domain.NormalizedRecord, 0, len(records))
	for _, rec := range records {
		cleaned = append(cleaned, &domain.NormalizedRecord{
			TransactionID: c.CleanString(rec.TransactionID),
			CustomerID:    c.CleanString(rec.CustomerID),
			Date:          c.CleanDate(rec.Date),
			Amount:        c.CleanAmount(rec.Amount),
			Currency:      c.CleanCurrency(rec.Currency),
			Status:        c.CleanStatus(rec.Status),
			Row:           rec.Row,
		})
	}
	return cleaned
}

// CleanString trims whitespace. Absent or empty fields become the empty
// string, which downstream treats as missing.
func (c *Cleaner) CleanString(f domain.RawField) string {
	if !f.Present {
		return ""
	}
	return strings.TrimSpace(f.Value)
}

// CleanDate parses a date by trying the fixed layout list, then the
// spreadsheet-serial fallback. Unparseable input yields nil.
func (c *Cleaner) CleanDate(f domain.RawField) *time.Time {
	if !f.Present {
		return nil
	}
	raw := strings.TrimSpace(f.Value)
	if raw == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if d, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return &d
		}
	}

	// Short all-digit values are spreadsheet serial dates: days since the
	// 1899-12-30 epoch.
	if len(raw) <= 5 && allDigits(raw) {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return nil
		}
		d := serialEpoch.AddDate(0, 0, days)
		return &d
	}

	return nil
}

// CleanAmount parses a monetary amount with ambiguous separator conventions
// into an exact decimal. Unparseable input yields nil.
func (c *Cleaner) CleanAmount(f domain.RawField) *decimal.Decimal {
	if !f.Present {
		return nil
	}
	raw := strings.TrimSpace(f.Value)
	if raw == "" {
		return nil
	}

	cleaned := amountStrip.ReplaceAllString(raw, "")
	if cleaned == "" {
		return nil
	}

	commas := strings.Count(cleaned, ",")
	dots := strings.Count(cleaned, ".")

	switch {
	case commas == 1 && dots > 0 && strings.Index(cleaned, ",") > strings.LastIndex(cleaned, "."):
		// European style: periods group thousands, the comma is the
		// decimal mark. "1.234,56" -> 1234.56
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case commas > 0 && dots == 1 && strings.Index(cleaned, ".") > strings.LastIndex(cleaned, ","):
		// US style: commas group thousands. "1,234.56" -> 1234.56
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commas > 1 && dots == 0:
		// Only grouping commas. "1,234,567" -> 1234567
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commas == 1 && dots == 0 && len(cleaned)-strings.Index(cleaned, ",")-1 == 3:
		// A lone comma followed by exactly three digits groups
		// thousands. "1,234" -> 1234
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commas == 1 && dots == 0:
		// Any other lone comma is a decimal mark. "12,5" -> 12.5
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case commas == 0 && dots == 1 && len(cleaned)-strings.Index(cleaned, ".")-1 == 3:
		// A lone period followed by exactly three digits groups
		// thousands. "1.234" -> 1234
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	// Combinations outside these rules are parsed as-is; a parse failure
	// makes the amount absent rather than guessing intent.

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}

// CleanCurrency resolves a currency token against the canonical vocabulary.
func (c *Cleaner) CleanCurrency(f domain.RawField) domain.Currency {
	if !f.Present {
		return ""
	}
	cur, ok := domain.ParseCurrency(f.Value)
	if !ok {
		return ""
	}
	return cur
}

// CleanStatus resolves a status token against the canonical vocabulary.
func (c *Cleaner) CleanStatus(f domain.RawField) domain.TransactionStatus {
	if !f.Present {
		return ""
	}
	st, ok := domain.ParseStatus(f.Value)
	if !ok {
		return ""
	}
	return st
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
