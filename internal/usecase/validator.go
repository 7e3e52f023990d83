package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/acmepay/txproc/internal/domain"
)

// Validator checks normalized records against the validation taxonomy. It
// mutates records in place, setting IsValid and the ordered Errors list.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDataset validates the whole batch in two passes: one to find
// transaction ids that occur more than once, one to accumulate per-record
// error codes. Every record sharing a duplicated id, including the first
// occurrence, is flagged. Returns the valid and invalid partitions and the
// duplicated ids in first-seen order.
func (v *Validator) ValidateDataset(records []*domain.NormalizedRecord) (valid, invalid []*domain.NormalizedRecord, duplicateIDs []string) {
	dups := v.findDuplicates(records)

	for _, rec := range records {
		errs := v.validateRecord(rec)
		if rec.TransactionID != "" && dups[rec.TransactionID] {
			errs = append(errs, domain.ErrCodeDuplicateTransactionID)
		}

		rec.IsValid = len(errs) == 0
		rec.Errors = errs

		if rec.IsValid {
			valid = append(valid, rec)
		} else {
			invalid = append(invalid, rec)
		}
	}

	seen := make(map[string]bool, len(dups))
	for _, rec := range records {
		if dups[rec.TransactionID] && !seen[rec.TransactionID] {
			seen[rec.TransactionID] = true
			duplicateIDs = append(duplicateIDs, rec.TransactionID)
		}
	}

	return valid, invalid, duplicateIDs
}

func (v *Validator) validateRecord(rec *domain.NormalizedRecord) []string {
	var errs []string

	if rec.TransactionID == "" {
		errs = append(errs, domain.ErrCodeMissingTransactionID)
	}
	if rec.CustomerID == "" {
		errs = append(errs, domain.ErrCodeMissingCustomerID)
	}
	if rec.Date == nil {
		errs = append(errs, domain.ErrCodeInvalidDate)
	}

	if rec.Amount == nil {
		errs = append(errs, domain.ErrCodeInvalidAmount)
	} else if rec.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, domain.ErrCodeAmountMustBePositive)
	}

	if rec.Currency == "" {
		errs = append(errs, domain.ErrCodeMissingCurrency)
	} else if !rec.Currency.Valid() {
		errs = append(errs, fmt.Sprintf("Invalid currency: %s", rec.Currency))
	}

	if rec.Status == "" {
		errs = append(errs, domain.ErrCodeMissingStatus)
	} else if !rec.Status.Valid() {
		errs = append(errs, fmt.Sprintf("Invalid status: %s", rec.Status))
	}

	return errs
}

// findDuplicates returns the set of transaction ids seen more than once.
// Records with a missing id never count as duplicates of each other.
func (v *Validator) findDuplicates(records []*domain.NormalizedRecord) map[string]bool {
	seen := make(map[string]bool, len(records))
	dups := make(map[string]bool)

	for _, rec := range records {
		id := rec.TransactionID
		if id == "" {
			continue
		}
		if seen[id] {
			dups[id] = true
		} else {
			seen[id] = true
		}
	}

	return dups
}
