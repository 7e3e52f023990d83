package domain

import "errors"

var (
	// Structural errors
	ErrFileNotFound = errors.New("input file not found")

	// Report errors
	ErrReportWrite = errors.New("failed to write report")
)

// Validation error codes, in the order the validator emits them.
const (
	ErrCodeMissingTransactionID   = "Missing transaction_id"
	ErrCodeMissingCustomerID      = "Missing customer_id"
	ErrCodeInvalidDate            = "Invalid date"
	ErrCodeInvalidAmount          = "Invalid amount"
	ErrCodeAmountMustBePositive   = "Amount must be positive"
	ErrCodeMissingCurrency        = "Missing currency"
	ErrCodeMissingStatus          = "Missing status"
	ErrCodeDuplicateTransactionID = "Duplicate transaction_id"
)
