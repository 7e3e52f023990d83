package domain

import "github.com/shopspring/decimal"

// SummaryStatistics aggregates the outcome of one processing run. Amounts are
// summed per currency; there is no cross-currency conversion.
type SummaryStatistics struct {
	TotalProcessed int             `json:"total_processed"`
	ValidCount     int             `json:"valid_count"`
	InvalidCount   int             `json:"invalid_count"`
	DuplicateCount int             `json:"duplicate_count"`
	TotalAmountUSD decimal.Decimal `json:"total_amount_usd"`
	TotalAmountEUR decimal.Decimal `json:"total_amount_eur"`
	CompletedCount int             `json:"completed_count"`
	FailedCount    int             `json:"failed_count"`
	PendingCount   int             `json:"pending_count"`
	CancelledCount int             `json:"cancelled_count"`
}
