package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/acmepay/txproc/internal/domain"
)

// InvalidEntry pairs an invalid record with its validation errors. Record
// carries the typed-but-partial field snapshot so reports can show what was
// salvaged from the row.
type InvalidEntry struct {
	Record *domain.NormalizedRecord
	Errors []string
}

// Aggregator accumulates the three terminal buckets of one processing run:
// accepted, duplicate and invalid. One instance is created per run and
// discarded after reporting; it is not safe for concurrent use.
type Aggregator struct {
	accepted   []*domain.Transaction
	duplicates []*domain.Transaction
	invalid    []InvalidEntry
	seenIDs    map[string]bool
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		seenIDs: make(map[string]bool),
	}
}

// Add places a transaction in the accepted bucket, or in the duplicate bucket
// if its id was seen before. The first-seen id keeps the accepted slot; later
// arrivals never replace it. Returns whether the transaction was newly
// accepted.
func (a *Aggregator) Add(tx *domain.Transaction) bool {
	if a.seenIDs[tx.TransactionID] {
		a.duplicates = append(a.duplicates, tx)
		return false
	}
	a.seenIDs[tx.TransactionID] = true
	a.accepted = append(a.accepted, tx)
	return true
}

// AddDuplicate places a transaction directly in the duplicate bucket. Used
// when an earlier batch already accepted the id.
func (a *Aggregator) AddDuplicate(tx *domain.Transaction) {
	a.seenIDs[tx.TransactionID] = true
	a.duplicates = append(a.duplicates, tx)
}

// AddInvalid appends a record to the invalid bucket with its error list.
// Invalid records do not participate in duplicate detection.
func (a *Aggregator) AddInvalid(rec *domain.NormalizedRecord, errs []string) {
	a.invalid = append(a.invalid, InvalidEntry{Record: rec, Errors: errs})
}

// ValidTransactions returns the accepted bucket in arrival order.
func (a *Aggregator) ValidTransactions() []*domain.Transaction {
	out := make([]*domain.Transaction, len(a.accepted))
	copy(out, a.accepted)
	return out
}

// DuplicateTransactions returns the duplicate bucket in arrival order.
func (a *Aggregator) DuplicateTransactions() []*domain.Transaction {
	out := make([]*domain.Transaction, len(a.duplicates))
	copy(out, a.duplicates)
	return out
}

// InvalidTransactions returns the invalid bucket in arrival order.
func (a *Aggregator) InvalidTransactions() []InvalidEntry {
	out := make([]InvalidEntry, len(a.invalid))
	copy(out, a.invalid)
	return out
}

// Summary computes the run statistics. All counts and sums are zero when
// nothing was accepted.
func (a *Aggregator) Summary() domain.SummaryStatistics {
	stats := domain.SummaryStatistics{
		TotalProcessed: len(a.accepted) + len(a.invalid) + len(a.duplicates),
		ValidCount:     len(a.accepted),
		InvalidCount:   len(a.invalid),
		DuplicateCount: len(a.duplicates),
		TotalAmountUSD: decimal.Zero,
		TotalAmountEUR: decimal.Zero,
	}

	for _, tx := range a.accepted {
		switch tx.Currency {
		case domain.CurrencyUSD:
			stats.TotalAmountUSD = stats.TotalAmountUSD.Add(tx.Amount)
		case domain.CurrencyEUR:
			stats.TotalAmountEUR = stats.TotalAmountEUR.Add(tx.Amount)
		}

		switch tx.Status {
		case domain.StatusCompleted:
			stats.CompletedCount++
		case domain.StatusFailed:
			stats.FailedCount++
		case domain.StatusPending:
			stats.PendingCount++
		case domain.StatusCancelled:
			stats.CancelledCount++
		}
	}

	return stats
}
