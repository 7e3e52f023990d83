package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmepay/txproc/internal/domain"
	"github.com/acmepay/txproc/internal/usecase"
)

func transaction(id string, currency domain.Currency, amount int64, status domain.TransactionStatus) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: id,
		CustomerID:    "C1",
		Date:          time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(amount),
		Currency:      currency,
		Status:        status,
		Metadata:      map[string]any{},
	}
}

func TestAggregatorDuplicateLaw(t *testing.T) {
	t.Parallel()
	agg := usecase.NewAggregator()

	first := transaction("T1", domain.CurrencyUSD, 100, domain.StatusCompleted)
	second := transaction("T1", domain.CurrencyEUR, 999, domain.StatusFailed)
	third := transaction("T1", domain.CurrencyGBP, 1, domain.StatusPending)

	assert.True(t, agg.Add(first), "first occurrence must be accepted")
	assert.False(t, agg.Add(second), "repeat id must not be accepted")
	assert.False(t, agg.Add(third), "every later repeat is a duplicate")

	accepted := agg.ValidTransactions()
	require.Len(t, accepted, 1)
	// First-seen wins; content differences never replace the original.
	assert.Equal(t, domain.CurrencyUSD, accepted[0].Currency)

	dups := agg.DuplicateTransactions()
	require.Len(t, dups, 2)
	assert.Equal(t, domain.CurrencyEUR, dups[0].Currency)
	assert.Equal(t, domain.CurrencyGBP, dups[1].Currency)
}

func TestAggregatorAddDuplicate(t *testing.T) {
	t.Parallel()
	agg := usecase.NewAggregator()

	agg.AddDuplicate(transaction("T1", domain.CurrencyUSD, 100, domain.StatusCompleted))

	assert.Empty(t, agg.ValidTransactions())
	assert.Len(t, agg.DuplicateTransactions(), 1)

	// The id is now occupied; a later Add with the same id stays duplicate.
	assert.False(t, agg.Add(transaction("T1", domain.CurrencyUSD, 50, domain.StatusCompleted)))
	assert.Len(t, agg.DuplicateTransactions(), 2)
}

func TestAggregatorSummaryTotals(t *testing.T) {
	t.Parallel()
	agg := usecase.NewAggregator()

	agg.Add(transaction("T1", domain.CurrencyUSD, 100, domain.StatusCompleted))
	agg.Add(transaction("T2", domain.CurrencyUSD, 50, domain.StatusPending))
	agg.Add(transaction("T3", domain.CurrencyEUR, 20, domain.StatusCompleted))
	agg.Add(transaction("T4", domain.CurrencyGBP, 999, domain.StatusFailed))
	agg.Add(transaction("T1", domain.CurrencyUSD, 7, domain.StatusCompleted)) // duplicate
	agg.AddInvalid(&domain.NormalizedRecord{TransactionID: "T5"}, []string{domain.ErrCodeMissingCustomerID})

	stats := agg.Summary()

	assert.Equal(t, 6, stats.TotalProcessed)
	assert.Equal(t, 4, stats.ValidCount)
	assert.Equal(t, 1, stats.InvalidCount)
	assert.Equal(t, 1, stats.DuplicateCount)
	// Sums are per currency; GBP is counted nowhere and duplicates are excluded.
	assert.True(t, stats.TotalAmountUSD.Equal(decimal.NewFromInt(150)), "USD total = %s", stats.TotalAmountUSD)
	assert.True(t, stats.TotalAmountEUR.Equal(decimal.NewFromInt(20)), "EUR total = %s", stats.TotalAmountEUR)
	assert.Equal(t, 2, stats.CompletedCount)
	assert.Equal(t, 1, stats.FailedCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 0, stats.CancelledCount)
}

func TestAggregatorEmptySummary(t *testing.T) {
	t.Parallel()
	agg := usecase.NewAggregator()

	stats := agg.Summary()

	assert.Equal(t, 0, stats.TotalProcessed)
	assert.Equal(t, 0, stats.ValidCount)
	assert.Equal(t, 0, stats.InvalidCount)
	assert.Equal(t, 0, stats.DuplicateCount)
	assert.True(t, stats.TotalAmountUSD.IsZero())
	assert.True(t, stats.TotalAmountEUR.IsZero())
	assert.Equal(t, 0, stats.CompletedCount)
	assert.Equal(t, 0, stats.CancelledCount)
}

func TestAggregatorGettersReturnCopies(t *testing.T) {
	t.Parallel()
	agg := usecase.NewAggregator()
	agg.Add(transaction("T1", domain.CurrencyUSD, 100, domain.StatusCompleted))

	got := agg.ValidTransactions()
	got[0] = nil

	require.NotNil(t, agg.ValidTransactions()[0], "internal bucket must not be aliased")
}
