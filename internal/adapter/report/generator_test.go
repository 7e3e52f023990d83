package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmepay/txproc/internal/domain"
	"github.com/acmepay/txproc/internal/usecase"
)

type stubIDs struct{}

func (stubIDs) Generate() string { return "01TESTREPORTID" }

func populatedAggregator() *usecase.Aggregator {
	agg := usecase.NewAggregator()

	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	agg.Add(&domain.Transaction{
		TransactionID: "T1",
		CustomerID:    "C1",
		Date:          date,
		Amount:        decimal.RequireFromString("1234.56"),
		Currency:      domain.CurrencyUSD,
		Status:        domain.StatusCompleted,
		Metadata:      map[string]any{},
	})
	agg.Add(&domain.Transaction{
		TransactionID: "T1",
		CustomerID:    "C2",
		Date:          date,
		Amount:        decimal.NewFromInt(10),
		Currency:      domain.CurrencyEUR,
		Status:        domain.StatusPending,
		Metadata:      map[string]any{},
	})
	agg.AddInvalid(&domain.NormalizedRecord{
		TransactionID: "T9",
		Row:           4,
		Errors:        []string{domain.ErrCodeMissingCustomerID},
	}, []string{domain.ErrCodeMissingCustomerID})

	return agg
}

func newTestGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "reports")
	g := NewGenerator(populatedAggregator(), dir, stubIDs{}, zerolog.Nop())
	g.now = func() time.Time {
		return time.Date(2024, time.February, 1, 12, 30, 0, 0, time.UTC)
	}
	return g, dir
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	g, dir := newTestGenerator(t)

	path, err := g.WriteJSON()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transaction_report_20240201_123000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Contains(t, payload, "report_metadata")
	assert.Contains(t, payload, "summary")

	var parsed reportJSON
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "01TESTREPORTID", parsed.ReportMetadata.ReportID)
	assert.Equal(t, "transaction_analysis", parsed.ReportMetadata.ReportType)
	require.Len(t, parsed.ValidTransactions, 1)
	assert.Equal(t, "2024-01-15", parsed.ValidTransactions[0].Date)
	require.Len(t, parsed.DuplicateTransactions, 1)
	require.Len(t, parsed.InvalidTransactions, 1)
	assert.Nil(t, parsed.InvalidTransactions[0].Transaction.Date)
	assert.Equal(t, 1, parsed.Summary.ValidCount)
}

func TestWriteCSVSummary(t *testing.T) {
	t.Parallel()
	g, _ := newTestGenerator(t)

	path, err := g.WriteCSVSummary()
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one accepted transaction")
	assert.Equal(t, []string{"transaction_id", "customer_id", "date", "amount", "currency", "status"}, rows[0])
	assert.Equal(t, []string{"T1", "C1", "2024-01-15", "1234.56", "USD", "completed"}, rows[1])
}

func TestWriteErrorReport(t *testing.T) {
	t.Parallel()
	g, _ := newTestGenerator(t)

	path, err := g.WriteErrorReport()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed errorReportJSON
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "validation_errors", parsed.ReportMetadata.ReportType)
	assert.Equal(t, 1, parsed.ErrorCount)
	require.Len(t, parsed.Errors, 1)
	assert.Equal(t, 4, parsed.Errors[0].Transaction.Row)
	assert.Equal(t, []string{domain.ErrCodeMissingCustomerID}, parsed.Errors[0].Errors)
}

func TestWriteAll(t *testing.T) {
	t.Parallel()
	g, dir := newTestGenerator(t)

	paths, err := g.WriteAll()
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		_, statErr := os.Stat(p)
		assert.NoError(t, statErr, "expected %s to exist", p)
	}
	assert.Equal(t, dir, filepath.Dir(paths[0]))
}

func TestWriteAllRecoversPerReport(t *testing.T) {
	t.Parallel()

	// Output dir path occupied by a regular file: every writer fails, but
	// each one is still attempted and the joined error names all three.
	blocked := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	g := NewGenerator(populatedAggregator(), blocked, stubIDs{}, zerolog.Nop())
	paths, err := g.WriteAll()

	assert.Empty(t, paths)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrReportWrite)
	for _, name := range []string{"json report", "csv report", "errors report"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestPrintConsole(t *testing.T) {
	t.Parallel()
	g, _ := newTestGenerator(t)

	var buf bytes.Buffer
	g.PrintConsole(&buf)
	out := buf.String()

	assert.Contains(t, out, "ACME PAYMENTS TRANSACTION PROCESSING REPORT")
	assert.Contains(t, out, "Total transactions processed: 3")
	assert.Contains(t, out, "Valid transactions: 1")
	assert.Contains(t, out, "Duplicate transactions: 1")
	assert.Contains(t, out, "Total amount (USD): $1234.56")
	assert.Contains(t, out, "Total amount (EUR): €0.00")
	assert.Contains(t, out, "Completed transactions: 1")
	assert.True(t, strings.HasPrefix(out, strings.Repeat("=", 64)))
}
