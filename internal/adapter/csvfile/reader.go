package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/acmepay/txproc/internal/domain"
)

// DefaultSampleSize is how many leading bytes are inspected for delimiter
// detection.
const DefaultSampleSize = 1024

// delimiters are the candidates tried by detection, in tie-break order.
var delimiters = []rune{',', ';', '\t', '|'}

// Reader is the ingestion adapter: it detects the delimiter, maps
// heterogeneous header names to canonical fields and emits raw records.
// It implements usecase.RecordSource.
type Reader struct {
	sampleSize int
	log        zerolog.Logger
}

// NewReader creates a Reader. sampleSize <= 0 falls back to
// DefaultSampleSize.
func NewReader(sampleSize int, log zerolog.Logger) *Reader {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &Reader{sampleSize: sampleSize, log: log}
}

// DetectDelimiter counts candidate delimiters in the sample and returns the
// most frequent one, defaulting to comma when none occur.
func (r *Reader) DetectDelimiter(sample string) rune {
	best := ','
	bestCount := 0
	for _, d := range delimiters {
		if n := strings.Count(sample, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}

// ReadFile reads the whole file into memory and extracts one RawRecord per
// non-empty data row, preserving input order. A missing file wraps
// domain.ErrFileNotFound; other read failures are terminal.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	sample := content
	if len(sample) > r.sampleSize {
		sample = sample[:r.sampleSize]
	}
	delimiter := r.DetectDelimiter(sample)
	r.log.Debug().Str("path", path).Str("delimiter", string(delimiter)).Msg("delimiter detected")

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = false

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := mapHeader(rows[0])

	var records []domain.RawRecord
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if emptyRow(row) {
			continue
		}
		records = append(records, domain.RawRecord{
			TransactionID: cell(row, cols.transactionID),
			CustomerID:    cell(row, cols.customerID),
			Date:          cell(row, cols.date),
			Amount:        cell(row, cols.amount),
			Currency:      cell(row, cols.currency),
			Status:        cell(row, cols.status),
			Row:           i,
		})
	}

	return records, nil
}

// columnIndex holds the detected column position per canonical field;
// -1 means the header did not map the field.
type columnIndex struct {
	transactionID int
	customerID    int
	date          int
	amount        int
	currency      int
	status        int
}

// mapHeader maps header cells to canonical fields. Matching is
// substring-based and order-independent; each cell maps to at most one field
// and a later cell overrides an earlier mapping of the same field.
func mapHeader(header []string) columnIndex {
	cols := columnIndex{
		transactionID: -1,
		customerID:    -1,
		date:          -1,
		amount:        -1,
		currency:      -1,
		status:        -1,
	}

	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(h, "transaction") && strings.Contains(h, "id"):
			cols.transactionID = i
		case strings.Contains(h, "customer") && strings.Contains(h, "id"):
			cols.customerID = i
		case strings.Contains(h, "date"):
			cols.date = i
		case strings.Contains(h, "amount") || strings.Contains(h, "value"):
			cols.amount = i
		case strings.Contains(h, "currency") || strings.Contains(h, "curr"):
			cols.currency = i
		case strings.Contains(h, "status"):
			cols.status = i
		}
	}

	return cols
}

func cell(row []string, idx int) domain.RawField {
	if idx < 0 || idx >= len(row) {
		return domain.RawField{}
	}
	return domain.RawField{Value: row[idx], Present: true}
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
