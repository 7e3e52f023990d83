package usecase

import (
	"context"

	"github.com/acmepay/txproc/internal/domain"
)

// RecordSource loads raw transaction records from an input file.
type RecordSource interface {
	ReadFile(ctx context.Context, path string) ([]domain.RawRecord, error)
}

// IDGenerator generates unique identifiers for runs and reports.
type IDGenerator interface {
	Generate() string
}
