package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acmepay/txproc/internal/domain"
)

// Pipeline orchestrates one processing run: read raw records, normalize,
// validate, then classify into the aggregator's buckets. The processed-id set
// survives across ProcessFile calls, so a transaction accepted in an earlier
// batch is classified duplicate when it reappears.
type Pipeline struct {
	source    RecordSource
	cleaner   *Cleaner
	validator *Validator
	ids       IDGenerator
	log       zerolog.Logger
	processed map[string]bool
}

// NewPipeline creates a Pipeline reading from source.
func NewPipeline(source RecordSource, ids IDGenerator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		source:    source,
		cleaner:   NewCleaner(),
		validator: NewValidator(),
		ids:       ids,
		log:       log,
		processed: make(map[string]bool),
	}
}

// ProcessFile runs the full pipeline over one file and returns a fresh
// Aggregator holding the run's buckets. Structural read failures abort the
// run; field and validation failures are accumulated on the records.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Aggregator, error) {
	runID := p.ids.Generate()
	log := p.log.With().Str("run_id", runID).Str("path", path).Logger()
	log.Info().Msg("processing started")

	raw, err := p.source.ReadFile(ctx, path)
	if err != nil {
		log.Error().Err(err).Msg("failed to read input")
		return nil, err
	}

	records := p.cleaner.Clean(raw)
	_, _, duplicateIDs := p.validator.ValidateDataset(records)

	agg := NewAggregator()
	for _, rec := range records {
		p.classify(agg, rec)
	}

	stats := agg.Summary()
	log.Info().
		Int("records", len(records)).
		Int("valid", stats.ValidCount).
		Int("invalid", stats.InvalidCount).
		Int("duplicates", stats.DuplicateCount).
		Int("duplicate_ids", len(duplicateIDs)).
		Msg("processing finished")

	return agg, nil
}

// classify routes one validated record to a bucket. Records whose only fault
// is a duplicated id still promote to transactions so first-seen-wins
// ordering decides between the accepted and duplicate buckets; everything
// else with errors lands in the invalid bucket.
func (p *Pipeline) classify(agg *Aggregator, rec *domain.NormalizedRecord) {
	if !rec.IsValid && !duplicateOnly(rec.Errors) {
		agg.AddInvalid(rec, rec.Errors)
		return
	}

	tx, ok := domain.TransactionFromNormalized(rec)
	if !ok {
		agg.AddInvalid(rec, rec.Errors)
		return
	}

	if p.processed[tx.TransactionID] {
		agg.AddDuplicate(tx)
		return
	}
	if agg.Add(tx) {
		p.processed[tx.TransactionID] = true
	}
}

func duplicateOnly(errs []string) bool {
	return len(errs) == 1 && errs[0] == domain.ErrCodeDuplicateTransactionID
}
