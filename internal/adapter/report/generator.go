package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/acmepay/txproc/internal/domain"
	"github.com/acmepay/txproc/internal/usecase"
)

// generatorVersion is embedded in report metadata.
const generatorVersion = "1.0.0"

// Generator renders the aggregator's buckets into the supported report
// formats. Each Write method recovers independently: one report failing does
// not stop the others.
type Generator struct {
	agg       *usecase.Aggregator
	outputDir string
	ids       usecase.IDGenerator
	log       zerolog.Logger
	now       func() time.Time
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(agg *usecase.Aggregator, outputDir string, ids usecase.IDGenerator, log zerolog.Logger) *Generator {
	return &Generator{
		agg:       agg,
		outputDir: outputDir,
		ids:       ids,
		log:       log,
		now:       time.Now,
	}
}

// PrintConsole writes the human-readable summary to w.
func (g *Generator) PrintConsole(w io.Writer) {
	stats := g.agg.Summary()
	rule := strings.Repeat("=", 64)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ACME PAYMENTS TRANSACTION PROCESSING REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Generated: %s\n\n", g.now().Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "PROCESSING SUMMARY:")
	fmt.Fprintf(w, "Total transactions processed: %d\n", stats.TotalProcessed)
	fmt.Fprintf(w, "Valid transactions: %d\n", stats.ValidCount)
	fmt.Fprintf(w, "Invalid transactions: %d\n", stats.InvalidCount)
	fmt.Fprintf(w, "Duplicate transactions: %d\n\n", stats.DuplicateCount)

	fmt.Fprintln(w, "FINANCIAL SUMMARY:")
	fmt.Fprintf(w, "Total amount (USD): $%s\n", stats.TotalAmountUSD.StringFixed(2))
	fmt.Fprintf(w, "Total amount (EUR): €%s\n\n", stats.TotalAmountEUR.StringFixed(2))

	fmt.Fprintln(w, "TRANSACTION STATUS BREAKDOWN:")
	fmt.Fprintf(w, "Completed transactions: %d\n", stats.CompletedCount)
	fmt.Fprintf(w, "Failed transactions: %d\n", stats.FailedCount)
	fmt.Fprintf(w, "Pending transactions: %d\n", stats.PendingCount)
	fmt.Fprintf(w, "Cancelled transactions: %d\n", stats.CancelledCount)
	fmt.Fprintln(w, rule)
}

// WriteJSON writes the full JSON report and returns its path.
func (g *Generator) WriteJSON() (string, error) {
	now := g.now()
	path := filepath.Join(g.outputDir, fmt.Sprintf("transaction_report_%s.json", now.Format("20060102_150405")))

	payload := reportJSON{
		ReportMetadata: reportMetadata{
			GeneratedAt:      now.Format(time.RFC3339),
			ReportID:         g.ids.Generate(),
			GeneratorVersion: generatorVersion,
			ReportType:       "transaction_analysis",
		},
		Summary:               g.agg.Summary(),
		ValidTransactions:     toTransactionsJSON(g.agg.ValidTransactions()),
		InvalidTransactions:   toInvalidJSON(g.agg.InvalidTransactions()),
		DuplicateTransactions: toTransactionsJSON(g.agg.DuplicateTransactions()),
	}

	if err := g.writeJSONFile(path, payload); err != nil {
		return "", err
	}
	g.log.Info().Str("path", path).Msg("JSON report generated")
	return path, nil
}

// WriteCSVSummary writes one CSV row per accepted transaction and returns the
// file path.
func (g *Generator) WriteCSVSummary() (string, error) {
	path := filepath.Join(g.outputDir, fmt.Sprintf("transaction_summary_%s.csv", g.now().Format("20060102_150405")))

	if err := g.ensureOutputDir(); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrReportWrite, path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"transaction_id", "customer_id", "date", "amount", "currency", "status"}); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrReportWrite, path, err)
	}
	for _, tx := range g.agg.ValidTransactions() {
		row := []string{
			tx.TransactionID,
			tx.CustomerID,
			tx.Date.Format("2006-01-02"),
			tx.Amount.String(),
			tx.Currency.String(),
			tx.Status.String(),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrReportWrite, path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrReportWrite, path, err)
	}

	g.log.Info().Str("path", path).Msg("CSV summary generated")
	return path, nil
}

// WriteErrorReport writes the invalid entries with their row provenance and
// error lists, and returns the file path.
func (g *Generator) WriteErrorReport() (string, error) {
	now := g.now()
	path := filepath.Join(g.outputDir, fmt.Sprintf("transaction_errors_%s.json", now.Format("20060102_150405")))

	invalid := toInvalidJSON(g.agg.InvalidTransactions())
	payload := errorReportJSON{
		ReportMetadata: reportMetadata{
			GeneratedAt:      now.Format(time.RFC3339),
			ReportID:         g.ids.Generate(),
			GeneratorVersion: generatorVersion,
			ReportType:       "validation_errors",
		},
		ErrorCount: len(invalid),
		Errors:     invalid,
	}

	if err := g.writeJSONFile(path, payload); err != nil {
		return "", err
	}
	g.log.Info().Str("path", path).Msg("error report generated")
	return path, nil
}

// WriteAll attempts every report type. Failures are collected per report and
// joined; successfully written paths are returned either way.
func (g *Generator) WriteAll() ([]string, error) {
	var paths []string
	var errs []error

	writers := []struct {
		name  string
		write func() (string, error)
	}{
		{"json", g.WriteJSON},
		{"csv", g.WriteCSVSummary},
		{"errors", g.WriteErrorReport},
	}

	for _, w := range writers {
		path, err := w.write()
		if err != nil {
			g.log.Error().Err(err).Str("report", w.name).Msg("report generation failed")
			errs = append(errs, fmt.Errorf("%s report: %w", w.name, err))
			continue
		}
		paths = append(paths, path)
	}

	return paths, errors.Join(errs...)
}

func (g *Generator) ensureOutputDir() error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("%w: create output dir %s: %v", domain.ErrReportWrite, g.outputDir, err)
	}
	return nil
}

func (g *Generator) writeJSONFile(path string, payload any) error {
	if err := g.ensureOutputDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrReportWrite, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrReportWrite, path, err)
	}
	return nil
}
