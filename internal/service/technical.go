package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/technical/internal/dataset"
	"github.com/guttosm/technical/internal/domain/models"
	"github.com/guttosm/technical/internal/logger"
	"github.com/guttosm/technical/internal/storage"
)

const maxAutoParallel = 8

// TechnicalService exposes the two read operations over the backing store.
// This decouples HTTP handlers and CLI commands from file access.
type TechnicalService interface {
	// ListSummaries returns one StockSummary per ticker that has at least one valid row.
	ListSummaries(ctx context.Context) ([]models.StockSummary, error)
	// GetDaily returns the full, date-sorted history of one ticker.
	GetDaily(ctx context.Context, ticker string) (models.Dataset, error)
}

// DatasetReader is the subset of *dataset.Reader the service depends on.
type DatasetReader interface {
	Read(ctx context.Context, ticker string) (models.Dataset, error)
}

type technicalService struct {
	store    storage.DatasetStore
	reader   DatasetReader
	parallel int
}

// NewTechnicalService wires the service. parallel bounds concurrent file reads
// during ListSummaries; values <= 0 mean min(8, NumCPU).
func NewTechnicalService(store storage.DatasetStore, reader DatasetReader, parallel int) TechnicalService {
	if parallel <= 0 {
		parallel = min(maxAutoParallel, runtime.NumCPU())
	}
	return &technicalService{store: store, reader: reader, parallel: parallel}
}

// GetDaily surfaces reader failures unchanged so callers can tell
// *dataset.NotFoundError from *dataset.ReadError.
func (s *technicalService) GetDaily(ctx context.Context, ticker string) (models.Dataset, error) {
	return s.reader.Read(ctx, ticker)
}

// ListSummaries reads every ticker and projects its latest row.
//
// Behavior:
//   - A ticker whose file fails to read, has no valid rows, or whose latest
//     row cannot be projected is skipped; the listing never aborts for one bad file.
//   - Output order follows the store's enumeration order.
//   - Only a failure to enumerate the store, or cancellation, is returned as an error.
func (s *technicalService) ListSummaries(ctx context.Context) ([]models.StockSummary, error) {
	tickers, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate tickers: %w", err)
	}

	slots := make([]*models.StockSummary, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, ticker := range tickers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, ok := s.summarize(gctx, ticker)
			if ok {
				slots[i] = &summary
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.StockSummary, 0, len(slots))
	for _, sum := range slots {
		if sum != nil {
			out = append(out, *sum)
		}
	}
	return out, nil
}

// summarize reads one ticker and projects its newest row. ok is false when the
// ticker must be left out of the listing.
func (s *technicalService) summarize(ctx context.Context, ticker string) (models.StockSummary, bool) {
	ds, err := s.reader.Read(ctx, ticker)
	if err != nil {
		if ctx.Err() == nil {
			logger.L().Warn().Str("ticker", ticker).Err(err).Msg("ticker skipped: read failed")
		}
		return models.StockSummary{}, false
	}

	latest, ok := ds.Latest()
	if !ok {
		logger.L().Debug().Str("ticker", ticker).Msg("ticker skipped: no valid rows")
		return models.StockSummary{}, false
	}

	summary, err := Summarize(ticker, latest)
	if err != nil {
		logger.L().Warn().Str("ticker", ticker).Err(err).Msg("ticker skipped: latest row unusable")
		return models.StockSummary{}, false
	}
	return summary, true
}

// ErrColumn is wrapped by Summarize when a required column is missing or not numeric.
var ErrColumn = errors.New("unusable column")

// Summarize projects a record into a StockSummary. The ticker comes from the
// caller (the file's identifier), never from row content.
func Summarize(ticker string, rec models.DatasetRecord) (models.StockSummary, error) {
	name, ok := rec.Get(models.ColumnName)
	if !ok {
		return models.StockSummary{}, fmt.Errorf("%w: %s missing", ErrColumn, models.ColumnName)
	}

	out := models.StockSummary{
		Name:       name.Text,
		Ticker:     ticker,
		LatestDate: rec.Date.Format(models.DisplayDateLayout),
	}

	prices := []struct {
		column string
		dst    *float64
	}{
		{models.ColumnOpen, &out.Open},
		{models.ColumnHigh, &out.High},
		{models.ColumnLow, &out.Low},
		{models.ColumnClose, &out.Close},
	}
	for _, p := range prices {
		d, err := numericCell(rec, p.column)
		if err != nil {
			return models.StockSummary{}, err
		}
		*p.dst = d.InexactFloat64()
	}

	counts := []struct {
		column string
		dst    *int64
	}{
		{models.ColumnVolume, &out.Volume},
		{models.ColumnCircuit, &out.Circuit},
	}
	for _, p := range counts {
		d, err := numericCell(rec, p.column)
		if err != nil {
			return models.StockSummary{}, err
		}
		d = d.Truncate(0)
		if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
			return models.StockSummary{}, fmt.Errorf("%w: %s=%s overflows int64", ErrColumn, p.column, d)
		}
		*p.dst = d.IntPart()
	}

	return out, nil
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// numericCell returns the value of column in rec. The cell's own text is parsed
// when the column as a whole was not typed numeric.
func numericCell(rec models.DatasetRecord, column string) (decimal.Decimal, error) {
	c, ok := rec.Get(column)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s missing", ErrColumn, column)
	}
	if c.Number != nil {
		return *c.Number, nil
	}
	d, err := decimal.NewFromString(c.Text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s=%q is not a number", ErrColumn, column, c.Text)
	}
	return d, nil
}

var _ DatasetReader = (*dataset.Reader)(nil)
