package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/technical/internal/domain/models"
	"github.com/guttosm/technical/internal/storage"
)

const utf8BOM = "\ufeff"

// Reader loads a single ticker's history from the backing store.
//
// Every call re-reads the file; nothing is cached between calls.
type Reader struct {
	store storage.DatasetStore
}

// NewReader constructs a Reader over the given store.
func NewReader(store storage.DatasetStore) *Reader {
	return &Reader{store: store}
}

// Read loads, parses and date-sorts the dataset for ticker.
//
// It fails with:
//   - *NotFoundError when the store has no file for ticker
//   - *ReadError on any structural problem (unreadable file, bad header,
//     missing Date column, malformed CSV, row wider than the header)
//
// It tolerates:
//   - rows whose Date is not YYYY-MM-DD (dropped)
//   - short rows (missing trailing cells become empty)
//
// A file in which every row is dropped yields an empty, non-nil-error dataset.
func (r *Reader) Read(ctx context.Context, ticker string) (models.Dataset, error) {
	rc, err := r.store.Open(ctx, ticker)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return models.Dataset{}, &NotFoundError{Ticker: ticker}
		}
		return models.Dataset{}, &ReadError{Ticker: ticker, Err: err}
	}
	defer func() { _ = rc.Close() }()

	ds, err := parse(ctx, rc)
	if err != nil {
		return models.Dataset{}, &ReadError{Ticker: ticker, Err: err}
	}
	ds.Ticker = ticker
	return ds, nil
}

// parse turns CSV content into a Dataset with only valid-date rows, sorted ascending.
func parse(ctx context.Context, in io.Reader) (models.Dataset, error) {
	cr := csv.NewReader(in)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // width is checked against the header below

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return models.Dataset{}, errors.New("no columns to parse from file")
		}
		return models.Dataset{}, fmt.Errorf("read header: %w", err)
	}
	columns := normalizeHeader(header)

	dateIdx := indexOf(columns, models.ColumnDate)
	if dateIdx < 0 {
		return models.Dataset{}, fmt.Errorf("missing required column %q", models.ColumnDate)
	}

	// Read everything first: whether a column is numeric depends on all of its cells.
	var rows [][]string
	lineNumber := 1 // header already read
	for {
		if err := ctx.Err(); err != nil {
			return models.Dataset{}, err
		}

		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return models.Dataset{}, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) > len(columns) {
			return models.Dataset{}, fmt.Errorf("line %d: expected %d fields, saw %d", lineNumber, len(columns), len(rec))
		}
		row := make([]string, len(columns))
		for i, v := range rec {
			row[i] = strings.TrimSpace(v)
		}
		rows = append(rows, row)
	}

	numeric := numericColumns(rows, len(columns))
	numeric[dateIdx] = false

	records := make([]models.DatasetRecord, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(models.DateLayout, row[dateIdx])
		if err != nil {
			continue // unparseable date: row is filtered, not an error
		}

		cells := make([]models.Cell, len(columns))
		for i, name := range columns {
			cell := models.Cell{Column: name, Text: row[i]}
			if i == dateIdx {
				cell.Text = date.Format(models.DateLayout)
			} else if numeric[i] && row[i] != "" {
				d, _ := decimal.NewFromString(row[i]) // validated by numericColumns
				cell.Number = &d
			}
			cells[i] = cell
		}
		records = append(records, models.DatasetRecord{Date: date, Cells: cells})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return models.Dataset{Columns: columns, Records: records}, nil
}

// normalizeHeader trims names, strips a UTF-8 BOM and disambiguates duplicates
// as "X", "X.1", "X.2", ...
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

// numericColumns flags columns whose non-empty cells all parse as decimals.
// A column with no non-empty cell is not numeric.
func numericColumns(rows [][]string, width int) []bool {
	numeric := make([]bool, width)
	for col := 0; col < width; col++ {
		seen := false
		ok := true
		for _, row := range rows {
			v := row[col]
			if v == "" {
				continue
			}
			seen = true
			if _, err := decimal.NewFromString(v); err != nil {
				ok = false
				break
			}
		}
		numeric[col] = seen && ok
	}
	return numeric
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
