package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the only accepted layout for the Date column (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// DisplayDateLayout is used for StockSummary.LatestDate (DD-MM-YYYY).
	DisplayDateLayout = "02-01-2006"
)

// Column names the summary projection depends on. Any other column is carried
// through untouched.
const (
	ColumnDate    = "Date"
	ColumnName    = "Name"
	ColumnOpen    = "Open"
	ColumnHigh    = "High"
	ColumnLow     = "Low"
	ColumnClose   = "Close"
	ColumnVolume  = "Volume"
	ColumnCircuit = "Circuit"
)

// Cell is one column value of a DatasetRecord.
//
// Fields:
//   - Column: header name as it appears in the file.
//   - Text: trimmed cell text; for the Date column, the normalized YYYY-MM-DD form.
//   - Number: parsed value when the whole column is numeric and the cell is not empty.
type Cell struct {
	Column string
	Text   string
	Number *decimal.Decimal
}

// DatasetRecord represents one row of a ticker's history.
// Identity is (ticker, Date). Cells keep every column in header order.
type DatasetRecord struct {
	Date  time.Time
	Cells []Cell
}

// Get returns the cell for a column name (exact match).
func (r DatasetRecord) Get(column string) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Column == column {
			return c, true
		}
	}
	return Cell{}, false
}

// MarshalJSON renders the record as a JSON object keyed by column name,
// preserving header order. Numeric columns become JSON numbers, empty cells
// become null and everything else is a string.
func (r DatasetRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		switch {
		case c.Number != nil:
			val = []byte(c.Number.String())
		case c.Text == "":
			val = []byte("null")
		default:
			if val, err = json.Marshal(c.Text); err != nil {
				return nil, err
			}
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset is the ordered history of one ticker, sorted ascending by Date.
type Dataset struct {
	Ticker  string
	Columns []string
	Records []DatasetRecord
}

// Latest returns the record with the greatest date. ok is false for an empty dataset.
func (d Dataset) Latest() (rec DatasetRecord, ok bool) {
	if len(d.Records) == 0 {
		return DatasetRecord{}, false
	}
	return d.Records[len(d.Records)-1], true
}
