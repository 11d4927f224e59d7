package dto

import "github.com/guttosm/technical/internal/domain/models"

// StockListResponse represents the JSON structure returned by GET /technical.
//
// Stocks is never null: an empty backing store yields "stocks": [].
type StockListResponse struct {
	Stocks []models.StockSummary `json:"stocks"`
}

// DailyDataResponse represents the JSON structure returned by GET /technical/daily/{ticker}.
//
// Each element of Data is an object keyed by the file's column names.
type DailyDataResponse struct {
	Ticker string                 `json:"ticker" example:"AAPL"`
	Data   []models.DatasetRecord `json:"data" swaggertype:"array,object"`
}

// NewStockListResponse wraps summaries, replacing nil with an empty slice.
func NewStockListResponse(stocks []models.StockSummary) StockListResponse {
	if stocks == nil {
		stocks = []models.StockSummary{}
	}
	return StockListResponse{Stocks: stocks}
}

// NewDailyDataResponse builds the detail body for a dataset.
func NewDailyDataResponse(ds models.Dataset) DailyDataResponse {
	data := ds.Records
	if data == nil {
		data = []models.DatasetRecord{}
	}
	return DailyDataResponse{Ticker: ds.Ticker, Data: data}
}
