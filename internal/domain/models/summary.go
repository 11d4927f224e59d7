package models

// StockSummary is the latest known snapshot of one ticker.
//
// It is derived on every request from the newest row carrying a valid date
// and is never persisted.
//
// swagger:model StockSummary
type StockSummary struct {
	Name       string  `json:"name" example:"Apple Inc"`
	Ticker     string  `json:"ticker" example:"AAPL"`
	LatestDate string  `json:"latest_date" example:"03-01-2023"`
	Open       float64 `json:"open" example:"150"`
	High       float64 `json:"high" example:"153.5"`
	Low        float64 `json:"low" example:"149.2"`
	Close      float64 `json:"close" example:"152"`
	Volume     int64   `json:"volume" example:"1000"`
	Circuit    int64   `json:"circuit" example:"10"`
}
