package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// StockData holds everything fetched for a single ticker during a scan.
// MarketCap is zero when the data source does not report it.
type StockData struct {
	Ticker        string    `json:"ticker"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousClose float64   `json:"previous_close"`
	MarketCap     float64   `json:"market_cap"`
	AvgVolume     float64   `json:"avg_volume_20d"`
	Bars          []OHLCV   `json:"price_history"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// LatestVolume returns the volume of the most recent bar, 0 if there are none.
func (s *StockData) LatestVolume() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Volume
}
