package collector

import (
	"context"

	"MarketScanner/internal/model"
)

// Snapshot carries the point-in-time fields a data source reports for a ticker.
// Fields the source does not know are zero; the collector fills the gaps from
// bar history where it can.
type Snapshot struct {
	Price             float64
	PreviousClose     float64
	MarketCap         float64
	SharesOutstanding float64
}

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	FetchSnapshot(ctx context.Context, symbol string) (*Snapshot, error)
	Name() string
}
