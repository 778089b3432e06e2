package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"MarketScanner/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca market data API. Alpaca
// does not report market cap; snapshots carry a zero cap and the universe
// filter skips the cap rule for such stocks.
type AlpacaFetcher struct {
	client *marketdata.Client
}

// NewAlpacaFetcher creates a fetcher authenticated with the given API keys.
func NewAlpacaFetcher(apiKey, apiSecret string) *AlpacaFetcher {
	return &AlpacaFetcher{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

func (f *AlpacaFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.OHLCV, error) {
	// Pad the window with weekends and holidays to land near `days` sessions.
	start := time.Now().AddDate(0, 0, -(days*3/2 + 3))

	alpacaBars, err := f.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	bars := make([]model.OHLCV, 0, len(alpacaBars))
	for _, b := range alpacaBars {
		bars = append(bars, model.OHLCV{
			Time:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// FetchSnapshot reports the latest trade price. Previous close and market cap
// stay zero; the collector derives the former from bar history.
func (f *AlpacaFetcher) FetchSnapshot(_ context.Context, symbol string) (*Snapshot, error) {
	trade, err := f.client.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return nil, fmt.Errorf("alpaca latest trade %s: %w", symbol, err)
	}
	return &Snapshot{Price: trade.Price}, nil
}
