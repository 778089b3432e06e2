// Package scanner runs the serial fetch loop over a ticker universe. One
// ticker is processed at a time, with a fixed delay between requests so the
// upstream data source is never hammered. Failures are logged and skipped,
// never retried.
package scanner

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"MarketScanner/internal/collector"
	"MarketScanner/internal/model"
)

// progressEvery controls how often the loop logs a progress line.
const progressEvery = 100

// FetchStats summarizes one pass over the universe.
type FetchStats struct {
	Requested int `json:"requested"`
	Fetched   int `json:"fetched"`
	Skipped   int `json:"skipped"`
}

// SuccessRate returns the fetched/requested ratio in percent.
func (s FetchStats) SuccessRate() float64 {
	if s.Requested == 0 {
		return 0
	}
	return float64(s.Fetched) / float64(s.Requested) * 100
}

// Scanner iterates a universe against a Collector.
type Scanner struct {
	Collector *collector.Collector
	Delay     time.Duration
	lg        zerolog.Logger
}

// New creates a Scanner with the given fixed inter-request delay.
func New(col *collector.Collector, delay time.Duration, lg zerolog.Logger) *Scanner {
	return &Scanner{
		Collector: col,
		Delay:     delay,
		lg:        lg.With().Str("module", "scanner").Logger(),
	}
}

// Scan fetches data for every ticker in order. Tickers that fail are skipped
// and counted; the loop continues. Cancelling the context stops the scan and
// returns whatever was gathered so far.
func (s *Scanner) Scan(ctx context.Context, tickers []string) ([]*model.StockData, FetchStats) {
	stats := FetchStats{Requested: len(tickers)}
	stocks := make([]*model.StockData, 0, len(tickers))

	s.lg.Info().Int("tickers", len(tickers)).Dur("delay", s.Delay).Msg("scan started")

	for i, ticker := range tickers {
		if ctx.Err() != nil {
			s.lg.Warn().Int("processed", i).Msg("scan cancelled")
			break
		}

		data, err := s.Collector.Collect(ctx, ticker)
		if err != nil {
			stats.Skipped++
			s.lg.Warn().Str("ticker", ticker).Err(err).Msg("skipping ticker")
		} else {
			stats.Fetched++
			stocks = append(stocks, data)
			s.lg.Debug().Str("ticker", ticker).
				Float64("price", data.CurrentPrice).
				Float64("market_cap", data.MarketCap).
				Msg("ticker fetched")
		}

		if (i+1)%progressEvery == 0 {
			s.lg.Info().Int("processed", i+1).Int("total", len(tickers)).
				Int("fetched", stats.Fetched).Msg("scan progress")
		}

		// Fixed rate-limit delay between requests; nothing to wait for after
		// the last ticker.
		if i < len(tickers)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(s.Delay):
			}
		}
	}

	s.lg.Info().Int("fetched", stats.Fetched).Int("skipped", stats.Skipped).
		Msg("scan finished")
	return stocks, stats
}
