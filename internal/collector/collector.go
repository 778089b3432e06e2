package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"MarketScanner/internal/model"
)

// Skip reasons. The scan loop matches on these to count why tickers dropped out.
var (
	ErrInsufficientHistory = errors.New("insufficient price history")
	ErrMissingData         = errors.New("missing critical data")
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	MarketCap float64
	Bars      []model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchSnapshot(_ context.Context, _ string) (*Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &Snapshot{Price: m.Price, MarketCap: m.MarketCap}, nil
}

// GenerateMockBars builds a gently drifting series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector assembles complete per-ticker records from a Fetcher.
type Collector struct {
	Fetcher       Fetcher
	HistoryDays   int
	AvgVolumeDays int
	lg            zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays, avgVolumeDays int, lg zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:       fetcher,
		HistoryDays:   historyDays,
		AvgVolumeDays: avgVolumeDays,
		lg:            lg.With().Str("module", "collector").Logger(),
	}
}

// Collect fetches bars and a snapshot for one ticker and assembles a StockData.
// Fields the source left blank are derived from the bar history. Records with
// fewer than 5 bars or no usable price are rejected with a typed error.
func (c *Collector) Collect(ctx context.Context, ticker string) (*model.StockData, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) < 5 {
		return nil, fmt.Errorf("%w: %d bars", ErrInsufficientHistory, len(bars))
	}

	snap, err := c.Fetcher.FetchSnapshot(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	price := snap.Price
	if price == 0 {
		price = bars[len(bars)-1].Close
	}
	if price == 0 {
		return nil, fmt.Errorf("%w: no price", ErrMissingData)
	}

	prevClose := snap.PreviousClose
	if prevClose == 0 && len(bars) >= 2 {
		prevClose = bars[len(bars)-2].Close
	}
	if prevClose == 0 {
		prevClose = price
	}

	marketCap := snap.MarketCap
	if marketCap == 0 && snap.SharesOutstanding > 0 {
		marketCap = snap.SharesOutstanding * price
	}
	if marketCap == 0 {
		c.lg.Debug().Str("ticker", ticker).Str("source", c.Fetcher.Name()).
			Msg("market cap unavailable from source")
	}

	return &model.StockData{
		Ticker:        ticker,
		CurrentPrice:  price,
		PreviousClose: prevClose,
		MarketCap:     marketCap,
		AvgVolume:     averageVolume(bars, c.AvgVolumeDays),
		Bars:          bars,
		FetchedAt:     time.Now(),
	}, nil
}

// averageVolume computes the mean volume over the last `days` bars, falling
// back to all bars when fewer are available.
func averageVolume(bars []model.OHLCV, days int) float64 {
	if len(bars) == 0 {
		return 0
	}
	start := len(bars) - days
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, b := range bars[start:] {
		sum += b.Volume
	}
	return sum / float64(len(bars)-start)
}
