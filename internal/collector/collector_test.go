package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScanner/internal/model"
)

func TestCollect(t *testing.T) {
	fetcher := &MockFetcher{Price: 100, MarketCap: 5e9}
	c := NewCollector(fetcher, 30, 20, zerolog.Nop())

	stock, err := c.Collect(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", stock.Ticker)
	assert.Equal(t, 100.0, stock.CurrentPrice)
	assert.Equal(t, 5e9, stock.MarketCap)
	assert.Len(t, stock.Bars, 30)
	assert.Equal(t, 1000000.0, stock.AvgVolume)
	assert.False(t, stock.FetchedAt.IsZero())
}

func TestCollect_InsufficientHistory(t *testing.T) {
	fetcher := &MockFetcher{Price: 100, Bars: GenerateMockBars(100, 3)}
	c := NewCollector(fetcher, 30, 20, zerolog.Nop())

	_, err := c.Collect(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestCollect_FetchError(t *testing.T) {
	wantErr := errors.New("rate limited")
	fetcher := &MockFetcher{Err: wantErr}
	c := NewCollector(fetcher, 30, 20, zerolog.Nop())

	_, err := c.Collect(context.Background(), "AAPL")
	assert.ErrorIs(t, err, wantErr)
}

func TestCollect_PriceFallsBackToLastClose(t *testing.T) {
	bars := GenerateMockBars(50, 10)
	fetcher := &MockFetcher{Bars: bars} // snapshot price is zero
	c := NewCollector(fetcher, 30, 20, zerolog.Nop())

	stock, err := c.Collect(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, bars[len(bars)-1].Close, stock.CurrentPrice)
	assert.Equal(t, bars[len(bars)-2].Close, stock.PreviousClose)
}

func TestCollect_NoUsablePrice(t *testing.T) {
	bars := make([]model.OHLCV, 10) // all-zero bars
	fetcher := &MockFetcher{Bars: bars}
	c := NewCollector(fetcher, 30, 20, zerolog.Nop())

	_, err := c.Collect(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestAverageVolume(t *testing.T) {
	bars := []model.OHLCV{
		{Volume: 100}, {Volume: 200}, {Volume: 300}, {Volume: 400},
	}
	assert.Equal(t, 350.0, averageVolume(bars, 2))
	assert.Equal(t, 250.0, averageVolume(bars, 20)) // fewer bars than window
	assert.Equal(t, 0.0, averageVolume(nil, 20))
}

func TestGenerateMockBars(t *testing.T) {
	bars := GenerateMockBars(100, 30)
	require.Len(t, bars, 30)
	for _, b := range bars {
		assert.Greater(t, b.High, 0.0)
		assert.GreaterOrEqual(t, b.High, b.Low)
	}
	assert.True(t, bars[0].Time.Before(bars[29].Time))
}
