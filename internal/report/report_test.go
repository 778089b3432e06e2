package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScanner/internal/filters"
	"MarketScanner/internal/model"
	"MarketScanner/internal/scanner"
	"MarketScanner/internal/strategy"
)

func testOutput() *Output {
	out := NewOutput(time.UTC, filters.Criteria{MinPrice: 3}, strategy.DefaultThresholds())
	out.Results.Add(model.CategoryStrongTrend, Entry{
		Ticker: "NVDA", Price: 520.10, Change1d: 6.2, Change3d: 17.5, Change5d: 21.0,
		Reason: "17.5% gain over 3 days with positive momentum",
	})
	out.Results.Add(model.CategoryPanic, Entry{
		Ticker: "XYZ", Price: 12.40, Change1d: -9.1, Change3d: -11.0, Change5d: -14.2,
		Reason: "9.1% drop in 1 day",
	})
	out.Finalize()
	return out
}

func TestNewOutput(t *testing.T) {
	out := testOutput()
	assert.NotEmpty(t, out.RunID)
	assert.Len(t, out.Timestamp, len("20240115_093042"))

	_, err := time.Parse(time.RFC3339, out.AnalysisDate)
	assert.NoError(t, err)
}

func TestFinalize(t *testing.T) {
	out := testOutput()
	assert.Equal(t, 1, out.Summary.StrongTrendCount)
	assert.Equal(t, 1, out.Summary.PanicCount)
	assert.Equal(t, 0, out.Summary.EuphoriaCount)
	assert.Equal(t, 2, out.Summary.TotalClassified)
}

func TestResultsAddAndTotal(t *testing.T) {
	var r Results
	r.Add(model.CategoryEuphoria, Entry{Ticker: "A"})
	r.Add(model.CategoryEuphoria, Entry{Ticker: "B"})
	r.Add(model.CategoryPanic, Entry{Ticker: "C"})
	assert.Equal(t, 3, r.Total())
	assert.Len(t, r.Euphoria, 2)
	assert.Empty(t, r.StrongTrend)
}

func TestNewStatistics(t *testing.T) {
	passed := []*model.StockData{
		{Ticker: "A", CurrentPrice: 10, MarketCap: 1e9},
		{Ticker: "B", CurrentPrice: 20, MarketCap: 2e9},
	}
	st := NewStatistics(scanner.FetchStats{Requested: 10, Fetched: 8, Skipped: 2}, passed)

	assert.Equal(t, 10, st.InitialTickers)
	assert.Equal(t, 8, st.DataFetched)
	assert.Equal(t, 2, st.PassedFilters)
	assert.Equal(t, "80.0%", st.FetchSuccessRate)
	assert.Equal(t, "25.0%", st.FilterPassRate)
	assert.Equal(t, 2, st.Universe.Count)
}

func TestNewStatistics_NothingFetched(t *testing.T) {
	st := NewStatistics(scanner.FetchStats{Requested: 5, Skipped: 5}, nil)
	assert.Equal(t, "0.0%", st.FetchSuccessRate)
	assert.Equal(t, "0.0%", st.FilterPassRate)
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, dir, zerolog.Nop())
	out := testOutput()

	path, err := w.WriteResults(out)
	require.NoError(t, err)
	assert.Contains(t, path, "scan_"+out.Timestamp)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"NVDA"`)
	assert.Contains(t, string(data), `"total_classified": 2`)
}

func TestWriteCacheAndLoadCache(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, dir, zerolog.Nop())
	stocks := []*model.StockData{
		{
			Ticker:       "AAPL",
			CurrentPrice: 150,
			MarketCap:    2.4e12,
			AvgVolume:    55e6,
			Bars:         []model.OHLCV{{Close: 149, Volume: 1e6}, {Close: 150, Volume: 1.1e6}},
			FetchedAt:    time.Now().UTC(),
		},
	}

	path, err := w.WriteCache(stocks, "20240115_093042")
	require.NoError(t, err)
	assert.Contains(t, path, "cache_20240115_093042.json")

	got, err := LoadCache(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AAPL", got[0].Ticker)
	assert.Equal(t, 150.0, got[0].CurrentPrice)
	require.Len(t, got[0].Bars, 2)
	assert.Equal(t, 1.1e6, got[0].Bars[1].Volume)
}

func TestLoadCache_MissingFile(t *testing.T) {
	_, err := LoadCache("does/not/exist.json")
	assert.Error(t, err)
}

func TestLoadCache_Empty(t *testing.T) {
	path := t.TempDir() + "/cache.json"
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	_, err := LoadCache(path)
	assert.Error(t, err)
}

func TestFormatConsole(t *testing.T) {
	out := testOutput()
	text := FormatConsole(out)

	assert.Contains(t, text, "MARKET SCANNER RESULTS")
	assert.Contains(t, text, "=== STRONG TREND (1 stocks) ===")
	assert.Contains(t, text, "NVDA")
	assert.Contains(t, text, "(3d)")
	assert.Contains(t, text, "=== EUPHORIA (0 stocks) ===")
	assert.Contains(t, text, "No stocks found")
	assert.Contains(t, text, "Total classified stocks: 2")
}

func TestFormatConsole_EuphoriaShowsFiveDayChange(t *testing.T) {
	out := NewOutput(time.UTC, filters.Criteria{}, strategy.DefaultThresholds())
	out.Results.Add(model.CategoryEuphoria, Entry{
		Ticker: "MEME", Price: 42, Change1d: 9.0, Change3d: 12.0, Change5d: 25.0,
		Reason: "25.0% gain over 5 days",
	})
	out.Finalize()

	text := FormatConsole(out)
	assert.Contains(t, text, "(5d)")
	lines := strings.Split(text, "\n")
	var memeLine string
	for _, l := range lines {
		if strings.HasPrefix(l, "MEME") {
			memeLine = l
		}
	}
	require.NotEmpty(t, memeLine)
	assert.Contains(t, memeLine, "+25.0%")
	assert.NotContains(t, memeLine, "+12.0%")
}

func TestFormatStatistics(t *testing.T) {
	st := NewStatistics(scanner.FetchStats{Requested: 10, Fetched: 8}, nil)
	text := FormatStatistics(st)
	assert.Contains(t, text, "Initial tickers: 10")
	assert.Contains(t, text, "80.0%")
}
