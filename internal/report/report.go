// Package report serializes scan outcomes: the timestamped results JSON, the
// raw-data cache snapshot, and the console summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"

	"MarketScanner/internal/filters"
	"MarketScanner/internal/model"
	"MarketScanner/internal/scanner"
	"MarketScanner/internal/strategy"
)

// stampLayout names result and cache files, e.g. scan_20240115_093042.json.
const stampLayout = "20060102_150405"

// Entry is one classified stock in the results file.
type Entry struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	MarketCap float64 `json:"market_cap,omitempty"`
	Change1d  float64 `json:"change_1d"`
	Change3d  float64 `json:"change_3d"`
	Change5d  float64 `json:"change_5d"`
	Reason    string  `json:"reason"`
}

// NewEntry builds an Entry from a classified stock and its change metrics.
func NewEntry(stock *model.StockData, cls *model.Classification, ch *model.Changes) Entry {
	return Entry{
		Ticker:    stock.Ticker,
		Price:     stock.CurrentPrice,
		MarketCap: stock.MarketCap,
		Change1d:  ch.Change1d,
		Change3d:  ch.Change3d,
		Change5d:  ch.Change5d,
		Reason:    cls.Reason,
	}
}

// Results buckets classified stocks per category.
type Results struct {
	StrongTrend []Entry `json:"strong_trend"`
	Panic       []Entry `json:"panic"`
	Euphoria    []Entry `json:"euphoria"`
}

// Add appends an entry to its category bucket.
func (r *Results) Add(cat model.Category, e Entry) {
	switch cat {
	case model.CategoryStrongTrend:
		r.StrongTrend = append(r.StrongTrend, e)
	case model.CategoryPanic:
		r.Panic = append(r.Panic, e)
	case model.CategoryEuphoria:
		r.Euphoria = append(r.Euphoria, e)
	}
}

// Total returns the number of classified stocks across all categories.
func (r *Results) Total() int {
	return len(r.StrongTrend) + len(r.Panic) + len(r.Euphoria)
}

// Statistics describes the funnel from universe to classified set.
type Statistics struct {
	InitialTickers   int           `json:"initial_tickers"`
	DataFetched      int           `json:"data_fetched"`
	PassedFilters    int           `json:"passed_filters"`
	FetchSuccessRate string        `json:"fetch_success_rate"`
	FilterPassRate   string        `json:"filter_pass_rate"`
	Universe         filters.Stats `json:"universe"`
}

// NewStatistics derives the funnel numbers from scan stats and filter output.
func NewStatistics(fetch scanner.FetchStats, passed []*model.StockData) Statistics {
	st := Statistics{
		InitialTickers:   fetch.Requested,
		DataFetched:      fetch.Fetched,
		PassedFilters:    len(passed),
		FetchSuccessRate: fmt.Sprintf("%.1f%%", fetch.SuccessRate()),
		Universe:         filters.Describe(passed),
	}
	if fetch.Fetched > 0 {
		st.FilterPassRate = fmt.Sprintf("%.1f%%", float64(len(passed))/float64(fetch.Fetched)*100)
	} else {
		st.FilterPassRate = "0.0%"
	}
	return st
}

// Summary holds the per-category counts written at the end of the results file.
type Summary struct {
	StrongTrendCount int `json:"strong_trend_count"`
	PanicCount       int `json:"panic_count"`
	EuphoriaCount    int `json:"euphoria_count"`
	TotalClassified  int `json:"total_classified"`
}

// Output is the full results document.
type Output struct {
	RunID        string               `json:"run_id"`
	Timestamp    string               `json:"timestamp"`
	AnalysisDate string               `json:"analysis_date"`
	Criteria     filters.Criteria     `json:"criteria"`
	Thresholds   strategy.Thresholds  `json:"thresholds"`
	Statistics   Statistics           `json:"statistics"`
	Results      Results              `json:"results"`
	Summary      Summary              `json:"summary"`
}

// NewOutput starts a results document stamped with the current time in the
// market timezone and a fresh run ID.
func NewOutput(loc *time.Location, criteria filters.Criteria, thresholds strategy.Thresholds) *Output {
	now := time.Now()
	return &Output{
		RunID:        uuid.NewString(),
		Timestamp:    now.Format(stampLayout),
		AnalysisDate: now.In(loc).Format(time.RFC3339),
		Criteria:     criteria,
		Thresholds:   thresholds,
	}
}

// Finalize fills the summary counts from the result buckets.
func (o *Output) Finalize() {
	o.Summary = Summary{
		StrongTrendCount: len(o.Results.StrongTrend),
		PanicCount:       len(o.Results.Panic),
		EuphoriaCount:    len(o.Results.Euphoria),
		TotalClassified:  o.Results.Total(),
	}
}

// Writer persists results and cache snapshots under the configured directories.
type Writer struct {
	ResultsDir string
	DataDir    string
	lg         zerolog.Logger
}

// NewWriter creates a Writer.
func NewWriter(resultsDir, dataDir string, lg zerolog.Logger) *Writer {
	return &Writer{
		ResultsDir: resultsDir,
		DataDir:    dataDir,
		lg:         lg.With().Str("module", "report").Logger(),
	}
}

// WriteResults writes the results document to results/scan_<ts>.json,
// prettified for human reading, and returns the path.
func (w *Writer) WriteResults(out *Output) (string, error) {
	if err := os.MkdirAll(w.ResultsDir, 0755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}

	path := filepath.Join(w.ResultsDir, fmt.Sprintf("scan_%s.json", out.Timestamp))
	if err := os.WriteFile(path, pretty.Pretty(data), 0644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}

	w.lg.Info().Str("path", path).Int("classified", out.Summary.TotalClassified).
		Msg("results written")
	return path, nil
}

// WriteCache snapshots the raw fetched records to data/cache_<ts>.json so a
// later run can reclassify without refetching.
func (w *Writer) WriteCache(stocks []*model.StockData, stamp string) (string, error) {
	if err := os.MkdirAll(w.DataDir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.Marshal(stocks)
	if err != nil {
		return "", fmt.Errorf("marshal cache: %w", err)
	}

	path := filepath.Join(w.DataDir, fmt.Sprintf("cache_%s.json", stamp))
	if err := os.WriteFile(path, pretty.Pretty(data), 0644); err != nil {
		return "", fmt.Errorf("write cache: %w", err)
	}

	w.lg.Info().Str("path", path).Int("stocks", len(stocks)).Msg("cache written")
	return path, nil
}

// LoadCache reads a snapshot previously written by WriteCache.
func LoadCache(path string) ([]*model.StockData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	var stocks []*model.StockData
	if err := json.Unmarshal(data, &stocks); err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	if len(stocks) == 0 {
		return nil, fmt.Errorf("cache %s holds no stocks", path)
	}
	return stocks, nil
}
