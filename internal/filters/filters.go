// Package filters narrows a fetched universe down to stocks worth classifying.
package filters

import (
	"sort"

	"github.com/rs/zerolog"

	"MarketScanner/internal/model"
)

// Criteria are the universe admission thresholds. A zero MinMarketCap disables
// the cap rule entirely; a stock whose source reported no market cap (cap 0)
// is not penalized for it.
type Criteria struct {
	MinMarketCap    float64 `json:"min_market_cap"`
	MinPrice        float64 `json:"min_price"`
	MinDollarVolume float64 `json:"min_avg_volume"`
}

// Universe applies the admission criteria and returns the surviving stocks.
// Every rejection is logged with its reason.
func Universe(stocks []*model.StockData, c Criteria, lg zerolog.Logger) []*model.StockData {
	lg = lg.With().Str("module", "filters").Logger()
	lg.Info().Int("stocks", len(stocks)).
		Float64("min_market_cap", c.MinMarketCap).
		Float64("min_price", c.MinPrice).
		Float64("min_dollar_volume", c.MinDollarVolume).
		Msg("applying universe filters")

	passed := make([]*model.StockData, 0, len(stocks))
	for _, s := range stocks {
		if c.MinMarketCap > 0 && s.MarketCap > 0 && s.MarketCap < c.MinMarketCap {
			lg.Debug().Str("ticker", s.Ticker).Float64("market_cap", s.MarketCap).
				Msg("filtered out: market cap below minimum")
			continue
		}
		if s.CurrentPrice < c.MinPrice {
			lg.Debug().Str("ticker", s.Ticker).Float64("price", s.CurrentPrice).
				Msg("filtered out: price below minimum")
			continue
		}
		dollarVolume := s.CurrentPrice * s.AvgVolume
		if dollarVolume < c.MinDollarVolume {
			lg.Debug().Str("ticker", s.Ticker).Float64("dollar_volume", dollarVolume).
				Msg("filtered out: dollar volume below minimum")
			continue
		}
		passed = append(passed, s)
	}

	lg.Info().Int("passed", len(passed)).Int("rejected", len(stocks)-len(passed)).
		Msg("universe filters applied")
	return passed
}

// RankByMarketCap sorts stocks by market cap, largest first.
func RankByMarketCap(stocks []*model.StockData) []*model.StockData {
	ranked := make([]*model.StockData, len(stocks))
	copy(ranked, stocks)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].MarketCap > ranked[j].MarketCap })
	return ranked
}

// TopN truncates a ranked list to its first n entries.
func TopN(stocks []*model.StockData, n int) []*model.StockData {
	if n <= 0 || n >= len(stocks) {
		return stocks
	}
	return stocks[:n]
}

// Stats describes the filtered universe for the report.
type Stats struct {
	Count        int     `json:"count"`
	AvgMarketCap float64 `json:"avg_market_cap"`
	MinMarketCap float64 `json:"min_market_cap"`
	MaxMarketCap float64 `json:"max_market_cap"`
	AvgPrice     float64 `json:"avg_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	AvgVolume    float64 `json:"avg_volume"`
}

// Describe computes summary statistics over a stock list.
func Describe(stocks []*model.StockData) Stats {
	st := Stats{Count: len(stocks)}
	if len(stocks) == 0 {
		return st
	}

	st.MinMarketCap = stocks[0].MarketCap
	st.MinPrice = stocks[0].CurrentPrice
	for _, s := range stocks {
		st.AvgMarketCap += s.MarketCap
		st.AvgPrice += s.CurrentPrice
		st.AvgVolume += s.AvgVolume
		if s.MarketCap < st.MinMarketCap {
			st.MinMarketCap = s.MarketCap
		}
		if s.MarketCap > st.MaxMarketCap {
			st.MaxMarketCap = s.MarketCap
		}
		if s.CurrentPrice < st.MinPrice {
			st.MinPrice = s.CurrentPrice
		}
		if s.CurrentPrice > st.MaxPrice {
			st.MaxPrice = s.CurrentPrice
		}
	}
	n := float64(len(stocks))
	st.AvgMarketCap /= n
	st.AvgPrice /= n
	st.AvgVolume /= n
	return st
}
