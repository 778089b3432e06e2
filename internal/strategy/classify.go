// Package strategy classifies fetched stocks into strong-trend, panic and
// euphoria buckets with simple threshold rules.
package strategy

import (
	"fmt"

	"MarketScanner/internal/model"
)

// Thresholds are the classification knobs, in percent.
type Thresholds struct {
	TrendMinDailyGain float64 `json:"trend_min_daily_gain"` // per-day gain for the consecutive rule
	Trend3dTotal      float64 `json:"trend_3d_total"`       // total 3-day gain alternative
	Panic1dDrop       float64 `json:"panic_1d_drop"`
	Panic3dDrop       float64 `json:"panic_3d_drop"`
	PanicVolumeMult   float64 `json:"panic_volume_multiplier"` // volume spike confirmation multiplier
	Euphoria1dGain    float64 `json:"euphoria_1d_gain"`
	Euphoria5dGain    float64 `json:"euphoria_5d_gain"`
}

// DefaultThresholds returns the standard scanner parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrendMinDailyGain: 5.0,
		Trend3dTotal:      15.0,
		Panic1dDrop:       8.0,
		Panic3dDrop:       15.0,
		PanicVolumeMult:   1.5,
		Euphoria1dGain:    8.0,
		Euphoria5dGain:    20.0,
	}
}

// classifyStrongTrend fires on 3 consecutive large daily gains, or on a large
// 3-day gain with the last session still positive.
func classifyStrongTrend(ch *model.Changes, t Thresholds) (bool, string) {
	if ch.Consecutive3d {
		return true, fmt.Sprintf("3 consecutive days with %.0f%%+ gains each", t.TrendMinDailyGain)
	}
	if ch.Change3d >= t.Trend3dTotal && ch.Change1d > 0 {
		return true, fmt.Sprintf("%.1f%% gain over 3 days with positive momentum", ch.Change3d)
	}
	return false, ""
}

// classifyPanic fires on a single-day drop (with a volume-spike note when the
// latest session traded well above average) or on a sustained 3-day drop.
func classifyPanic(stock *model.StockData, ch *model.Changes, t Thresholds) (bool, string) {
	if ch.Change1d <= -t.Panic1dDrop {
		if vol := stock.LatestVolume(); stock.AvgVolume > 0 && vol > stock.AvgVolume*t.PanicVolumeMult {
			return true, fmt.Sprintf("%.1f%% drop in 1 day with %.1fx volume spike",
				-ch.Change1d, vol/stock.AvgVolume)
		}
		return true, fmt.Sprintf("%.1f%% drop in 1 day", -ch.Change1d)
	}
	if ch.Change3d <= -t.Panic3dDrop {
		return true, fmt.Sprintf("%.1f%% drop over 3 days", -ch.Change3d)
	}
	return false, ""
}

// classifyEuphoria fires on a single-day gain (noting acceleration when the
// day beats a positive 5-day average) or on a sustained 5-day gain.
func classifyEuphoria(ch *model.Changes, t Thresholds) (bool, string) {
	if ch.Change1d >= t.Euphoria1dGain {
		if ch.AvgDailyChange5 > 0 && ch.Change1d > ch.AvgDailyChange5 {
			return true, fmt.Sprintf("%.1f%% gain in 1 day with acceleration (avg: %.1f%%)",
				ch.Change1d, ch.AvgDailyChange5)
		}
		return true, fmt.Sprintf("%.1f%% gain in 1 day", ch.Change1d)
	}
	if ch.Change5d >= t.Euphoria5dGain {
		return true, fmt.Sprintf("%.1f%% gain over 5 days", ch.Change5d)
	}
	return false, ""
}

// Classify runs a stock through all three rule sets and returns its category,
// or nil when nothing fires. Priority: strong trend > panic > euphoria. A stock
// matching both panic and euphoria is whipsaw noise and is discarded. The
// computed change metrics are returned alongside for reporting.
func Classify(stock *model.StockData, t Thresholds) (*model.Classification, *model.Changes) {
	ch, err := Changes(stock.Bars, t)
	if err != nil {
		return nil, nil
	}

	isTrend, trendReason := classifyStrongTrend(ch, t)
	isPanic, panicReason := classifyPanic(stock, ch, t)
	isEuphoria, euphoriaReason := classifyEuphoria(ch, t)

	if isPanic && isEuphoria {
		return nil, ch
	}

	switch {
	case isTrend:
		return &model.Classification{Category: model.CategoryStrongTrend, Reason: trendReason}, ch
	case isPanic:
		return &model.Classification{Category: model.CategoryPanic, Reason: panicReason}, ch
	case isEuphoria:
		return &model.Classification{Category: model.CategoryEuphoria, Reason: euphoriaReason}, ch
	}
	return nil, ch
}
