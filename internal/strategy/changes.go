package strategy

import (
	"errors"

	"MarketScanner/internal/model"
)

// ErrNotEnoughBars is returned when a history is too short to compute any
// change metric.
var ErrNotEnoughBars = errors.New("not enough bars for price changes")

// Changes computes the percent-change metrics the classifiers consume. Windows
// that the history cannot cover stay zero. The consecutive-gains flag uses the
// strong-trend per-day threshold.
func Changes(bars []model.OHLCV, t Thresholds) (*model.Changes, error) {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	n := len(closes)
	if n < 2 {
		return nil, ErrNotEnoughBars
	}

	ch := &model.Changes{}
	ch.Change1d = pctChange(closes[n-2], closes[n-1])
	if n >= 4 {
		ch.Change3d = pctChange(closes[n-4], closes[n-1])
	}
	if n >= 6 {
		ch.Change5d = pctChange(closes[n-6], closes[n-1])
	}

	// Three consecutive sessions each gaining at least the trend threshold.
	if n >= 4 {
		minGain := t.TrendMinDailyGain
		ch.Consecutive3d = pctChange(closes[n-2], closes[n-1]) >= minGain &&
			pctChange(closes[n-3], closes[n-2]) >= minGain &&
			pctChange(closes[n-4], closes[n-3]) >= minGain
	}

	if n >= 6 {
		sum := 0.0
		for i := n - 5; i < n; i++ {
			d := pctChange(closes[i-1], closes[i])
			ch.DailyChanges = append(ch.DailyChanges, d)
			sum += d
		}
		ch.AvgDailyChange5 = sum / float64(len(ch.DailyChanges))
	}

	return ch, nil
}

// pctChange returns the percent move from a previous close to a later one.
func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to/from - 1) * 100
}
