package strategy

import (
	"strings"
	"testing"

	"MarketScanner/internal/model"
)

// barsFrom builds a daily history from closing prices, each bar trading the
// given volume.
func barsFrom(closes []float64, volume float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Open: c, High: c, Low: c, Close: c, Volume: volume}
	}
	return bars
}

func stockFrom(closes []float64, volume, avgVolume float64) *model.StockData {
	return &model.StockData{
		Ticker:       "TEST",
		CurrentPrice: closes[len(closes)-1],
		Bars:         barsFrom(closes, volume),
		AvgVolume:    avgVolume,
	}
}

func TestClassify_ConsecutiveGainsIsStrongTrend(t *testing.T) {
	// Three sessions in a row each up more than 5%.
	stock := stockFrom([]float64{100, 100, 100, 106, 113, 120}, 1e6, 1e6)
	cls, ch := Classify(stock, DefaultThresholds())
	if cls == nil {
		t.Fatal("expected a classification")
	}
	if cls.Category != model.CategoryStrongTrend {
		t.Fatalf("expected strong_trend, got %s", cls.Category)
	}
	if !ch.Consecutive3d {
		t.Error("expected the consecutive-gains flag to be set")
	}
	if !strings.Contains(cls.Reason, "consecutive") {
		t.Errorf("unexpected reason: %s", cls.Reason)
	}
}

func TestClassify_Cumulative3DayGainIsStrongTrend(t *testing.T) {
	// 16% over three sessions; the first day stays under 5% so the
	// consecutive rule does not fire.
	stock := stockFrom([]float64{100, 100, 100, 104.5, 111, 116}, 1e6, 1e6)
	cls, _ := Classify(stock, DefaultThresholds())
	if cls == nil || cls.Category != model.CategoryStrongTrend {
		t.Fatalf("expected strong_trend, got %+v", cls)
	}
}

func TestClassify_OneDayDropIsPanic(t *testing.T) {
	stock := stockFrom([]float64{100, 100, 100, 100, 100, 90}, 1e6, 1e6)
	cls, ch := Classify(stock, DefaultThresholds())
	if cls == nil || cls.Category != model.CategoryPanic {
		t.Fatalf("expected panic, got %+v", cls)
	}
	if ch.Change1d > -9.9 || ch.Change1d < -10.1 {
		t.Errorf("expected ~-10%% 1d change, got %.2f", ch.Change1d)
	}
}

func TestClassify_PanicVolumeSpikeReason(t *testing.T) {
	// 10% drop on twice the average volume.
	stock := stockFrom([]float64{100, 100, 100, 100, 100, 90}, 2e6, 1e6)
	cls, _ := Classify(stock, DefaultThresholds())
	if cls == nil || cls.Category != model.CategoryPanic {
		t.Fatalf("expected panic, got %+v", cls)
	}
	if !strings.Contains(cls.Reason, "volume spike") {
		t.Errorf("expected a volume spike reason, got: %s", cls.Reason)
	}
}

func TestClassify_ThreeDayDropIsPanic(t *testing.T) {
	// Sustained slide: -16% over three sessions, no single day at -8%.
	stock := stockFrom([]float64{100, 100, 100, 94, 89, 84}, 1e6, 1e6)
	cls, _ := Classify(stock, DefaultThresholds())
	if cls == nil || cls.Category != model.CategoryPanic {
		t.Fatalf("expected panic, got %+v", cls)
	}
	if !strings.Contains(cls.Reason, "3 days") {
		t.Errorf("unexpected reason: %s", cls.Reason)
	}
}

func TestClassify_OneDayGainIsEuphoria(t *testing.T) {
	stock := stockFrom([]float64{100, 100, 100, 100, 100, 109}, 1e6, 1e6)
	cls, _ := Classify(stock, DefaultThresholds())
	if cls == nil || cls.Category != model.CategoryEuphoria {
		t.Fatalf("expected euphoria, got %+v", cls)
	}
}

func TestClassify_FiveDayGainIsEuphoria(t *testing.T) {
	// 21% over five sessions, roughly 4% per day, below every 1-day trigger
	// and below the 3-day trend total.
	stock := stockFrom([]float64{100, 104, 108, 112, 116, 121}, 1e6, 1e6)
	cls, _ := Classify(stock, DefaultThresholds())
	if cls == nil || cls.Category != model.CategoryEuphoria {
		t.Fatalf("expected euphoria, got %+v", cls)
	}
	if !strings.Contains(cls.Reason, "5 days") {
		t.Errorf("unexpected reason: %s", cls.Reason)
	}
}

func TestClassify_StrongTrendBeatsEuphoria(t *testing.T) {
	// Three sessions of +8% trigger both rule sets; trend takes priority.
	stock := stockFrom([]float64{100, 100, 100, 108, 116.6, 126}, 1e6, 1e6)
	cls, _ := Classify(stock, DefaultThresholds())
	if cls == nil || cls.Category != model.CategoryStrongTrend {
		t.Fatalf("expected strong_trend to win, got %+v", cls)
	}
}

func TestClassify_PanicAndEuphoriaIsNoise(t *testing.T) {
	// A violent bounce: down hard for two sessions, then +12% in one day.
	// Still -16% over three sessions, so both panic and euphoria fire.
	stock := stockFrom([]float64{100, 100, 100, 85, 75, 84}, 1e6, 1e6)
	cls, ch := Classify(stock, DefaultThresholds())
	if cls != nil {
		t.Fatalf("expected whipsaw noise to be discarded, got %+v", cls)
	}
	if ch == nil {
		t.Fatal("expected change metrics even for discarded stocks")
	}
}

func TestClassify_QuietStockIsUnclassified(t *testing.T) {
	stock := stockFrom([]float64{100, 101, 100.5, 101.2, 100.8, 101.5}, 1e6, 1e6)
	cls, ch := Classify(stock, DefaultThresholds())
	if cls != nil {
		t.Fatalf("expected no classification, got %+v", cls)
	}
	if ch == nil {
		t.Fatal("expected change metrics")
	}
}

func TestClassify_TooLittleHistory(t *testing.T) {
	stock := stockFrom([]float64{100}, 1e6, 1e6)
	cls, ch := Classify(stock, DefaultThresholds())
	if cls != nil || ch != nil {
		t.Fatalf("expected nil results for a single bar, got %+v %+v", cls, ch)
	}
}

func TestChanges_Windows(t *testing.T) {
	bars := barsFrom([]float64{100, 102, 104, 106, 108, 110}, 1e6)
	ch, err := Changes(bars, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx := func(got, want float64) bool { return got > want-0.05 && got < want+0.05 }
	if !approx(ch.Change1d, 1.85) {
		t.Errorf("1d change = %.2f, want ~1.85", ch.Change1d)
	}
	if !approx(ch.Change3d, 5.77) {
		t.Errorf("3d change = %.2f, want ~5.77", ch.Change3d)
	}
	if !approx(ch.Change5d, 10.0) {
		t.Errorf("5d change = %.2f, want ~10.0", ch.Change5d)
	}
	if len(ch.DailyChanges) != 5 {
		t.Fatalf("expected 5 daily changes, got %d", len(ch.DailyChanges))
	}
	if ch.AvgDailyChange5 <= 0 {
		t.Errorf("expected positive average daily change, got %.2f", ch.AvgDailyChange5)
	}
}

func TestChanges_ShortHistoryLeavesWindowsZero(t *testing.T) {
	bars := barsFrom([]float64{100, 105}, 1e6)
	ch, err := Changes(bars, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Change1d < 4.9 || ch.Change1d > 5.1 {
		t.Errorf("1d change = %.2f, want 5.0", ch.Change1d)
	}
	if ch.Change3d != 0 || ch.Change5d != 0 {
		t.Errorf("expected uncovered windows to stay zero, got 3d=%.2f 5d=%.2f", ch.Change3d, ch.Change5d)
	}
	if ch.Consecutive3d {
		t.Error("consecutive flag should not fire without 4 bars")
	}
}
