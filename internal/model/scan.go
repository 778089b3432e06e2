package model

// Category labels the bucket a classified stock lands in.
type Category string

const (
	CategoryStrongTrend Category = "strong_trend"
	CategoryPanic       Category = "panic"
	CategoryEuphoria    Category = "euphoria"
)

// Changes holds price-change metrics computed from a bar history.
type Changes struct {
	Change1d        float64 // last close vs previous close, percent
	Change3d        float64 // last close vs close 3 sessions ago, percent
	Change5d        float64 // last close vs close 5 sessions ago, percent
	Consecutive3d   bool    // each of the last 3 sessions gained at least the trend threshold
	DailyChanges    []float64
	AvgDailyChange5 float64
}

// Classification is the outcome of running a stock through the strategy rules.
type Classification struct {
	Category Category
	Reason   string
}
