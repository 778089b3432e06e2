package universe

// Curated returns the built-in list of 100 large-cap US stocks. It is the
// universe of last resort when neither the exchange listings nor the S&P 500
// constituents page can be reached.
func Curated() []string {
	return []string{
		"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK-B", "UNH", "XOM",
		"JNJ", "JPM", "V", "PG", "MA", "HD", "CVX", "MRK", "ABBV", "PEP",
		"KO", "AVGO", "COST", "PFE", "WMT", "TMO", "MCD", "CSCO", "ACN", "DHR",
		"ADBE", "ABT", "NKE", "TXN", "NEE", "CRM", "LIN", "PM", "DIS", "ORCL",
		"VZ", "WFC", "CMCSA", "BMY", "AMD", "INTC", "RTX", "UPS", "QCOM", "HON",
		"AMGN", "BA", "INTU", "CAT", "AMAT", "GE", "IBM", "LOW", "SPGI", "SBUX",
		"BLK", "DE", "GILD", "ELV", "ADP", "LMT", "BKNG", "PLD", "MDLZ", "ADI",
		"ISRG", "CI", "TJX", "MMC", "VRTX", "SYK", "C", "REGN", "ZTS", "MO",
		"NOW", "CB", "SO", "PGR", "DUK", "ETN", "BSX", "BDX", "CME", "ITW",
		"EOG", "APD", "USB", "CL", "HUM", "MMM", "GD", "AON", "TGT", "SLB",
	}
}
