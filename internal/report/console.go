package report

import (
	"fmt"
	"strings"
)

const rule = "================================================================================"

// FormatConsole renders the sectioned console report for a finished scan.
func FormatConsole(out *Output) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("MARKET SCANNER RESULTS\n")
	b.WriteString(rule + "\n")

	writeSection(&b, "STRONG TREND", out.Results.StrongTrend, false)
	writeSection(&b, "PANIC", out.Results.Panic, false)
	writeSection(&b, "EUPHORIA", out.Results.Euphoria, true)

	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("Total classified stocks: %d\n", out.Results.Total()))
	b.WriteString(rule + "\n")

	return b.String()
}

// writeSection prints one category block. Euphoria shows the 5-day change in
// place of the 3-day one, matching what its rules look at.
func writeSection(b *strings.Builder, title string, entries []Entry, fiveDay bool) {
	b.WriteString(fmt.Sprintf("\n=== %s (%d stocks) ===\n", title, len(entries)))
	if len(entries) == 0 {
		b.WriteString("No stocks found\n")
		return
	}
	for _, e := range entries {
		longChange := e.Change3d
		longLabel := "3d"
		if fiveDay {
			longChange = e.Change5d
			longLabel = "5d"
		}
		b.WriteString(fmt.Sprintf("%-6s | $%8.2f | %+6.1f%% (1d) | %+6.1f%% (%s) | %s\n",
			e.Ticker, e.Price, e.Change1d, longChange, longLabel, e.Reason))
	}
}

// FormatStatistics renders the fetch/filter funnel for the console.
func FormatStatistics(st Statistics) string {
	var b strings.Builder
	b.WriteString("Statistics:\n")
	b.WriteString(fmt.Sprintf("  Initial tickers: %d\n", st.InitialTickers))
	b.WriteString(fmt.Sprintf("  Data fetched successfully: %d (%s)\n", st.DataFetched, st.FetchSuccessRate))
	b.WriteString(fmt.Sprintf("  Passed filters: %d (%s)\n", st.PassedFilters, st.FilterPassRate))
	return b.String()
}
