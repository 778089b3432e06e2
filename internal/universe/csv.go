package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// tickerColumns are the column names recognized as holding ticker symbols,
// matched case-insensitively. Screener exports (FinViz, TradingView, Yahoo)
// all use one of these.
var tickerColumns = []string{"ticker", "symbol", "tickers", "symbols", "stock"}

// ImportCSV reads a screener-export CSV and returns the cleaned ticker list.
// When column is empty the ticker column is located automatically; otherwise
// the named column is used. The error for an unlocatable column names the
// columns that were available.
func ImportCSV(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv %s has no data rows", path)
	}

	header := records[0]
	if len(header) > 0 {
		// A UTF-8 BOM survives csv parsing attached to the first header cell.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	colIdx := -1
	if column != "" {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), column) {
				colIdx = i
				break
			}
		}
		if colIdx < 0 {
			return nil, fmt.Errorf("column %q not found; available columns: %s", column, strings.Join(header, ", "))
		}
	} else {
		for i, h := range header {
			name := strings.ToLower(strings.TrimSpace(h))
			for _, known := range tickerColumns {
				if name == known {
					colIdx = i
					break
				}
			}
			if colIdx >= 0 {
				break
			}
		}
		if colIdx < 0 {
			return nil, fmt.Errorf("no ticker column found; available columns: %s", strings.Join(header, ", "))
		}
	}

	raw := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if colIdx >= len(rec) {
			continue
		}
		raw = append(raw, rec[colIdx])
	}

	tickers := Clean(raw)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("csv %s yielded no valid tickers", path)
	}
	return tickers, nil
}
