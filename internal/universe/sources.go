package universe

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	// The NASDAQ trader symbol directory is plain HTTP; HTTPS times out.
	defaultSymbolDirURL = "http://ftp.nasdaqtrader.com/dynamic/SymDir"
	defaultSP500URL     = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"
)

// Source downloads ticker universes from the exchanges' public listings.
type Source struct {
	Client       *http.Client
	SymbolDirURL string
	SP500URL     string
	lg           zerolog.Logger
}

// NewSource creates a Source with optional proxy support.
func NewSource(proxyURL string, lg zerolog.Logger) *Source {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Source{
		Client: &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport,
		},
		SymbolDirURL: defaultSymbolDirURL,
		SP500URL:     defaultSP500URL,
		lg:           lg.With().Str("module", "universe").Logger(),
	}
}

// FetchExchangeListings downloads the NASDAQ symbol directory files and returns
// the cleaned union of NASDAQ, NYSE, AMEX, ARCA and BATS listed symbols.
func (s *Source) FetchExchangeListings(ctx context.Context) ([]string, error) {
	var all []string

	nasdaq, err := s.fetchNasdaqListed(ctx)
	if err != nil {
		s.lg.Warn().Err(err).Msg("fetch nasdaq listings failed")
	} else {
		s.lg.Info().Int("count", len(nasdaq)).Msg("nasdaq listings fetched")
		all = append(all, nasdaq...)
	}

	other, err := s.fetchOtherListed(ctx)
	if err != nil {
		s.lg.Warn().Err(err).Msg("fetch nyse/amex listings failed")
	} else {
		s.lg.Info().Int("count", len(other)).Msg("nyse/amex listings fetched")
		all = append(all, other...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no symbols from any exchange listing")
	}
	return Clean(all), nil
}

// fetchNasdaqListed parses nasdaqlisted.txt, keeping non-test symbols that are
// not financially deficient.
func (s *Source) fetchNasdaqListed(ctx context.Context) ([]string, error) {
	records, err := s.fetchPipeFile(ctx, s.SymbolDirURL+"/nasdaqlisted.txt")
	if err != nil {
		return nil, err
	}
	return extractSymbols(records, "Symbol", func(row map[string]string) bool {
		return row["Test Issue"] == "N" && row["Financial Status"] != "D"
	})
}

// fetchOtherListed parses otherlisted.txt, keeping non-test symbols on the
// NYSE (N), AMEX (A), ARCA (P) and BATS (Z) exchanges.
func (s *Source) fetchOtherListed(ctx context.Context) ([]string, error) {
	records, err := s.fetchPipeFile(ctx, s.SymbolDirURL+"/otherlisted.txt")
	if err != nil {
		return nil, err
	}
	exchanges := map[string]bool{"A": true, "N": true, "P": true, "Z": true}
	return extractSymbols(records, "ACT Symbol", func(row map[string]string) bool {
		return row["Test Issue"] == "N" && exchanges[row["Exchange"]]
	})
}

// fetchPipeFile downloads and parses a pipe-delimited symbol directory file.
func (s *Source) fetchPipeFile(ctx context.Context, fileURL string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", fileURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", fileURL, resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.Comma = '|'
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", fileURL, err)
		}
		records = append(records, rec)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("parse %s: no data rows", fileURL)
	}
	return records, nil
}

// extractSymbols maps the header row onto each record and collects the symbol
// column from rows accepted by keep. The trailing "File Creation Time" metadata
// row is skipped.
func extractSymbols(records [][]string, symbolCol string, keep func(map[string]string) bool) ([]string, error) {
	header := records[0]
	colIdx := -1
	for i, h := range header {
		if h == symbolCol {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("column %q not found in header %v", symbolCol, header)
	}

	var symbols []string
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			continue
		}
		if strings.Contains(rec[0], "File Creation Time") {
			continue
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			row[h] = rec[i]
		}
		if !keep(row) {
			continue
		}
		if sym := strings.TrimSpace(rec[colIdx]); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}

// FetchSP500 scrapes the S&P 500 constituents table from Wikipedia. Used as a
// fallback universe when the exchange listings are unreachable.
func (s *Source) FetchSP500(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.SP500URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sp500 page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sp500 page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse sp500 page: %w", err)
	}

	var tickers []string
	doc.Find("table#constituents tbody tr td:first-child").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			tickers = append(tickers, t)
		}
	})
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no constituents found on sp500 page")
	}

	s.lg.Info().Int("count", len(tickers)).Msg("sp500 constituents fetched")
	return Clean(tickers), nil
}
