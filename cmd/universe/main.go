// Command universe maintains the ticker universe cache file: download fresh
// exchange listings, import a screener CSV, or fall back to the curated list.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"MarketScanner/internal/config"
	"MarketScanner/internal/universe"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	prepare := flag.Bool("prepare", false, "download exchange listings into the universe cache")
	importCSV := flag.String("import", "", "import tickers from a screener CSV export")
	column := flag.String("column", "", "ticker column name for -import (auto-detected when empty)")
	merge := flag.Bool("merge", false, "merge imported tickers with the existing cache")
	curated := flag.Bool("curated", false, "write the built-in curated list to the cache")
	flag.Parse()

	_ = godotenv.Load()

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	lg := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(cfg.ZerologLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tickers []string
	switch {
	case *prepare:
		tickers, err = prepareUniverse(ctx, cfg, lg)
	case *importCSV != "":
		tickers, err = importUniverse(*importCSV, *column, *merge, cfg, lg)
	case *curated:
		tickers = universe.Curated()
		lg.Info().Int("tickers", len(tickers)).Msg("using curated list")
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		lg.Fatal().Err(err).Msg("universe build failed")
	}

	if err := universe.Save(cfg.Universe.CacheFile, tickers); err != nil {
		lg.Fatal().Err(err).Msg("universe save failed")
	}
	lg.Info().Str("file", cfg.Universe.CacheFile).Int("tickers", len(tickers)).
		Msg("universe ready")
}

// prepareUniverse downloads the full exchange listings, falling back to the
// S&P 500 constituents and finally the curated list.
func prepareUniverse(ctx context.Context, cfg *config.Config, lg zerolog.Logger) ([]string, error) {
	src := universe.NewSource(cfg.Proxy, lg)

	tickers, err := src.FetchExchangeListings(ctx)
	if err == nil {
		return tickers, nil
	}
	lg.Warn().Err(err).Msg("exchange listings unavailable, trying sp500")

	tickers, err = src.FetchSP500(ctx)
	if err == nil {
		return tickers, nil
	}
	lg.Warn().Err(err).Msg("sp500 unavailable, using curated list")

	return universe.Curated(), nil
}

func importUniverse(path, column string, merge bool, cfg *config.Config, lg zerolog.Logger) ([]string, error) {
	tickers, err := universe.ImportCSV(path, column)
	if err != nil {
		return nil, err
	}
	lg.Info().Str("csv", path).Int("tickers", len(tickers)).Msg("csv imported")

	if merge {
		merged, err := universe.Merge(cfg.Universe.CacheFile, tickers)
		if err != nil {
			return nil, err
		}
		lg.Info().Int("before", len(tickers)).Int("after", len(merged)).
			Msg("merged with existing universe")
		return merged, nil
	}
	return tickers, nil
}
