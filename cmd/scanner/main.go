package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"MarketScanner/internal/collector"
	"MarketScanner/internal/config"
	"MarketScanner/internal/filters"
	"MarketScanner/internal/model"
	"MarketScanner/internal/report"
	"MarketScanner/internal/scanner"
	"MarketScanner/internal/strategy"
	"MarketScanner/internal/universe"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	cachePath := flag.String("cache", "", "classify from an existing cache snapshot instead of fetching")
	limit := flag.Int("limit", 0, "cap the universe size (0 = no cap), useful for smoke runs")
	flag.Parse()

	// .env is optional; real environment wins either way.
	_ = godotenv.Load()

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	lg := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(cfg.ZerologLevel())
	lg.Info().Str("config", *cfgPath).Str("mode", cfg.Universe.Mode).
		Str("source", cfg.Fetch.Source).Msg("market scanner starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *cachePath, *limit, lg); err != nil {
		lg.Fatal().Err(err).Msg("scan failed")
	}
}

func run(ctx context.Context, cfg *config.Config, cachePath string, limit int, lg zerolog.Logger) error {
	writer := report.NewWriter(cfg.Output.ResultsDir, cfg.Output.DataDir, lg)

	criteria := filters.Criteria{
		MinMarketCap:    cfg.Universe.MinMarketCap,
		MinPrice:        cfg.Universe.MinPrice,
		MinDollarVolume: cfg.Universe.MinDollarVolume,
	}
	thresholds := strategy.Thresholds{
		TrendMinDailyGain: cfg.Thresholds.TrendMinDailyGain,
		Trend3dTotal:      cfg.Thresholds.Trend3dTotal,
		Panic1dDrop:       cfg.Thresholds.Panic1dDrop,
		Panic3dDrop:       cfg.Thresholds.Panic3dDrop,
		PanicVolumeMult:   cfg.Thresholds.PanicVolumeMult,
		Euphoria1dGain:    cfg.Thresholds.Euphoria1dGain,
		Euphoria5dGain:    cfg.Thresholds.Euphoria5dGain,
	}
	out := report.NewOutput(cfg.Location(), criteria, thresholds)

	var stocks []*model.StockData
	var stats scanner.FetchStats

	if cachePath != "" {
		cached, err := report.LoadCache(cachePath)
		if err != nil {
			return err
		}
		lg.Info().Str("cache", cachePath).Int("stocks", len(cached)).
			Msg("classifying from cache snapshot")
		stocks = cached
		stats = scanner.FetchStats{Requested: len(cached), Fetched: len(cached)}
	} else {
		tickers, err := resolveUniverse(ctx, cfg, lg)
		if err != nil {
			return err
		}
		if cfg.Universe.Mode == "top100" && len(tickers) > cfg.Universe.TopN {
			tickers = tickers[:cfg.Universe.TopN]
		}
		if limit > 0 && len(tickers) > limit {
			tickers = tickers[:limit]
		}
		lg.Info().Int("tickers", len(tickers)).Msg("universe resolved")

		fetcher, err := buildFetcher(cfg)
		if err != nil {
			return err
		}
		lg.Info().Str("source", fetcher.Name()).Msg("data source ready")

		col := collector.NewCollector(fetcher, cfg.Fetch.HistoryDays, cfg.Fetch.AvgVolumeDays, lg)
		sc := scanner.New(col, cfg.Delay(), lg)
		stocks, stats = sc.Scan(ctx, tickers)

		if len(stocks) == 0 {
			return errors.New("no stock data loaded")
		}
		if cfg.Output.SaveCache {
			if _, err := writer.WriteCache(stocks, out.Timestamp); err != nil {
				lg.Warn().Err(err).Msg("cache snapshot failed")
			}
		}
	}

	passed := filters.Universe(stocks, criteria, lg)
	if len(passed) == 0 {
		return errors.New("no stocks passed universe filters")
	}
	passed = filters.RankByMarketCap(passed)
	if cfg.Universe.Mode == "top100" {
		passed = filters.TopN(passed, cfg.Universe.TopN)
	}

	for _, stock := range passed {
		cls, ch := strategy.Classify(stock, thresholds)
		if cls == nil {
			continue
		}
		out.Results.Add(cls.Category, report.NewEntry(stock, cls, ch))
	}
	out.Statistics = report.NewStatistics(stats, passed)
	out.Finalize()

	fmt.Print(report.FormatStatistics(out.Statistics))
	fmt.Print(report.FormatConsole(out))

	path, err := writer.WriteResults(out)
	if err != nil {
		return err
	}
	lg.Info().Str("results", path).Msg("scan complete")
	return nil
}

// resolveUniverse picks the ticker list: cached file first when enabled, then
// exchange listings, then the S&P 500 page, then the built-in curated list.
// Freshly fetched universes are cached for the next run.
func resolveUniverse(ctx context.Context, cfg *config.Config, lg zerolog.Logger) ([]string, error) {
	if cfg.Universe.UseCache {
		tickers, err := universe.Load(cfg.Universe.CacheFile)
		if err == nil {
			lg.Info().Str("file", cfg.Universe.CacheFile).Int("tickers", len(tickers)).
				Msg("using cached universe")
			return tickers, nil
		}
		if !errors.Is(err, universe.ErrNoCache) {
			lg.Warn().Err(err).Msg("universe cache unreadable, refetching")
		}
	}

	src := universe.NewSource(cfg.Proxy, lg)
	tickers, err := src.FetchExchangeListings(ctx)
	if err != nil {
		lg.Warn().Err(err).Msg("exchange listings unavailable, trying sp500")
		tickers, err = src.FetchSP500(ctx)
	}
	if err != nil {
		lg.Warn().Err(err).Msg("sp500 unavailable, using curated list")
		tickers = universe.Curated()
	}

	if err := universe.Save(cfg.Universe.CacheFile, tickers); err != nil {
		lg.Warn().Err(err).Msg("universe cache save failed")
	}
	return tickers, nil
}

func buildFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.Fetch.Source {
	case "alpaca":
		return collector.NewAlpacaFetcher(cfg.Fetch.Alpaca.APIKey, cfg.Fetch.Alpaca.APISecret), nil
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Fetch.Source)
	}
}
