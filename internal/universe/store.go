package universe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCache is returned by Load when no universe file exists yet, so callers
// can fall through to a fresh fetch.
var ErrNoCache = errors.New("universe cache file does not exist")

// Save writes the ticker list to a newline-delimited text file, creating the
// parent directory as needed.
func Save(path string, tickers []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create universe dir: %w", err)
	}
	var b strings.Builder
	for _, t := range tickers {
		b.WriteString(t)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write universe file: %w", err)
	}
	return nil
}

// Load reads a newline-delimited ticker list. Returns ErrNoCache when the file
// is missing.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCache
		}
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	var tickers []string
	for _, line := range strings.Split(string(data), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("universe file %s is empty", path)
	}
	return tickers, nil
}

// Merge unions the given tickers with whatever the cache file already holds
// and returns the combined, cleaned list. A missing cache file is fine; the
// imported list stands alone then.
func Merge(path string, tickers []string) ([]string, error) {
	existing, err := Load(path)
	if err != nil && !errors.Is(err, ErrNoCache) {
		return nil, err
	}
	return Clean(append(tickers, existing...)), nil
}
