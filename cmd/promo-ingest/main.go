// Command promo-ingest builds the bloom filter sidecar of extended promo
// codes consumed by the storefront server (--promo-filter). Input is one
// or more gzipped text files with one code per line.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCapacity = 1_000_000
	defaultFPR      = 0.001
	minCodeLen      = 4
	maxCodeLen      = 10
)

func main() {
	var (
		dataDir  string
		outPath  string
		capacity uint
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing promocodes*.gz files")
	flag.StringVar(&outPath, "out", "data/promocodes.bloom", "output path for the bloom filter sidecar")
	flag.UintVar(&capacity, "capacity", defaultCapacity, "expected number of codes")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, outPath, capacity); err != nil {
		slog.Error("promo ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("promo ingest completed successfully")
}

func run(ctx context.Context, dataDir, outPath string, capacity uint) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "promocodes*.gz"))
	if err != nil {
		return errors.Wrap(err, "glob data dir")
	}
	if len(files) == 0 {
		return errors.Errorf("no promocodes*.gz files in %s", dataDir)
	}

	filter := bloom.NewWithEstimates(capacity, defaultFPR)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			added, err := ingestFile(ctx, file, filter, &mu)
			if err != nil {
				return errors.Wrapf(err, "ingest %s", file)
			}
			slog.Info("ingested file", slog.String("file", file), slog.Int("codes", added))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return writeFilter(outPath, filter)
}

// ingestFile streams one gzipped code list into the filter. Codes are
// upper-cased; malformed lines are skipped.
func ingestFile(ctx context.Context, path string, filter *bloom.BloomFilter, mu *sync.Mutex) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "open")
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return 0, errors.Wrap(err, "gzip reader")
	}
	defer gz.Close()

	added := 0
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		code, ok := normalizeCode(scanner.Bytes())
		if !ok {
			continue
		}
		mu.Lock()
		filter.AddString(code)
		mu.Unlock()
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, errors.Wrap(err, "scan")
	}
	return added, nil
}

// normalizeCode upper-cases an alphanumeric code of acceptable length.
func normalizeCode(line []byte) (string, bool) {
	if len(line) < minCodeLen || len(line) > maxCodeLen {
		return "", false
	}
	out := make([]byte, len(line))
	for i, c := range line {
		switch {
		case c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out[i] = c
		default:
			return "", false
		}
	}
	return string(out), true
}

func writeFilter(path string, filter *bloom.BloomFilter) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if _, err := filter.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrap(err, "write filter")
	}
	return errors.Wrap(f.Close(), "close output")
}
