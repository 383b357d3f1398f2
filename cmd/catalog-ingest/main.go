// Command catalog-ingest bulk-imports products from gzipped catalog dump
// files. Supplier dumps are noisy and overlap heavily, so a record is only
// trusted when its product ID appears in at least two dump files.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ebarkhatov/shopkeep/internal/domain/product"
	"github.com/ebarkhatov/shopkeep/internal/storage/postgres"
)

const (
	bloomCapacity = 50_000_000
	bloomFPR      = 0.001
	progressEvery = 1_000_000
)

// dumpRecord is one line of a catalog dump file.
type dumpRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
}

func (r dumpRecord) valid() bool {
	return r.ID != "" && r.Name != "" && r.CategoryID != "" && !r.Price.IsNegative()
}

// fileResult holds confirmed records found in a single file during pass 2.
type fileResult struct {
	records map[string]dumpRecord
	seen    map[string]uint
}

func main() {
	var (
		dataDir     string
		numFiles    int
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing catalogN.gz files")
	flag.IntVar(&numFiles, "num-files", 3, "number of catalog dump files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, numFiles, databaseURL); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataDir string, numFiles int, databaseURL string) error {
	files := make([]string, numFiles)
	for i := range numFiles {
		files[i] = filepath.Join(dataDir, fmt.Sprintf("catalog%d.gz", i+1))
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check file %s", f)
		}
	}

	// Pass 1: build one bloom filter of product IDs per file, concurrently.
	slog.Info("pass 1: building bloom filters", slog.Int("files", numFiles))

	filters, err := buildBloomFilters(ctx, files)
	if err != nil {
		return errors.Wrap(err, "build bloom filters")
	}

	// Pass 2: collect records whose ID appears in 2+ files.
	slog.Info("pass 2: collecting confirmed records")

	confirmed, err := collectConfirmed(ctx, files, filters)
	if err != nil {
		return errors.Wrap(err, "collect confirmed records")
	}

	slog.Info("confirmed records", slog.Int("count", len(confirmed)))

	if len(confirmed) == 0 {
		slog.Info("no records to import")
		return nil
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := writeProducts(ctx, postgres.NewProductRepository(pool), confirmed); err != nil {
		return errors.Wrap(err, "write products to database")
	}

	return nil
}

// buildBloomFilters creates one bloom filter per file, concurrently.
func buildBloomFilters(ctx context.Context, files []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(buildFilterForFile(ctx, i, f, filters))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return filters, nil
}

func buildFilterForFile(ctx context.Context, idx int, path string, filters []*bloom.BloomFilter) func() error {
	return func() error {
		filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
		var count uint64

		if err := streamGzFile(ctx, path, func(rec dumpRecord) {
			filter.AddString(rec.ID)
			count++
			if count%progressEvery == 0 {
				slog.Info("pass 1 progress",
					slog.Int("file", idx+1),
					slog.Uint64("records", count),
				)
			}
		}); err != nil {
			return errors.Wrapf(err, "build filter for file %d", idx+1)
		}

		slog.Info("pass 1 complete",
			slog.Int("file", idx+1),
			slog.Uint64("total_records", count),
		)

		filters[idx] = filter
		return nil
	}
}

// collectConfirmed re-streams each file and checks IDs against OTHER files'
// bloom filters. A record is confirmed when its ID appears in 2 or more
// files; the copy from the lowest-numbered file wins.
func collectConfirmed(ctx context.Context, files []string, filters []*bloom.BloomFilter) ([]dumpRecord, error) {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(collectCandidatesInFile(ctx, i, f, filters, results))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge per-file bitmasks and keep records seen in 2+ files.
	merged := make(map[string]uint)
	for _, r := range results {
		for id, mask := range r.seen {
			merged[id] |= mask
		}
	}

	var confirmed []dumpRecord
	for id, mask := range merged {
		if bits.OnesCount(mask) < 2 {
			continue
		}
		for _, r := range results {
			if rec, ok := r.records[id]; ok {
				confirmed = append(confirmed, rec)
				break
			}
		}
	}

	return confirmed, nil
}

func collectCandidatesInFile(
	ctx context.Context,
	idx int,
	path string,
	filters []*bloom.BloomFilter,
	results []fileResult,
) func() error {
	return func() error {
		records := make(map[string]dumpRecord)
		seen := make(map[string]uint)
		fileBit := uint(1) << uint(idx)
		var count uint64

		if err := streamGzFile(ctx, path, func(rec dumpRecord) {
			count++
			if count%progressEvery == 0 {
				slog.Info("pass 2 progress",
					slog.Int("file", idx+1),
					slog.Uint64("records", count),
				)
			}

			// Only keep records that another file's filter also claims.
			for j, f := range filters {
				if j == idx {
					continue
				}
				if f.TestString(rec.ID) {
					seen[rec.ID] |= fileBit
					if _, ok := records[rec.ID]; !ok {
						records[rec.ID] = rec
					}
					break
				}
			}
		}); err != nil {
			return errors.Wrapf(err, "scan file %d for candidates", idx+1)
		}

		slog.Info("pass 2 complete",
			slog.Int("file", idx+1),
			slog.Uint64("total_records", count),
			slog.Int("candidates", len(records)),
		)

		results[idx] = fileResult{records: records, seen: seen}
		return nil
	}
}

// streamGzFile opens a gzip-compressed file and calls fn for each parseable
// record. Malformed or incomplete lines are skipped.
func streamGzFile(ctx context.Context, path string, fn func(rec dumpRecord)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var rec dumpRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if rec.valid() {
			fn(rec)
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}

// writeProducts upserts all confirmed records into the catalog.
func writeProducts(ctx context.Context, repo *postgres.ProductRepository, records []dumpRecord) error {
	slog.Info("writing products to database", slog.Int("count", len(records)))

	for i, rec := range records {
		err := repo.Upsert(ctx, &product.Product{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Price:       rec.Price,
			CategoryID:  rec.CategoryID,
		})
		if err != nil {
			return errors.Wrapf(err, "upsert product %s", rec.ID)
		}

		if (i+1)%100 == 0 || i+1 == len(records) {
			slog.Info("write progress", slog.Int("written", i+1), slog.Int("total", len(records)))
		}
	}

	return nil
}
