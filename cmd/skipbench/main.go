// Command skipbench builds every skipfield encoding over the same random index
// space, times the read operations, checks that the encodings agree, and runs
// a concurrent writer/reader scenario against the atomic encoding.
//
// Usage:
//
//	skipbench -n 1000000 -ratio 0.3 -seed 42 -kinds flagarray,bitmask,runcount
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/hupe1980/skipfield"
	"github.com/hupe1980/skipfield/atomicflag"
	"github.com/hupe1980/skipfield/bitmask"
	"github.com/hupe1980/skipfield/internal/wordops"
)

type config struct {
	n          int
	ratio      float64
	seed       int64
	kinds      []skipfield.Kind
	rounds     int
	writerRate float64
	maxMem     int64
}

func main() {
	var (
		n          = flag.Int("n", 1_000_000, "number of slots")
		ratio      = flag.Float64("ratio", 0.3, "fraction of slots to skip")
		seed       = flag.Int64("seed", 42, "random seed")
		kinds      = flag.String("kinds", "flagarray,bitmask,runcount,atomicflag", "comma-separated encodings")
		rounds     = flag.Int("rounds", 5, "timed rounds per operation")
		jsonOut    = flag.Bool("json", false, "emit JSON logs")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
		writerRate = flag.Float64("writer-rate", 5_000_000, "atomic scenario writer rate in slots/s (0 = unlimited)")
		maxMem     = flag.Int64("max-mem", 1<<30, "memory budget in bytes for building encodings concurrently")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := skipfield.NewTextLogger(level)
	if *jsonOut {
		logger = skipfield.NewJSONLogger(level)
	}

	cfg := config{
		n:          *n,
		ratio:      *ratio,
		seed:       *seed,
		rounds:     max(*rounds, 1),
		writerRate: *writerRate,
		maxMem:     *maxMem,
	}
	for _, name := range strings.Split(*kinds, ",") {
		k, ok := skipfield.ParseKind(name)
		if !ok {
			logger.Error("unknown kind", "kind", name)
			os.Exit(2)
		}
		cfg.kinds = append(cfg.kinds, k)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.ErrorContext(ctx, "skipbench failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *skipfield.Logger, cfg config) error {
	feat := wordops.Detected()
	logger.InfoContext(ctx, "cpu features",
		"arch", feat.Arch,
		"popcnt", feat.POPCNT,
		"tzcnt", feat.TZCNT,
		"kernel", wordops.ActiveKernel().String(),
		"overridden", wordops.IsOverridden(),
		"gomaxprocs", runtime.GOMAXPROCS(0),
	)

	fields, err := buildAll(ctx, logger, cfg)
	if err != nil {
		return err
	}

	for i, k := range cfg.kinds {
		benchReads(ctx, logger.WithKind(k).WithLen(cfg.n), fields[i], cfg.rounds)
	}

	for i := 1; i < len(fields); i++ {
		if !skipfield.Equivalent(fields[0], fields[i]) {
			return fmt.Errorf("%s and %s disagree", cfg.kinds[0], cfg.kinds[i])
		}
	}
	logger.InfoContext(ctx, "encodings agree", "kinds", len(fields))

	if len(fields) > 0 {
		bm, err := skipfield.SkippedBitmap(fields[0])
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "roaring export",
			"cardinality", bm.GetCardinality(),
			"serialized_bytes", bm.GetSerializedSizeInBytes(),
		)
	}

	return atomicScenario(ctx, logger.WithKind(skipfield.KindAtomicFlag).WithLen(cfg.n), cfg)
}

// buildAll populates every requested encoding concurrently. Each build holds
// its footprint in the memory budget until it finishes.
func buildAll(ctx context.Context, logger *skipfield.Logger, cfg config) ([]skipfield.Skipfield, error) {
	fields := make([]skipfield.Skipfield, len(cfg.kinds))
	budget := semaphore.NewWeighted(cfg.maxMem)

	g, ctx := errgroup.WithContext(ctx)
	for i, k := range cfg.kinds {
		g.Go(func() error {
			weight := min(k.Footprint(cfg.n), cfg.maxMem)
			if err := budget.Acquire(ctx, weight); err != nil {
				return err
			}
			defer budget.Release(weight)

			start := time.Now()
			sf, err := skipfield.New(k, cfg.n)
			if err != nil {
				return err
			}
			populate(sf, k, cfg)
			fields[i] = sf

			logger.DebugContext(ctx, "built",
				"kind", k.String(),
				"footprint", weight,
				"duration", time.Since(start),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fields, nil
}

func populate(sf skipfield.Skipfield, k skipfield.Kind, cfg config) {
	if k == skipfield.KindAtomicFlag {
		for i := range cfg.n {
			sf.Unskip(i)
		}
	}
	rng := rand.New(rand.NewSource(cfg.seed))
	for i := range cfg.n {
		if rng.Float64() < cfg.ratio {
			sf.Skip(i)
		}
	}
}

func benchReads(ctx context.Context, logger *skipfield.Logger, sf skipfield.Skipfield, rounds int) {
	report := func(op skipfield.Op, result int, d time.Duration) {
		logger.InfoContext(ctx, "timing",
			"op", op.String(),
			"result", result,
			"best", d,
		)
	}

	report(skipfield.OpCountSkipped, sf.CountSkipped(), best(rounds, func() { sf.CountSkipped() }))
	report(skipfield.OpCountActive, sf.CountActive(), best(rounds, func() { sf.CountActive() }))

	first, _ := sf.FirstActive()
	report(skipfield.OpFirstActive, first, best(rounds, func() { sf.FirstActive() }))

	var active int
	d := best(rounds, func() { active = drain(sf.ActiveIndices()) })
	report(skipfield.OpActiveIndices, active, d)

	bm, ok := sf.(*bitmask.Skipfield)
	if !ok {
		return
	}
	iterD := best(rounds, func() {
		it := bm.Iter()
		for _, ok := it.Next(); ok; _, ok = it.Next() {
		}
	})
	naiveD := best(rounds, func() { drain(bm.ActiveIndicesNaive()) })
	logger.InfoContext(ctx, "bitmask strategies",
		"words", d,
		"iterator", iterD,
		"naive", naiveD,
	)
}

// atomicScenario skips every even slot from a rate-limited writer while a
// reader keeps scanning. The active set can only shrink, so each scan must
// see no more active slots than the one before it.
func atomicScenario(ctx context.Context, logger *skipfield.Logger, cfg config) error {
	const batch = 1024

	sf := atomicflag.New(cfg.n)
	for i := range cfg.n {
		sf.Unskip(i)
	}

	limit := rate.Inf
	if cfg.writerRate > 0 {
		limit = rate.Limit(cfg.writerRate)
	}
	limiter := rate.NewLimiter(limit, batch)

	var done atomic.Bool
	var scans atomic.Int64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer done.Store(true)
		for lo := 0; lo < cfg.n; lo += batch {
			hi := min(lo+batch, cfg.n)
			if err := limiter.WaitN(ctx, hi-lo); err != nil {
				return err
			}
			for i := (lo + 1) / 2 * 2; i < hi; i += 2 {
				if !sf.Skip(i) {
					return fmt.Errorf("slot %d was already skipped", i)
				}
			}
		}
		return nil
	})
	g.Go(func() error {
		prev := cfg.n
		for !done.Load() {
			if err := ctx.Err(); err != nil {
				return err
			}
			cur := drain(sf.AliveIndices())
			if cur > prev {
				return fmt.Errorf("active count grew from %d to %d", prev, cur)
			}
			prev = cur
			scans.Add(1)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	want := cfg.n / 2
	if got := sf.CountActive(); got != want {
		return fmt.Errorf("%w: %d active after scenario, want %d", errScenario, got, want)
	}
	for i := range sf.AliveIndices() {
		if i%2 == 0 {
			return fmt.Errorf("%w: slot %d still active", errScenario, i)
		}
	}

	logger.InfoContext(ctx, "atomic scenario passed",
		"active", want,
		"reader_scans", scans.Load(),
		"duration", time.Since(start),
	)
	return nil
}

var errScenario = errors.New("atomic scenario failed")

func drain(seq iter.Seq[int]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

func best(rounds int, fn func()) time.Duration {
	var b time.Duration
	for r := range rounds {
		start := time.Now()
		fn()
		if d := time.Since(start); r == 0 || d < b {
			b = d
		}
	}
	return b
}
