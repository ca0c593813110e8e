package skipfield

import (
	"log/slog"
)

// ScanStrategy selects how the bitmask encoding produces ActiveIndices.
type ScanStrategy uint8

const (
	// ScanWords walks the word complements with trailing-zero counts.
	ScanWords ScanStrategy = iota
	// ScanNaive tests each slot individually. Only useful as a baseline.
	ScanNaive
)

// String returns the string representation of a ScanStrategy.
func (s ScanStrategy) String() string {
	switch s {
	case ScanWords:
		return "words"
	case ScanNaive:
		return "naive"
	default:
		return "unknown"
	}
}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	scanStrategy     ScanStrategy
}

// Option configures New.
type Option func(*options)

// WithLogger configures structured logging of contract violations and scans.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := skipfield.NewJSONLogger(slog.LevelDebug)
//	sf, _ := skipfield.New(skipfield.KindBitmask, n, skipfield.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &skipfield.BasicMetricsCollector{}
//	sf, _ := skipfield.New(skipfield.KindRunCount, n, skipfield.WithMetricsCollector(metrics))
//	// ... use sf ...
//	stats := metrics.GetStats()
//	fmt.Printf("Skips: %d, scans: %d\n", stats.SkipCount, stats.ScanCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithScanStrategy selects the bitmask ActiveIndices strategy. Other kinds
// ignore it.
func WithScanStrategy(s ScanStrategy) Option {
	return func(o *options) {
		o.scanStrategy = s
	}
}

func (o options) instrumented() bool {
	return o.logger != nil || o.metricsCollector != nil
}

func applyOptions(optFns []Option) options {
	o := options{
		scanStrategy: ScanWords,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
