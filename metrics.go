package skipfield

import (
	"sync/atomic"
	"time"
)

// Op names an operation for logging and metrics.
type Op uint8

const (
	OpSkip Op = iota
	OpUnskip
	OpIsSkipped
	OpCountSkipped
	OpCountActive
	OpFirstActive
	OpActiveIndices
)

// String returns the string representation of an Op.
func (op Op) String() string {
	switch op {
	case OpSkip:
		return "skip"
	case OpUnskip:
		return "unskip"
	case OpIsSkipped:
		return "is_skipped"
	case OpCountSkipped:
		return "count_skipped"
	case OpCountActive:
		return "count_active"
	case OpFirstActive:
		return "first_active"
	case OpActiveIndices:
		return "active_indices"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSkip is called after each Skip. changed is false when the slot
	// was already skipped.
	RecordSkip(changed bool)

	// RecordUnskip is called after each Unskip. changed is false when the
	// slot was already active.
	RecordUnskip(changed bool)

	// RecordScan is called after CountSkipped, CountActive, FirstActive, and
	// after an ActiveIndices sequence ends.
	RecordScan(op Op, duration time.Duration)

	// RecordViolation is called when an operation panics with a contract
	// violation, before the panic propagates.
	RecordViolation(op Op)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

// RecordSkip implements MetricsCollector.
func (NoopMetricsCollector) RecordSkip(bool) {}

// RecordUnskip implements MetricsCollector.
func (NoopMetricsCollector) RecordUnskip(bool) {}

// RecordScan implements MetricsCollector.
func (NoopMetricsCollector) RecordScan(Op, time.Duration) {}

// RecordViolation implements MetricsCollector.
func (NoopMetricsCollector) RecordViolation(Op) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SkipCount      atomic.Int64
	SkipChanged    atomic.Int64
	UnskipCount    atomic.Int64
	UnskipChanged  atomic.Int64
	ScanCount      atomic.Int64
	ScanTotalNanos atomic.Int64
	ViolationCount atomic.Int64
}

// RecordSkip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSkip(changed bool) {
	b.SkipCount.Add(1)
	if changed {
		b.SkipChanged.Add(1)
	}
}

// RecordUnskip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnskip(changed bool) {
	b.UnskipCount.Add(1)
	if changed {
		b.UnskipChanged.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(_ Op, duration time.Duration) {
	b.ScanCount.Add(1)
	b.ScanTotalNanos.Add(duration.Nanoseconds())
}

// RecordViolation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordViolation(Op) {
	b.ViolationCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SkipCount:      b.SkipCount.Load(),
		SkipChanged:    b.SkipChanged.Load(),
		UnskipCount:    b.UnskipCount.Load(),
		UnskipChanged:  b.UnskipChanged.Load(),
		ScanCount:      b.ScanCount.Load(),
		ScanAvgNanos:   b.getAvgScanNanos(),
		ViolationCount: b.ViolationCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgScanNanos() int64 {
	count := b.ScanCount.Load()
	if count == 0 {
		return 0
	}
	return b.ScanTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SkipCount      int64
	SkipChanged    int64
	UnskipCount    int64
	UnskipChanged  int64
	ScanCount      int64
	ScanAvgNanos   int64
	ViolationCount int64
}
