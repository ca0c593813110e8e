package skipfield

import (
	"context"
	"errors"
	"iter"
	"time"
)

// instrumented records operations of the wrapped Skipfield through the
// configured logger and metrics collector. Contract violations are recorded
// and then re-raised unchanged.
type instrumented struct {
	sf      Skipfield
	logger  *Logger
	metrics MetricsCollector
}

func newInstrumented(sf Skipfield, kind Kind, n int, o options) *instrumented {
	logger := o.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := o.metricsCollector
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &instrumented{
		sf:      sf,
		logger:  logger.WithKind(kind).WithLen(n),
		metrics: metrics,
	}
}

func (s *instrumented) Len() int {
	return s.sf.Len()
}

func (s *instrumented) Skip(i int) {
	defer s.observeViolation(OpSkip)

	changed := !s.sf.IsSkipped(i)
	s.sf.Skip(i)
	s.metrics.RecordSkip(changed)
}

func (s *instrumented) Unskip(i int) {
	defer s.observeViolation(OpUnskip)

	changed := s.sf.IsSkipped(i)
	s.sf.Unskip(i)
	s.metrics.RecordUnskip(changed)
}

func (s *instrumented) IsSkipped(i int) bool {
	defer s.observeViolation(OpIsSkipped)

	return s.sf.IsSkipped(i)
}

func (s *instrumented) CountSkipped() int {
	start := time.Now()
	n := s.sf.CountSkipped()
	s.recordScan(OpCountSkipped, n, time.Since(start))
	return n
}

func (s *instrumented) CountActive() int {
	start := time.Now()
	n := s.sf.CountActive()
	s.recordScan(OpCountActive, n, time.Since(start))
	return n
}

func (s *instrumented) FirstActive() (int, bool) {
	start := time.Now()
	i, ok := s.sf.FirstActive()
	result := i
	if !ok {
		result = -1
	}
	s.recordScan(OpFirstActive, result, time.Since(start))
	return i, ok
}

// ActiveIndices records one scan per consumed sequence, with the number of
// indices yielded as the result.
func (s *instrumented) ActiveIndices() iter.Seq[int] {
	seq := s.sf.ActiveIndices()
	return func(yield func(int) bool) {
		start := time.Now()
		yielded := 0
		defer func() {
			s.recordScan(OpActiveIndices, yielded, time.Since(start))
		}()

		for i := range seq {
			yielded++
			if !yield(i) {
				return
			}
		}
	}
}

func (s *instrumented) recordScan(op Op, result int, d time.Duration) {
	s.metrics.RecordScan(op, d)
	s.logger.LogScan(context.Background(), op, result, d)
}

// observeViolation must be deferred directly.
func (s *instrumented) observeViolation(op Op) {
	v := recover()
	if v == nil {
		return
	}
	if err, ok := v.(error); ok && errors.Is(err, ErrIndexOutOfRange) {
		s.metrics.RecordViolation(op)
		s.logger.LogViolation(context.Background(), op, err)
	}
	panic(v)
}
