package perf

import (
	"log/slog"
	"time"
)

// Timer logs how long a CLI operation took. Operations slower than the
// threshold are reported at warn level so they surface without AISSIST_DEBUG.
type Timer struct {
	name      string
	logger    *slog.Logger
	start     time.Time
	threshold time.Duration
}

func NewTimer(name string, logger *slog.Logger, threshold time.Duration) *Timer {
	return &Timer{
		name:      name,
		logger:    logger,
		start:     time.Now(),
		threshold: threshold,
	}
}

// Stop logs the elapsed time and returns it
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger == nil {
		return elapsed
	}

	t.logger.Debug(t.name, "duration_ms", elapsed.Milliseconds())
	if elapsed > t.threshold {
		t.logger.Warn(t.name+"_slow",
			"duration_ms", elapsed.Milliseconds(),
			"threshold_ms", t.threshold.Milliseconds())
	}
	return elapsed
}

// Measure starts a timer and returns a func that stops it, for use with defer
func Measure(name string, logger *slog.Logger, threshold time.Duration) func() {
	t := NewTimer(name, logger, threshold)
	return func() { t.Stop() }
}
