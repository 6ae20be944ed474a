package querylanguage

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// CompileStats holds condition compilation statistics. It is safe for
// concurrent use.
type CompileStats struct {
	// Compiles is the number of compiled conditions.
	Compiles atomic.Int64
	// TotalDuration is the total time spent compiling, in nanoseconds.
	TotalDuration atomic.Int64
	// SlowCompiles is the count of compilations exceeding the slow threshold.
	SlowCompiles atomic.Int64
	// Errors is the count of failed compilations.
	Errors atomic.Int64

	mu            sync.RWMutex
	slowThreshold time.Duration
	slowHook      SlowCompileHook
}

// SlowCompileHook is called when a compilation exceeds the slow threshold.
type SlowCompileHook func(condition string, duration time.Duration)

// StatsOption configures CompileStats.
type StatsOption func(*CompileStats)

// WithSlowThreshold sets the threshold for slow compilations. Default is 10ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *CompileStats) {
		s.slowThreshold = d
	}
}

// WithSlowCompileHook sets a callback for slow compilations.
func WithSlowCompileHook(hook SlowCompileHook) StatsOption {
	return func(s *CompileStats) {
		s.slowHook = hook
	}
}

// WithSlowCompileLog logs slow compilations to l at warn level.
func WithSlowCompileLog(l *slog.Logger) StatsOption {
	return WithSlowCompileHook(func(condition string, duration time.Duration) {
		l.Warn("slow condition compilation", "duration", duration, "condition", condition)
	})
}

// NewCompileStats returns empty statistics.
//
//	stats := querylanguage.NewCompileStats(querylanguage.WithSlowThreshold(time.Millisecond))
//	em := querylanguage.NewEntityManager(drv, querylanguage.WithStats(stats))
//	...
//	fmt.Println(stats.Snapshot())
func NewCompileStats(opts ...StatsOption) *CompileStats {
	s := &CompileStats{slowThreshold: 10 * time.Millisecond}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SlowThreshold returns the current slow compilation threshold.
func (s *CompileStats) SlowThreshold() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slowThreshold
}

// SetSlowThreshold updates the slow compilation threshold.
func (s *CompileStats) SetSlowThreshold(threshold time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slowThreshold = threshold
}

func (s *CompileStats) record(condition string, duration time.Duration, err error) {
	s.Compiles.Add(1)
	s.TotalDuration.Add(int64(duration))
	if err != nil {
		s.Errors.Add(1)
	}
	s.mu.RLock()
	threshold, hook := s.slowThreshold, s.slowHook
	s.mu.RUnlock()
	if duration > threshold {
		s.SlowCompiles.Add(1)
		if hook != nil {
			hook(condition, duration)
		}
	}
}

// Snapshot returns a point-in-time copy of the statistics.
func (s *CompileStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Compiles:      s.Compiles.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowCompiles:  s.SlowCompiles.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *CompileStats) Reset() {
	s.Compiles.Store(0)
	s.TotalDuration.Store(0)
	s.SlowCompiles.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of compilation statistics.
type StatsSnapshot struct {
	Compiles      int64
	TotalDuration time.Duration
	SlowCompiles  int64
	Errors        int64
}

// AvgDuration returns the average compilation duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	if s.Compiles == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Compiles)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf("compiles=%d duration=%s avg=%s slow=%d errors=%d",
		s.Compiles, s.TotalDuration, s.AvgDuration(), s.SlowCompiles, s.Errors)
}
