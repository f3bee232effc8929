// Package feed runs the fetch cycle: scan the managed table, normalize,
// and memoize the result for a fixed time-to-live.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/davin-ai/agriview/services/api/normalize"
	"github.com/davin-ai/agriview/services/api/source"
)

// entry is one memoized fetch cycle result.
type entry struct {
	readings   []normalize.Reading
	computedAt time.Time
}

// fresh reports whether the entry is still within its time-to-live.
func (e entry) fresh(now time.Time, ttl time.Duration) bool {
	return !e.computedAt.IsZero() && now.Sub(e.computedAt) < ttl
}

// Feed serves normalized readings, recomputing at most once per TTL.
type Feed struct {
	src source.Source
	ttl time.Duration
	log *slog.Logger
	now func() time.Time

	mu     sync.Mutex
	cached entry
}

// New builds a feed over the given source.
func New(src source.Source, ttl time.Duration, log *slog.Logger) *Feed {
	return &Feed{
		src: src,
		ttl: ttl,
		log: log,
		now: time.Now,
	}
}

// Readings returns the current ordered reading set, reusing the cached
// set while it is fresh.
func (f *Feed) Readings(ctx context.Context) ([]normalize.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached.fresh(f.now(), f.ttl) {
		return f.cached.readings, nil
	}
	return f.recompute(ctx)
}

// Refresh discards the cached set and recomputes immediately.
func (f *Feed) Refresh(ctx context.Context) ([]normalize.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recompute(ctx)
}

// Latest returns the newest reading of the current set.
func (f *Feed) Latest(ctx context.Context) (normalize.Reading, bool, error) {
	readings, err := f.Readings(ctx)
	if err != nil {
		return normalize.Reading{}, false, err
	}
	r, ok := normalize.Latest(readings)
	return r, ok, nil
}

// recompute scans and normalizes; the caller holds the lock. A failed
// scan leaves the previous entry in place so a stale set can still be
// served on the next call within its original TTL window.
func (f *Feed) recompute(ctx context.Context) ([]normalize.Reading, error) {
	records, err := f.src.Scan(ctx)
	if err != nil {
		return nil, err
	}

	readings := normalize.Normalize(records)
	f.cached = entry{readings: readings, computedAt: f.now()}
	f.log.Debug("fetch cycle complete",
		"records", len(records),
		"readings", len(readings),
		"dropped", len(records)-len(readings),
	)
	return readings, nil
}
