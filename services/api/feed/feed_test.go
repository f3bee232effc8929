package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/davin-ai/agriview/services/api/normalize"
)

type fakeSource struct {
	records []normalize.RawRecord
	err     error
	calls   int
}

func (f *fakeSource) Scan(ctx context.Context) ([]normalize.RawRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSource) Close() {}

func testRecords() []normalize.RawRecord {
	return []normalize.RawRecord{
		{
			"timestamp":       "2024-01-02T00:00:00Z",
			"temperature":     "21.0",
			"humidity":        "55",
			"soil_moisture":   "400",
			"soil_nitrogen":   "30",
			"soil_phosphorus": "11",
			"soil_potassium":  "170",
		},
		{
			"timestamp":       "2024-01-01T00:00:00Z",
			"temperature":     "20.0",
			"humidity":        "50",
			"soil_moisture":   "390",
			"soil_nitrogen":   "29",
			"soil_phosphorus": "10",
			"soil_potassium":  "165",
		},
	}
}

func newTestFeed(src *fakeSource, ttl time.Duration) (*Feed, *time.Time) {
	f := New(src, ttl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }
	return f, &now
}

func TestReadingsMemoizedWithinTTL(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	f, now := newTestFeed(src, time.Minute)
	ctx := context.Background()

	first, err := f.Readings(ctx)
	if err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(first))
	}

	*now = now.Add(30 * time.Second)
	if _, err := f.Readings(ctx); err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("expected 1 scan within TTL, got %d", src.calls)
	}

	*now = now.Add(31 * time.Second)
	if _, err := f.Readings(ctx); err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("expected recompute after TTL, got %d scans", src.calls)
	}
}

func TestReadingsOrdered(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	f, _ := newTestFeed(src, time.Minute)

	readings, err := f.Readings(context.Background())
	if err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if !readings[0].Timestamp.Before(readings[1].Timestamp) {
		t.Error("readings not ordered ascending by timestamp")
	}
}

func TestRefreshForcesRecompute(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	f, _ := newTestFeed(src, time.Hour)
	ctx := context.Background()

	if _, err := f.Readings(ctx); err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if _, err := f.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("expected refresh to rescan, got %d scans", src.calls)
	}
}

func TestLatest(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	f, _ := newTestFeed(src, time.Minute)

	latest, ok, err := f.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !ok {
		t.Fatal("expected a latest reading")
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !latest.Timestamp.Equal(want) {
		t.Errorf("latest timestamp: got %s, want %s", latest.Timestamp, want)
	}
}

func TestLatestEmptySet(t *testing.T) {
	src := &fakeSource{}
	f, _ := newTestFeed(src, time.Minute)

	_, ok, err := f.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if ok {
		t.Error("expected no latest reading for empty set")
	}
}

func TestScanErrorSurfacesAndKeepsNothing(t *testing.T) {
	src := &fakeSource{err: errors.New("table unavailable")}
	f, _ := newTestFeed(src, time.Minute)

	if _, err := f.Readings(context.Background()); err == nil {
		t.Fatal("expected scan error to surface")
	}

	// next call tries again rather than serving a cached error
	if _, err := f.Readings(context.Background()); err == nil {
		t.Fatal("expected scan error to surface again")
	}
	if src.calls != 2 {
		t.Errorf("expected 2 scan attempts, got %d", src.calls)
	}
}
