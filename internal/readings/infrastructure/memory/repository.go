package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	readings "building-energy/internal/readings/domain"
)

// ReadingRepository is an in-memory repository for demo/testing.
type ReadingRepository struct {
	mu   sync.RWMutex
	data map[string]map[time.Time]readings.Reading
}

// NewReadingRepository constructs a repository.
func NewReadingRepository() *ReadingRepository {
	return &ReadingRepository{
		data: make(map[string]map[time.Time]readings.Reading),
	}
}

// Insert upserts readings keyed by (meter, timestamp).
func (r *ReadingRepository) Insert(ctx context.Context, items []readings.Reading) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if item.MeterID == "" {
			return readings.ErrEmptyMeterID
		}
		if item.Timestamp.IsZero() {
			return readings.ErrInvalidTimestamp
		}
		byTS, ok := r.data[item.MeterID]
		if !ok {
			byTS = make(map[time.Time]readings.Reading)
			r.data[item.MeterID] = byTS
		}
		item.Timestamp = item.Timestamp.UTC()
		byTS[item.Timestamp] = item
	}
	return nil
}

// ListRange returns readings for a meter in [from, to), ascending by ts.
func (r *ReadingRepository) ListRange(ctx context.Context, meterID string, from, to time.Time) ([]readings.Reading, error) {
	_ = ctx
	if meterID == "" {
		return nil, readings.ErrEmptyMeterID
	}
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return nil, readings.ErrInvalidRange
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []readings.Reading
	for ts, item := range r.data[meterID] {
		if ts.Before(from) || !ts.Before(to) {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}
