package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
)

// memoryLimit caps how many lookups the in-memory journal keeps
const memoryLimit = 500

// MemoryRepository implements domain.DataRepository without a database,
// used when PostgreSQL is unavailable
type MemoryRepository struct {
	mu      sync.RWMutex
	records []domain.LookupRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make([]domain.LookupRecord, 0, 64),
	}
}

// SaveLookup appends the record, dropping the oldest beyond memoryLimit
func (r *MemoryRepository) SaveLookup(ctx context.Context, rec domain.LookupRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	if len(r.records) > memoryLimit {
		r.records = r.records[len(r.records)-memoryLimit:]
	}
	return nil
}

// GetLookups returns records within [from, to], newest first
func (r *MemoryRepository) GetLookups(ctx context.Context, from, to time.Time) ([]domain.LookupRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.LookupRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Timestamp.Before(from) || rec.Timestamp.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > 100 {
		out = out[:100]
	}
	return out, nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
