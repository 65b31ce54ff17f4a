package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LookupRecord is one journal entry describing how a lookup resolved.
// Detail is diagnostic text for operators and is never shown to users.
type LookupRecord struct {
	ID          uuid.UUID     `json:"id"`
	City        string        `json:"city"`
	Outcome     ErrorKind     `json:"outcome"`
	Detail      string        `json:"detail,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
	Timestamp   time.Time     `json:"timestamp"`
}

// OutcomeLoaded marks a successful lookup in the journal
const OutcomeLoaded ErrorKind = "loaded"

// NewLookupRecord builds the journal entry for a finished lookup
func NewLookupRecord(city string, snapshot WeatherSnapshot, err error, took time.Duration) LookupRecord {
	rec := LookupRecord{
		ID:        uuid.New(),
		City:      city,
		Outcome:   OutcomeLoaded,
		Duration:  took,
		Timestamp: time.Now(),
	}
	if err != nil {
		rec.Outcome = KindOf(err)
		rec.Detail = err.Error()
		return rec
	}
	temp := snapshot.Temperature
	rec.Temperature = &temp
	return rec
}

// DataRepository defines the interface for the lookup journal
// This follows the Dependency Inversion Principle - domain defines the interface
type DataRepository interface {
	// SaveLookup persists a lookup outcome
	SaveLookup(ctx context.Context, rec LookupRecord) error

	// GetLookups retrieves journal entries, newest first
	GetLookups(ctx context.Context, from, to time.Time) ([]LookupRecord, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
