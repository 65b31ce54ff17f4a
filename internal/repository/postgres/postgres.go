package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/weatherwidget/backend/internal/domain"
)

// PostgresRepository implements domain.DataRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const schema = `
	CREATE TABLE IF NOT EXISTS lookup_log (
		id          UUID PRIMARY KEY,
		city        TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		detail      TEXT NOT NULL DEFAULT '',
		temperature DOUBLE PRECISION,
		duration_ms BIGINT NOT NULL,
		timestamp   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS lookup_log_timestamp_idx ON lookup_log (timestamp DESC);
`

// Migrate creates the journal table if it does not exist yet
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to migrate schema: %w", err)
	}
	return nil
}

// SaveLookup persists a lookup outcome to PostgreSQL
func (r *PostgresRepository) SaveLookup(ctx context.Context, rec domain.LookupRecord) error {
	query := `
		INSERT INTO lookup_log (
			id, city, outcome, detail, temperature, duration_ms, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.City, string(rec.Outcome), rec.Detail, rec.Temperature,
		rec.Duration.Milliseconds(), rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save lookup: %w", err)
	}

	return nil
}

// GetLookups retrieves journal entries from PostgreSQL
func (r *PostgresRepository) GetLookups(ctx context.Context, from, to time.Time) ([]domain.LookupRecord, error) {
	query := `
		SELECT id, city, outcome, detail, temperature, duration_ms, timestamp
		FROM lookup_log
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query lookups: %w", err)
	}
	defer rows.Close()

	var results []domain.LookupRecord
	for rows.Next() {
		var (
			rec        domain.LookupRecord
			outcome    string
			durationMs int64
		)
		err := rows.Scan(
			&rec.ID, &rec.City, &outcome, &rec.Detail, &rec.Temperature,
			&durationMs, &rec.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan lookup row: %w", err)
		}
		rec.Outcome = domain.ErrorKind(outcome)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read lookup rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (r *PostgresRepository) Close() {
	r.pool.Close()
}
