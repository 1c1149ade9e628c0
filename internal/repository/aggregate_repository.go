package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"device-event-pipeline/internal/model"
)

// DB is the subset of *pgxpool.Pool the repository needs, narrowed so tests
// can substitute a double.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AggregateRepository defines store operations for per-day counters.
type AggregateRepository interface {
	// Increment applies an atomic upsert-increment for the event's
	// (date, type_state) key.
	Increment(ctx context.Context, payload model.EventPayload) error

	// FetchByDate reads the whole partition for one date, in store order.
	FetchByDate(ctx context.Context, date string) ([]model.StoredAggregate, error)
}

type aggregateRepository struct {
	db DB
}

// NewAggregateRepository creates an AggregateRepository backed by PostgreSQL.
func NewAggregateRepository(db DB) AggregateRepository {
	return &aggregateRepository{db: db}
}

// The increment must stay a single server-side statement: concurrent workers
// race on the same key, and a local read-modify-write would lose updates.
const upsertIncrementQuery = `
	INSERT INTO device_aggregates (date, type_state, type, state, count)
	VALUES ($1, $2, $3, $4, 1)
	ON CONFLICT (date, type_state) DO UPDATE
	SET type = EXCLUDED.type, state = EXCLUDED.state, count = device_aggregates.count + 1
`

func (r *aggregateRepository) Increment(ctx context.Context, payload model.EventPayload) error {
	_, err := r.db.Exec(ctx, upsertIncrementQuery,
		payload.Date(),
		payload.TypeState(),
		payload.Type,
		payload.State,
	)
	if err != nil {
		return fmt.Errorf("increment aggregate: %w", err)
	}

	return nil
}

const fetchByDateQuery = `
	SELECT date, type_state, type, state, count
	FROM device_aggregates
	WHERE date = $1
`

func (r *aggregateRepository) FetchByDate(ctx context.Context, date string) ([]model.StoredAggregate, error) {
	rows, err := r.db.Query(ctx, fetchByDateQuery, date)
	if err != nil {
		return nil, fmt.Errorf("query aggregates: %w", err)
	}
	defer rows.Close()

	var records []model.StoredAggregate

	for rows.Next() {
		var rec model.StoredAggregate
		if err := rows.Scan(&rec.Date, &rec.TypeState, &rec.Type, &rec.State, &rec.Count); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read aggregates: %w", err)
	}

	return records, nil
}
