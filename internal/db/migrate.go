package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations ensures required tables exist. This keeps the service
// self-contained without an external migration step.
//
// type and state are nullable on purpose: rows written by earlier iterations
// of the pipeline carried only the composite type_state key, and the query
// side still normalizes them.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS device_aggregates
(
	date       text   NOT NULL,
	type_state text   NOT NULL,
	type       text,
	state      text,
	count      bigint NOT NULL DEFAULT 0,
	PRIMARY KEY (date, type_state)
);
`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
