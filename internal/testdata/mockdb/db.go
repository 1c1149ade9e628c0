package mockdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"device-event-pipeline/internal/repository"
)

type DB struct {
	mock.Mock
}

var _ repository.DB = &DB{}

func (m *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	callArgs := m.Called(append([]any{ctx, sql}, args...)...)
	return callArgs.Get(0).(pgconn.CommandTag), callArgs.Error(1)
}

func (m *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	callArgs := m.Called(append([]any{ctx, sql}, args...)...)
	rows, _ := callArgs.Get(0).(pgx.Rows)
	return rows, callArgs.Error(1)
}
