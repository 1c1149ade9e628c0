package mockrepository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"device-event-pipeline/internal/model"
	"device-event-pipeline/internal/repository"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.AggregateRepository = &Repository{}

func (m *Repository) Increment(ctx context.Context, payload model.EventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *Repository) FetchByDate(ctx context.Context, date string) ([]model.StoredAggregate, error) {
	args := m.Called(ctx, date)
	records, _ := args.Get(0).([]model.StoredAggregate)
	return records, args.Error(1)
}
