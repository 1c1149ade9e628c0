package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"device-event-pipeline/internal/model"
	"device-event-pipeline/internal/service"
)

type Ingest struct {
	mock.Mock
}

var _ service.IngestService = &Ingest{}

func (m *Ingest) Ingest(ctx context.Context, rawBody []byte, corrID string) (model.IngestResult, error) {
	args := m.Called(ctx, rawBody, corrID)
	return args.Get(0).(model.IngestResult), args.Error(1)
}

type Query struct {
	mock.Mock
}

var _ service.QueryService = &Query{}

func (m *Query) AggregatesForDate(ctx context.Context, date string) ([]model.AggregateRecord, error) {
	args := m.Called(ctx, date)
	records, _ := args.Get(0).([]model.AggregateRecord)
	return records, args.Error(1)
}
