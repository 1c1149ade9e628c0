package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"device-event-pipeline/internal/model"
	"device-event-pipeline/internal/repository"
)

const dateLayout = "2006-01-02"

// QueryService reads and normalizes one day's aggregate partition.
type QueryService interface {
	AggregatesForDate(ctx context.Context, date string) ([]model.AggregateRecord, error)
}

type queryService struct {
	repo repository.AggregateRepository
	log  zerolog.Logger
}

// NewQueryService constructs a queryService.
func NewQueryService(repo repository.AggregateRepository, log zerolog.Logger) QueryService {
	return &queryService{
		repo: repo,
		log:  log.With().Str("component", "query").Logger(),
	}
}

// AggregatesForDate validates the date, reads its partition and normalizes
// each record. Records keep store order; callers must not assume any other
// ordering.
func (s *queryService) AggregatesForDate(ctx context.Context, date string) ([]model.AggregateRecord, error) {
	if date == "" {
		return nil, &ValidationError{Message: "Missing required query param: date=YYYY-MM-DD"}
	}

	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, &ValidationError{Message: "Invalid date format; expected YYYY-MM-DD"}
	}

	stored, err := s.repo.FetchByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch aggregates: %w", err)
	}

	records := make([]model.AggregateRecord, 0, len(stored))
	for _, rec := range stored {
		records = append(records, rec.Normalize())
	}

	s.log.Debug().Str("date", date).Int("records", len(records)).Msg("partition queried")

	return records, nil
}
