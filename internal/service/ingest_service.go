package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"device-event-pipeline/internal/archive"
	"device-event-pipeline/internal/model"
	"device-event-pipeline/internal/queue"
)

// ValidationError represents client input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const ingestRoot = "processed_devices"

// IngestService accepts raw batch bodies, archives them verbatim and fans the
// valid items out onto the queue.
type IngestService interface {
	Ingest(ctx context.Context, rawBody []byte, corrID string) (model.IngestResult, error)
}

type ingestService struct {
	archive   archive.RawArchive
	publisher queue.Publisher
	now       func() time.Time
	log       zerolog.Logger
}

// NewIngestService constructs an ingestService.
func NewIngestService(arch archive.RawArchive, publisher queue.Publisher, log zerolog.Logger) IngestService {
	return &ingestService{
		archive:   arch,
		publisher: publisher,
		now:       time.Now,
		log:       log.With().Str("component", "ingest").Logger(),
	}
}

// Ingest validates the batch shape, archives the body byte-for-byte, then
// sends each valid item to the queue one at a time. The archive write is
// authoritative history and is never rolled back, even when a later queue
// send fails. Items missing a required field are skipped, never an error.
func (s *ingestService) Ingest(ctx context.Context, rawBody []byte, corrID string) (model.IngestResult, error) {
	if len(rawBody) == 0 {
		return model.IngestResult{}, &ValidationError{Message: "Missing request body"}
	}

	var parsed any
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return model.IngestResult{}, &ValidationError{Message: "Body must be valid JSON"}
	}

	items, err := extractItems(parsed)
	if err != nil {
		return model.IngestResult{}, err
	}

	key := archive.NewKey(s.now())
	if err := s.archive.Store(ctx, key, rawBody); err != nil {
		return model.IngestResult{}, fmt.Errorf("archive raw body: %w", err)
	}

	s.log.Info().Str("raw_key", key).Int("items", len(items)).Str("corr_id", corrID).Msg("raw batch archived")

	enqueued := 0

	for _, item := range items {
		event, ok := validItem(item)
		if !ok {
			s.log.Warn().Str("corr_id", corrID).Msg("skipping item with missing fields")
			continue
		}

		body, err := json.Marshal(event)
		if err != nil {
			return model.IngestResult{}, fmt.Errorf("serialize event: %w", err)
		}

		// One send per item: a transient queue failure here leaves earlier
		// items enqueued and later ones not.
		if err := s.publisher.Publish(ctx, body, corrID); err != nil {
			return model.IngestResult{}, fmt.Errorf("enqueue event: %w", err)
		}
		enqueued++
	}

	s.log.Info().Int("enqueued", enqueued).Str("corr_id", corrID).Msg("batch accepted")

	return model.IngestResult{Status: "accepted", RawKey: key, Enqueued: enqueued}, nil
}

func extractItems(parsed any) ([]any, error) {
	missingRoot := &ValidationError{Message: "Body must include root attribute '" + ingestRoot + "'"}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, missingRoot
	}

	items, ok := obj[ingestRoot].([]any)
	if !ok {
		return nil, missingRoot
	}

	return items, nil
}

// validItem requires the three fields to be present; values get no further
// type checking beyond stringification.
func validItem(item any) (model.DeviceEventInput, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return model.DeviceEventInput{}, false
	}

	for _, field := range [...]string{"type", "state", "timestamp"} {
		if _, present := obj[field]; !present {
			return model.DeviceEventInput{}, false
		}
	}

	return model.DeviceEventInput{
		Type:      stringify(obj["type"]),
		State:     stringify(obj["state"]),
		Timestamp: stringify(obj["timestamp"]),
	}, true
}
