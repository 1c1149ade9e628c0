package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"device-event-pipeline/internal/model"
	"device-event-pipeline/internal/queue"
	"device-event-pipeline/internal/repository"
)

var (
	ErrEmptyMessage = errors.New("payload body is empty")
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrNotObject    = errors.New("payload must be a JSON object")
	ErrMissingField = errors.New("missing required field")
)

const fetchRetryDelay = time.Second

// AggregationWorker consumes device events from the queue and applies atomic
// increments to the aggregate store.
type AggregationWorker struct {
	repo      repository.AggregateRepository
	consumer  queue.Consumer
	batchSize int
	log       zerolog.Logger
}

// NewAggregationWorker constructs an AggregationWorker.
func NewAggregationWorker(repo repository.AggregateRepository, consumer queue.Consumer, batchSize int, log zerolog.Logger) *AggregationWorker {
	return &AggregationWorker{
		repo:      repo,
		consumer:  consumer,
		batchSize: batchSize,
		log:       log.With().Str("component", "aggregation-worker").Logger(),
	}
}

// Run fetches and processes batches until the context is cancelled. Messages
// outside the failure report are acknowledged, failed ones are nak'd for
// selective redelivery.
func (w *AggregationWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker stopping")
			return
		default:
		}

		msgs, err := w.consumer.Fetch(ctx, w.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Info().Msg("worker stopping")
				return
			}
			w.log.Error().Err(err).Msg("fetch failed")
			if len(msgs) == 0 {
				time.Sleep(fetchRetryDelay)
				continue
			}
		}

		if len(msgs) == 0 {
			continue
		}

		report := w.ProcessBatch(ctx, msgs)
		w.settle(msgs, report)
	}
}

// ProcessBatch handles each message independently and reports the ids that
// need redelivery. A failing message never aborts the rest of the batch.
//
// The increment is not idempotent: a redelivered message counts again. That
// is the documented cost of at-least-once delivery, not something this worker
// tries to mask.
func (w *AggregationWorker) ProcessBatch(ctx context.Context, msgs []queue.Message) model.BatchFailureReport {
	w.log.Debug().Int("batch_size", len(msgs)).Msg("processing batch")

	var report model.BatchFailureReport

	for _, msg := range msgs {
		payload, err := parsePayload(msg.Body)
		if err == nil {
			err = w.repo.Increment(ctx, payload)
		}

		if err != nil {
			w.log.Error().Err(err).Str("msg_id", msg.ID).Str("corr_id", msg.CorrID).Msg("message failed")
			report.Fail(msg.ID)
			continue
		}

		w.log.Debug().
			Str("msg_id", msg.ID).
			Str("corr_id", msg.CorrID).
			Str("date", payload.Date()).
			Str("type_state", payload.TypeState()).
			Msg("aggregate updated")
	}

	w.log.Info().Int("batch_size", len(msgs)).Int("failures", len(report.FailedIDs)).Msg("batch done")

	return report
}

func (w *AggregationWorker) settle(msgs []queue.Message, report model.BatchFailureReport) {
	for _, msg := range msgs {
		if msg.Handle == nil {
			continue
		}

		var err error
		if report.Failed(msg.ID) {
			err = msg.Handle.Nak()
		} else {
			err = msg.Handle.Ack()
		}

		if err != nil {
			w.log.Error().Err(err).Str("msg_id", msg.ID).Msg("settle failed")
		}
	}
}

// parsePayload validates a message body into an EventPayload. It returns a
// complete payload or a specific error, never a partially filled value.
func parsePayload(body []byte) (model.EventPayload, error) {
	if len(body) == 0 {
		return model.EventPayload{}, ErrEmptyMessage
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.EventPayload{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return model.EventPayload{}, ErrNotObject
	}

	var payload model.EventPayload

	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"type", &payload.Type},
		{"state", &payload.State},
		{"timestamp", &payload.Timestamp},
	} {
		val, present := obj[field.name]
		if !present {
			return model.EventPayload{}, fmt.Errorf("%w: %s", ErrMissingField, field.name)
		}
		*field.dst = stringify(val)
	}

	return payload, nil
}

// stringify renders a decoded JSON value as a string. Strings pass through
// unchanged, everything else keeps its JSON rendering.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
