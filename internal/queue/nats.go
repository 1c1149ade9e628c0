package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	headerMsgID  = "Msg-Id"
	headerCorrID = "Corr-Id"
)

// EnsureStream creates the event stream if it does not exist yet.
func EnsureStream(ctx context.Context, js jetstream.JetStream, name, subject string) error {
	if _, err := js.Stream(ctx, name); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: []string{subject},
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", name, err)
	}

	return nil
}

type natsPublisher struct {
	js      jetstream.JetStream
	subject string
}

// NewPublisher creates a Publisher writing to a JetStream subject.
func NewPublisher(js jetstream.JetStream, subject string) Publisher {
	return &natsPublisher{js: js, subject: subject}
}

func (p *natsPublisher) Publish(ctx context.Context, body []byte, corrID string) error {
	msg := &nats.Msg{
		Subject: p.subject,
		Data:    body,
		Header:  nats.Header{},
	}
	msg.Header.Set(headerMsgID, uuid.New().String())
	msg.Header.Set(headerCorrID, corrID)

	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

type natsConsumer struct {
	consumer jetstream.Consumer
	maxWait  time.Duration
}

// NewConsumer creates or resumes a durable pull consumer on the event stream.
// Explicit acks let the worker settle each message of a batch independently.
func NewConsumer(ctx context.Context, js jetstream.JetStream, streamName, consumerName, subject string, maxWait time.Duration) (Consumer, error) {
	consumer, err := js.Consumer(ctx, streamName, consumerName)
	if err != nil {
		cfg := jetstream.ConsumerConfig{
			Durable:       consumerName,
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxAckPending: 1000,
		}
		if subject != "" {
			cfg.FilterSubject = subject
		}

		consumer, err = js.CreateConsumer(ctx, streamName, cfg)
		if err != nil {
			return nil, fmt.Errorf("create consumer %s: %w", consumerName, err)
		}
	}

	return &natsConsumer{consumer: consumer, maxWait: maxWait}, nil
}

func (c *natsConsumer) Fetch(ctx context.Context, max int) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch, err := c.consumer.Fetch(max, jetstream.FetchMaxWait(c.maxWait))
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	var msgs []Message
	for m := range batch.Messages() {
		msgs = append(msgs, fromJetStream(m))
	}

	if err := batch.Error(); err != nil {
		return msgs, fmt.Errorf("fetch messages: %w", err)
	}

	return msgs, nil
}

func fromJetStream(m jetstream.Msg) Message {
	id := m.Headers().Get(headerMsgID)
	if id == "" {
		// Messages published outside this pipeline still need a stable id.
		if meta, err := m.Metadata(); err == nil {
			id = strconv.FormatUint(meta.Sequence.Stream, 10)
		}
	}

	return Message{
		ID:     id,
		Body:   m.Data(),
		CorrID: m.Headers().Get(headerCorrID),
		Handle: jsAckHandle{msg: m},
	}
}

type jsAckHandle struct {
	msg jetstream.Msg
}

func (h jsAckHandle) Ack() error { return h.msg.Ack() }
func (h jsAckHandle) Nak() error { return h.msg.Nak() }
