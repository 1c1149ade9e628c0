package mockqueue

import (
	"context"

	"github.com/stretchr/testify/mock"

	"device-event-pipeline/internal/queue"
)

type Publisher struct {
	mock.Mock
}

var _ queue.Publisher = &Publisher{}

func (m *Publisher) Publish(ctx context.Context, body []byte, corrID string) error {
	args := m.Called(ctx, body, corrID)
	return args.Error(0)
}

type Consumer struct {
	mock.Mock
}

var _ queue.Consumer = &Consumer{}

func (m *Consumer) Fetch(ctx context.Context, max int) ([]queue.Message, error) {
	args := m.Called(ctx, max)
	msgs, _ := args.Get(0).([]queue.Message)
	return msgs, args.Error(1)
}

type AckHandle struct {
	mock.Mock
}

var _ queue.AckHandle = &AckHandle{}

func (m *AckHandle) Ack() error {
	return m.Called().Error(0)
}

func (m *AckHandle) Nak() error {
	return m.Called().Error(0)
}
