package queue

import "context"

// AckHandle settles one message with the queue: Ack removes it, Nak schedules
// redelivery.
type AckHandle interface {
	Ack() error
	Nak() error
}

// Message is one queued device event. The queue owns visibility and
// redelivery; consumers only read the message and settle it through Handle.
type Message struct {
	ID     string
	Body   []byte
	CorrID string
	Handle AckHandle
}

// Publisher sends individual serialized events onto the queue, one at a time.
type Publisher interface {
	Publish(ctx context.Context, body []byte, corrID string) error
}

// Consumer fetches batches of pending messages for processing.
type Consumer interface {
	Fetch(ctx context.Context, max int) ([]Message, error)
}
