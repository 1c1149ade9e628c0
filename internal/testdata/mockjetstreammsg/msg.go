package mockjetstreammsg

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Msg is a fake jetstream.Msg recording how it was settled.
type Msg struct {
	MsgData    []byte
	MsgHeaders nats.Header
	Meta       jetstream.MsgMetadata

	Acked bool
	Naked bool
}

var _ jetstream.Msg = &Msg{}

func (m *Msg) Metadata() (*jetstream.MsgMetadata, error) { return &m.Meta, nil }
func (m *Msg) Data() []byte                              { return m.MsgData }
func (m *Msg) Headers() nats.Header                      { return m.MsgHeaders }
func (m *Msg) Subject() string                           { return "events.device" }
func (m *Msg) Reply() string                             { return "" }

func (m *Msg) Ack() error {
	m.Acked = true
	return nil
}

func (m *Msg) DoubleAck(context.Context) error {
	m.Acked = true
	return nil
}

func (m *Msg) Nak() error {
	m.Naked = true
	return nil
}

func (m *Msg) NakWithDelay(time.Duration) error {
	m.Naked = true
	return nil
}

func (m *Msg) InProgress() error           { return nil }
func (m *Msg) Term() error                 { return nil }
func (m *Msg) TermWithReason(string) error { return nil }
