package queue

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-event-pipeline/internal/testdata/mockjetstreammsg"
)

func TestFromJetStream_ReadsHeaders(t *testing.T) {
	headers := nats.Header{}
	headers.Set(headerMsgID, "msg-123")
	headers.Set(headerCorrID, "corr-456")

	src := &mockjetstreammsg.Msg{
		MsgData:    []byte(`{"type":"laptop"}`),
		MsgHeaders: headers,
	}

	msg := fromJetStream(src)

	assert.Equal(t, "msg-123", msg.ID)
	assert.Equal(t, "corr-456", msg.CorrID)
	assert.Equal(t, []byte(`{"type":"laptop"}`), msg.Body)
}

func TestFromJetStream_FallsBackToStreamSequence(t *testing.T) {
	src := &mockjetstreammsg.Msg{
		MsgData: []byte(`{}`),
		Meta: jetstream.MsgMetadata{
			Sequence: jetstream.SequencePair{Stream: 42},
		},
	}

	msg := fromJetStream(src)

	assert.Equal(t, "42", msg.ID)
	assert.Empty(t, msg.CorrID)
}

func TestAckHandleSettlesUnderlyingMessage(t *testing.T) {
	src := &mockjetstreammsg.Msg{}

	msg := fromJetStream(src)
	require.NotNil(t, msg.Handle)

	require.NoError(t, msg.Handle.Ack())
	assert.True(t, src.Acked)

	require.NoError(t, msg.Handle.Nak())
	assert.True(t, src.Naked)
}
