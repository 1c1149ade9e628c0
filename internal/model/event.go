package model

import "strings"

// IngestRequest is the expected shape of an ingest call body.
type IngestRequest struct {
	ProcessedDevices []DeviceEventInput `json:"processed_devices"`
}

// DeviceEventInput is a single device-lifecycle event as supplied by the client.
type DeviceEventInput struct {
	Type      string `json:"type"`
	State     string `json:"state"`
	Timestamp string `json:"timestamp"`
}

// IngestResult is returned to clients for accepted batches.
type IngestResult struct {
	Status   string `json:"status"`
	RawKey   string `json:"raw_key"`
	Enqueued int    `json:"enqueued"`
}

// EventPayload is a validated event as consumed by the aggregation worker.
// Parsing produces either a complete payload or an error, never a partial one.
type EventPayload struct {
	Type      string
	State     string
	Timestamp string
}

// Date derives the calendar day key from the event timestamp. The first ten
// characters of an ISO-8601 timestamp are its YYYY-MM-DD prefix; no timezone
// normalization is applied beyond what the input already encodes.
func (p EventPayload) Date() string {
	if len(p.Timestamp) <= 10 {
		return p.Timestamp
	}
	return p.Timestamp[:10]
}

// TypeState derives the composite sort key "<type>#<state>".
func (p EventPayload) TypeState() string {
	return p.Type + "#" + p.State
}

// SplitTypeState splits a composite key on the first '#'. The second return
// reports whether a separator was present at all.
func SplitTypeState(key string) (typ, state string, ok bool) {
	typ, state, ok = strings.Cut(key, "#")
	return typ, state, ok
}
