package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RawArchive stores verbatim request bodies as write-once objects. Objects are
// never updated or deleted by this system.
type RawArchive interface {
	Store(ctx context.Context, key string, body []byte) error
}

// Fixed-width microseconds keep keys the same length, so lexical order is
// chronological order.
const keyTimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// NewKey builds an object key of the form
// raw/<UTC ISO-8601 timestamp, Z suffix>-<uuid>.json. The timestamp makes keys
// sortable, the uuid makes them unique.
func NewKey(now time.Time) string {
	return fmt.Sprintf("raw/%s-%s.json", now.UTC().Format(keyTimeFormat), uuid.New())
}
