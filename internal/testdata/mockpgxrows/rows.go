package mockpgxrows

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"device-event-pipeline/internal/model"
)

// Rows is a fake pgx.Rows yielding prepared aggregate rows in positional
// (date, type_state, type, state, count) order.
type Rows struct {
	Records []model.StoredAggregate
	ScanErr error
	RowErr  error

	idx    int
	closed bool
}

var _ pgx.Rows = &Rows{}

func (r *Rows) Close() {
	r.closed = true
}

func (r *Rows) Err() error {
	return r.RowErr
}

func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}

func (r *Rows) Next() bool {
	if r.closed {
		return false
	}
	if r.idx < len(r.Records) {
		r.idx++
		return true
	}
	return false
}

func (r *Rows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}

	rec := r.Records[r.idx-1]
	*(dest[0].(*string)) = rec.Date
	*(dest[1].(*string)) = rec.TypeState
	*(dest[2].(**string)) = rec.Type
	*(dest[3].(**string)) = rec.State
	*(dest[4].(*int64)) = rec.Count

	return nil
}

func (r *Rows) Values() ([]any, error) {
	return nil, nil
}

func (r *Rows) RawValues() [][]byte {
	return nil
}

func (r *Rows) Conn() *pgx.Conn {
	return nil
}
