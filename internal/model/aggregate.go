package model

// StoredAggregate mirrors one row of the aggregate table. Type and State are
// nullable: rows written before the explicit attributes existed carry only the
// composite key.
type StoredAggregate struct {
	Date      string
	TypeState string
	Type      *string
	State     *string
	Count     int64
}

// AggregateRecord is the normalized per-day counter returned by queries.
type AggregateRecord struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	State string `json:"state"`
	Count int64  `json:"count"`
}

// Normalize prefers the explicit type/state attributes when present and falls
// back to splitting the composite key. A missing count reads as zero at the
// store layer, so Count carries over as-is.
func (a StoredAggregate) Normalize() AggregateRecord {
	rec := AggregateRecord{Date: a.Date, Count: a.Count}

	derivedType, derivedState, hasSep := SplitTypeState(a.TypeState)

	if a.Type != nil {
		rec.Type = *a.Type
	} else {
		rec.Type = derivedType
	}

	if a.State != nil {
		rec.State = *a.State
	} else if hasSep {
		rec.State = derivedState
	}

	return rec
}

// BatchFailureReport lists the queue message ids that must be redelivered.
// Messages absent from the report are considered durably processed.
type BatchFailureReport struct {
	FailedIDs []string
}

// Fail records a message id for redelivery.
func (r *BatchFailureReport) Fail(id string) {
	r.FailedIDs = append(r.FailedIDs, id)
}

// Failed reports whether the given message id is in the report.
func (r *BatchFailureReport) Failed(id string) bool {
	for _, f := range r.FailedIDs {
		if f == id {
			return true
		}
	}
	return false
}
