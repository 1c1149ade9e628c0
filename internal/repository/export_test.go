package repository

// Exported aliases so the external test package can reference the queries.
const (
	UpsertIncrementQuery = upsertIncrementQuery
	FetchByDateQuery     = fetchByDateQuery
)
