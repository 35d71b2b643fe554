package storage

// Result is the structured outcome of a single executed statement.
// Query-level failures travel in Err instead of being raised, so
// callers doing ad hoc queries must check OK rather than rely on
// a returned error. For reads, Rows holds the full result set (empty,
// never nil, when nothing matched). For writes, Success reports
// whether any row changed.
type Result struct {
	Success      bool
	Changes      int64
	LastInsertID int64
	Rows         []map[string]interface{}
	Err          error
}

// OK reports whether the statement executed without an engine error.
func (r Result) OK() bool {
	return r.Err == nil
}

func failure(err error) Result {
	return Result{Err: err}
}
