// Package storage implements the schema-driven record layer: a single
// generic CRUD implementation shared by every entity, with statements
// built dynamically from the table's registered descriptors. Adding an
// entity means registering its schema, not writing new code.
package storage

import (
	"errors"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/timekeep/timekeep/internal/logger"
	"github.com/timekeep/timekeep/internal/schema"
)

// Service is the generic, table-name-driven storage layer.
type Service struct {
	exec *Executor
	log  logger.Logger
}

// NewService returns a storage service executing through exec.
func NewService(exec *Executor) *Service {
	return &Service{exec: exec, log: logger.Storage()}
}

// Executor exposes the underlying executor for callers that need
// hand-written queries beyond generic CRUD.
func (s *Service) Executor() *Executor {
	return s.exec
}

// RunQuery executes a hand-written statement through the executor.
func (s *Service) RunQuery(query string, args ...interface{}) Result {
	return s.exec.Run(query, args...)
}

// Create validates fields against the table schema, merges in the
// schema's auto-generated timestamp fields, and inserts the record.
// It returns the new row's id, or ErrCreateFailed when the executor
// reports no success.
func (s *Service) Create(table string, fields map[string]interface{}) (int64, error) {
	if err := Validate(table, fields); err != nil {
		return 0, err
	}
	t, err := schema.Lookup(table)
	if err != nil {
		return 0, err
	}

	record := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		record[k] = v
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, name := range t.Auto() {
		if _, ok := record[name]; !ok {
			record[name] = now
		}
	}

	columns := make([]string, 0, len(record))
	for k := range record {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	values := make([]interface{}, 0, len(columns))
	for _, c := range columns {
		values = append(values, record[c])
	}

	query, args, err := sq.Insert(table).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return 0, &Error{Op: "create", Table: table, Err: err}
	}

	res := s.exec.Run(query, args...)
	if !res.OK() || !res.Success {
		s.log.Error("create failed", "table", table, "error", res.Err)
		return 0, &Error{Op: "create", Table: table, Err: errors.Join(ErrCreateFailed, res.Err)}
	}

	s.log.Info("record created", "table", table, "id", res.LastInsertID)
	return res.LastInsertID, nil
}

// GetByID returns the row with the given id, or nil when absent.
// Execution failures are logged and surface as nil as well; only
// invalid input raises.
func (s *Service) GetByID(table string, id int64) (map[string]interface{}, error) {
	if _, err := schema.Lookup(table); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, &Error{Op: "getById", Table: table, Err: ErrInvalidID}
	}

	query, args, err := sq.Select("*").From(table).Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, &Error{Op: "getById", Table: table, Err: err}
	}

	res := s.exec.Run(query, args...)
	if !res.OK() {
		s.log.Error("getById failed", "table", table, "id", id, "error", res.Err)
		return nil, nil
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return res.Rows[0], nil
}

// GetAll returns every row of the table, possibly empty.
func (s *Service) GetAll(table string) ([]map[string]interface{}, error) {
	if _, err := schema.Lookup(table); err != nil {
		return nil, err
	}

	query, args, err := sq.Select("*").From(table).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, &Error{Op: "getAll", Table: table, Err: err}
	}

	res := s.exec.Run(query, args...)
	if !res.OK() {
		s.log.Error("getAll failed", "table", table, "error", res.Err)
		return []map[string]interface{}{}, nil
	}
	return res.Rows, nil
}

// Update sets only the supplied fields on the row with the given id and
// reports whether any row changed. A missing id is reported as failure,
// not raised. When the table declares an updated_at field and the
// caller did not supply one, it is refreshed.
func (s *Service) Update(table string, id int64, fields map[string]interface{}) (bool, error) {
	t, err := schema.Lookup(table)
	if err != nil {
		return false, err
	}
	if id <= 0 {
		return false, &Error{Op: "update", Table: table, Err: ErrInvalidID}
	}
	if len(fields) == 0 {
		return false, nil
	}

	record := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		record[k] = v
	}
	if f := t.Field("updated_at"); f != nil && f.Auto {
		if _, ok := record["updated_at"]; !ok {
			record["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		}
	}

	query, args, err := sq.Update(table).SetMap(record).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, &Error{Op: "update", Table: table, Err: err}
	}

	res := s.exec.Run(query, args...)
	if !res.OK() {
		s.log.Error("update failed", "table", table, "id", id, "error", res.Err)
		return false, nil
	}
	if res.Success {
		s.log.Info("record updated", "table", table, "id", id)
	}
	return res.Success, nil
}

// Delete removes the row with the given id and reports success. The
// second and later deletes of the same id return false, never an error.
func (s *Service) Delete(table string, id int64) (bool, error) {
	if _, err := schema.Lookup(table); err != nil {
		return false, err
	}
	if id <= 0 {
		return false, &Error{Op: "delete", Table: table, Err: ErrInvalidID}
	}

	query, args, err := sq.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, &Error{Op: "delete", Table: table, Err: err}
	}

	res := s.exec.Run(query, args...)
	if !res.OK() {
		s.log.Error("delete failed", "table", table, "id", id, "error", res.Err)
		return false, nil
	}
	if res.Success {
		s.log.Info("record deleted", "table", table, "id", id)
	}
	return res.Success, nil
}
