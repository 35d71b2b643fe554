// Package schema declares the logical tables of the timekeep database:
// which fields each table carries, which of them a caller must supply,
// and which are generated on write. Both the record validator and the
// generic storage service drive off these descriptors, so adding a new
// entity is a matter of registering it here.
package schema

import "errors"

// ErrUnknownTable is returned when a table name is not registered.
var ErrUnknownTable = errors.New("unknown table")

// Kind classifies a field for validation purposes.
type Kind int

const (
	// KindFree fields are accepted as-is.
	KindFree Kind = iota
	// KindLabel fields must be non-empty strings after trimming.
	KindLabel
	// KindQuantity fields must be finite numbers >= 0.
	KindQuantity
	// KindTime fields hold RFC 3339 timestamps or date strings.
	KindTime
)

// Field describes one column of a logical table.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Auto     bool // filled in by the storage layer on create
}

// Table describes one logical table.
type Table struct {
	Name   string
	Fields []Field
}

// Required returns the names of fields a caller must supply on create.
func (t *Table) Required() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Auto returns the names of fields generated by the storage layer.
func (t *Table) Auto() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Auto {
			names = append(names, f.Name)
		}
	}
	return names
}

// Field returns the descriptor for a named field, or nil.
func (t *Table) Field(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

var registry = map[string]*Table{
	"projects": {
		Name: "projects",
		Fields: []Field{
			{Name: "name", Kind: KindLabel, Required: true},
			{Name: "description", Kind: KindFree},
			{Name: "created_at", Kind: KindTime, Auto: true},
			{Name: "updated_at", Kind: KindTime, Auto: true},
		},
	},
	"activities": {
		Name: "activities",
		Fields: []Field{
			{Name: "name", Kind: KindLabel, Required: true},
			{Name: "project_id", Kind: KindQuantity, Required: true},
			{Name: "duration", Kind: KindQuantity, Required: true},
			{Name: "created_at", Kind: KindTime, Auto: true},
		},
	},
	"timers": {
		Name: "timers",
		Fields: []Field{
			{Name: "project_id", Kind: KindQuantity, Required: true},
			{Name: "task", Kind: KindLabel, Required: true},
			{Name: "start_time", Kind: KindTime, Required: true},
			{Name: "end_time", Kind: KindTime},
			{Name: "status", Kind: KindLabel, Required: true},
		},
	},
	"time_entries": {
		Name: "time_entries",
		Fields: []Field{
			{Name: "project_id", Kind: KindQuantity, Required: true},
			{Name: "task", Kind: KindLabel, Required: true},
			{Name: "start_time", Kind: KindTime, Required: true},
			{Name: "end_time", Kind: KindTime},
			{Name: "tag_id", Kind: KindQuantity},
			{Name: "updated_at", Kind: KindTime, Auto: true},
		},
	},
	"tags": {
		Name: "tags",
		Fields: []Field{
			{Name: "name", Kind: KindLabel, Required: true},
			{Name: "color", Kind: KindLabel, Required: true},
		},
	},
	"alerts": {
		Name: "alerts",
		Fields: []Field{
			{Name: "title", Kind: KindLabel, Required: true},
			{Name: "project_id", Kind: KindQuantity, Required: true},
			{Name: "type", Kind: KindLabel, Required: true},
			{Name: "priority", Kind: KindLabel, Required: true},
			{Name: "date", Kind: KindTime, Required: true},
			{Name: "resolved", Kind: KindQuantity},
		},
	},
	"reports": {
		Name: "reports",
		Fields: []Field{
			{Name: "project_id", Kind: KindQuantity, Required: true},
			{Name: "total_hours", Kind: KindQuantity, Required: true},
			{Name: "start_date", Kind: KindTime, Required: true},
			{Name: "end_date", Kind: KindTime, Required: true},
			{Name: "created_at", Kind: KindTime, Auto: true},
			{Name: "updated_at", Kind: KindTime, Auto: true},
		},
	},
	"settings": {
		Name: "settings",
		Fields: []Field{
			{Name: "key", Kind: KindLabel, Required: true},
			{Name: "value", Kind: KindFree, Required: true},
		},
	},
}

// Lookup resolves a table descriptor by name.
func Lookup(name string) (*Table, error) {
	t, ok := registry[name]
	if !ok {
		return nil, ErrUnknownTable
	}
	return t, nil
}

// Tables returns the registered table names in creation order.
func Tables() []string {
	return []string{
		"projects", "tags", "activities", "timers",
		"time_entries", "alerts", "reports", "settings",
	}
}
