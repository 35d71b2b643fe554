package storage

import (
	"math"
	"strings"

	"github.com/timekeep/timekeep/internal/schema"
)

// Validate checks a candidate record against the table's schema before
// any write. Required fields must be present; label-like fields must be
// non-empty strings after trimming; quantity-like fields must be finite
// numbers >= 0. Fields without a stricter rule pass as-is. The check is
// pure and issues no SQL.
func Validate(table string, record map[string]interface{}) error {
	t, err := schema.Lookup(table)
	if err != nil {
		return err
	}

	for _, f := range t.Fields {
		value, present := record[f.Name]
		if !present {
			if f.Required {
				return &Error{Op: "validate", Table: table, Field: f.Name, Err: ErrMissingField}
			}
			continue
		}
		if err := checkKind(table, f, value); err != nil {
			return err
		}
	}

	return nil
}

func checkKind(table string, f schema.Field, value interface{}) error {
	switch f.Kind {
	case schema.KindLabel:
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return &Error{Op: "validate", Table: table, Field: f.Name, Err: ErrInvalidFieldValue}
		}
	case schema.KindQuantity:
		n, ok := asNumber(value)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return &Error{Op: "validate", Table: table, Field: f.Name, Err: ErrInvalidFieldValue}
		}
	}
	return nil
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
