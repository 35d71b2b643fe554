package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("known table", func(t *testing.T) {
		tbl, err := Lookup("projects")
		require.NoError(t, err)
		require.NotNil(t, tbl)
		assert.Equal(t, "projects", tbl.Name)
		assert.Equal(t, []string{"name"}, tbl.Required())
		assert.Equal(t, []string{"created_at", "updated_at"}, tbl.Auto())
	})

	t.Run("unknown table", func(t *testing.T) {
		tbl, err := Lookup("not_a_real_table")
		assert.Nil(t, tbl)
		assert.ErrorIs(t, err, ErrUnknownTable)
	})

	t.Run("every registered table is resolvable", func(t *testing.T) {
		for _, name := range Tables() {
			tbl, err := Lookup(name)
			require.NoError(t, err, name)
			assert.Equal(t, name, tbl.Name)
		}
	})
}

func TestTableDescriptors(t *testing.T) {
	t.Run("field lookup", func(t *testing.T) {
		tbl, err := Lookup("alerts")
		require.NoError(t, err)

		f := tbl.Field("priority")
		require.NotNil(t, f)
		assert.Equal(t, KindLabel, f.Kind)
		assert.True(t, f.Required)

		assert.Nil(t, tbl.Field("nope"))
	})

	t.Run("time entries never declare duration", func(t *testing.T) {
		tbl, err := Lookup("time_entries")
		require.NoError(t, err)
		assert.Nil(t, tbl.Field("duration"), "duration is derived, not settable")
	})

	t.Run("quantity fields", func(t *testing.T) {
		tbl, err := Lookup("activities")
		require.NoError(t, err)
		assert.Equal(t, KindQuantity, tbl.Field("project_id").Kind)
		assert.Equal(t, KindQuantity, tbl.Field("duration").Kind)
	})
}

func TestDDL(t *testing.T) {
	ddl := DDL()
	for _, name := range Tables() {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+name)
	}
	assert.Contains(t, ddl, "ON DELETE CASCADE")
	assert.Contains(t, ddl, "ON DELETE SET NULL")
	assert.Contains(t, ddl, "GENERATED ALWAYS")
}
