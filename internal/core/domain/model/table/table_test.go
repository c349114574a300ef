package table_test

import (
	"testing"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPin(t *testing.T, digits string) kernel.Pin {
	t.Helper()
	pin, err := kernel.NewPin(digits)
	require.NoError(t, err)
	return pin
}

func TestNewTable(t *testing.T) {
	t.Run("starts_at_pin_version_1", func(t *testing.T) {
		tbl, err := table.NewTable(kernel.NewUUID(), "Window 3", mustPin(t, "1234"))

		require.NoError(t, err)
		require.NoError(t, tbl.Validate())
		assert.Equal(t, "Window 3", tbl.Label())
		assert.Equal(t, "1234", tbl.Pin().String())
		assert.Equal(t, int64(1), tbl.PinVersion())
	})

	t.Run("rejects_empty_label", func(t *testing.T) {
		_, err := table.NewTable(kernel.NewUUID(), "", mustPin(t, "1234"))
		require.ErrorIs(t, err, table.ErrLabelIsRequired)
	})

	t.Run("rejects_unconstructed_pin", func(t *testing.T) {
		_, err := table.NewTable(kernel.NewUUID(), "Window 3", kernel.Pin{})
		require.Error(t, err)
	})

	t.Run("nil_table_fails_validation", func(t *testing.T) {
		var tbl *table.Table
		require.ErrorIs(t, tbl.Validate(), table.ErrTableIsNotConstructed)
	})
}

func TestRestoreTable(t *testing.T) {
	t.Run("restores_explicit_version", func(t *testing.T) {
		tbl, err := table.RestoreTable(kernel.NewUUID(), "Bar 1", mustPin(t, "0007"), 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), tbl.PinVersion())
	})

	t.Run("rejects_version_below_1", func(t *testing.T) {
		_, err := table.RestoreTable(kernel.NewUUID(), "Bar 1", mustPin(t, "0007"), 0)
		require.Error(t, err)
	})
}

func TestTable_RotatePin(t *testing.T) {
	t.Run("increments_version_monotonically", func(t *testing.T) {
		tbl, err := table.NewTable(kernel.NewUUID(), "Window 3", mustPin(t, "1234"))
		require.NoError(t, err)

		v2, err := tbl.RotatePin(mustPin(t, "5678"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), v2)
		assert.Equal(t, "5678", tbl.Pin().String())

		v3, err := tbl.RotatePin(mustPin(t, "5678")) // same digits still bump the version
		require.NoError(t, err)
		assert.Equal(t, int64(3), v3)
	})

	t.Run("rejects_unconstructed_pin_without_mutating", func(t *testing.T) {
		tbl, err := table.NewTable(kernel.NewUUID(), "Window 3", mustPin(t, "1234"))
		require.NoError(t, err)

		_, err = tbl.RotatePin(kernel.Pin{})
		require.Error(t, err)
		assert.Equal(t, int64(1), tbl.PinVersion())
		assert.Equal(t, "1234", tbl.Pin().String())
	})
}

func TestTable_Rename(t *testing.T) {
	tbl, err := table.NewTable(kernel.NewUUID(), "Window 3", mustPin(t, "1234"))
	require.NoError(t, err)

	require.NoError(t, tbl.Rename("Terrace 1"))
	assert.Equal(t, "Terrace 1", tbl.Label())

	require.Error(t, tbl.Rename(""))
	assert.Equal(t, "Terrace 1", tbl.Label())
}
