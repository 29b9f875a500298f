package table

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRow_ArityChecked(t *testing.T) {
	tbl := New("a", "b")
	require.NoError(t, tbl.AppendRow(1, 2))

	err := tbl.AppendRow(1, 2, 3)
	assert.True(t, eris.Is(err, ErrInvalidConfiguration))
	assert.Equal(t, 1, tbl.NumRows())
}

func TestAddColumn(t *testing.T) {
	tbl := New("a")
	require.NoError(t, tbl.AppendRow(1))
	require.NoError(t, tbl.AppendRow(2))

	require.NoError(t, tbl.AddColumn("b", []float64{10, 20}))
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())

	v, err := tbl.Value(1, "b")
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)

	// Duplicate name and wrong length are both rejected.
	assert.Error(t, tbl.AddColumn("b", []float64{1, 2}))
	assert.Error(t, tbl.AddColumn("c", []float64{1}))
}

func TestAppendTable_ColumnOrderEnforced(t *testing.T) {
	a := New("x", "y")
	require.NoError(t, a.AppendRow(1, 2))

	b := New("y", "x")
	require.NoError(t, b.AppendRow(3, 4))

	assert.Error(t, a.AppendTable(b))

	c := New("x", "y")
	require.NoError(t, c.AppendRow(5, 6))
	require.NoError(t, a.AppendTable(c))
	assert.Equal(t, 2, a.NumRows())
}

func TestColumn_Unknown(t *testing.T) {
	tbl := New("a")
	_, err := tbl.Column("nope")
	assert.True(t, eris.Is(err, ErrInvalidConfiguration))
}

func TestSummary(t *testing.T) {
	tbl := New("v")
	for _, x := range []float64{1, 2, 3, 4} {
		require.NoError(t, tbl.AppendRow(x))
	}

	stats := tbl.Summary()
	require.Len(t, stats, 1)
	assert.Equal(t, "v", stats[0].Name)
	assert.Equal(t, 1.0, stats[0].Min)
	assert.Equal(t, 4.0, stats[0].Max)
	assert.Equal(t, 2.5, stats[0].Mean)
}

func TestSummary_Empty(t *testing.T) {
	assert.Nil(t, New("v").Summary())
}
