package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/core/types"
)

func TestValue_Display(t *testing.T) {
	ts := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		value Value
		want  string
	}{
		{Null(), ""},
		{String("hello"), "hello"},
		{Int(42), "42"},
		{Decimal(types.MustMoney("19.99")), "19.99"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Time(ts), "2024-06-15 09:30:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.value.Display())
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	row := []Value{Null(), String("x"), Int(7), Bool(true)}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `[null, "x", 7, true]`, string(data))
}

func TestValue_Compare(t *testing.T) {
	assert.Equal(t, 0, String("Acme").Compare(String("acme")), "string compare is case-insensitive")
	assert.Equal(t, -1, String("a").Compare(String("b")))
	assert.Equal(t, 1, Int(5).Compare(Int(3)))
	assert.Equal(t, -1, Decimal(types.MustMoney("1.5")).Compare(Decimal(types.MustMoney("2"))))

	earlier := Time(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := Time(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, -1, earlier.Compare(later))

	// Nulls sort first against any kind.
	assert.Equal(t, -1, Null().Compare(String("x")))
	assert.Equal(t, 1, String("x").Compare(Null()))
	assert.Equal(t, 0, Null().Compare(Null()))
}

func TestTable_ColumnIndex(t *testing.T) {
	table := &Table{Columns: []Column{
		{Name: "Client Name"},
		{Name: "Amount"},
	}}

	assert.Equal(t, 0, table.ColumnIndex("client name"))
	assert.Equal(t, 1, table.ColumnIndex("AMOUNT"))
	assert.Equal(t, -1, table.ColumnIndex("Missing"))
}

func TestTable_RowMaps(t *testing.T) {
	table := &Table{
		Columns: []Column{{Name: "Name"}, {Name: "Active"}},
		Rows: [][]Value{
			{String("Acme"), Bool(true)},
			{String("Short")}, // ragged row
		},
	}

	maps := table.RowMaps()
	require.Len(t, maps, 2)
	assert.Equal(t, "Acme", maps[0]["Name"].Str())
	assert.True(t, maps[1]["Active"].IsNull())
}
