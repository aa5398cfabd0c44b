package quotation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/core/id"
	"quotify/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestRecalculate_FixedDiscount(t *testing.T) {
	q := New()
	q.Discount = money("50")
	q.SetLines([]Line{
		{ItemName: "Design", UnitCost: money("100"), Quantity: money("2")},
		{ItemName: "Hosting", UnitCost: money("25"), Quantity: money("4")},
	})

	assert.True(t, q.Subtotal.Equal(money("300")), "subtotal = %s", q.Subtotal)
	assert.True(t, q.DiscountAmount.Equal(money("50")))
	assert.True(t, q.Total.Equal(money("250")))
	assert.True(t, q.NetAmount.Equal(q.Total))
}

func TestRecalculate_PercentageDiscount(t *testing.T) {
	q := New()
	q.DiscountType = DiscountPercentage
	q.Discount = money("10")
	q.SetLines([]Line{
		{ItemName: "Consulting", UnitCost: money("95"), Quantity: money("10")},
	})

	assert.True(t, q.Subtotal.Equal(money("950")))
	assert.True(t, q.DiscountAmount.Equal(money("95")))
	assert.True(t, q.Total.Equal(money("855")))
}

func TestRecalculate_DiscountTypeCaseInsensitive(t *testing.T) {
	q := New()
	q.DiscountType = "Percentage"
	q.Discount = money("50")
	q.SetLines([]Line{
		{ItemName: "Item", UnitCost: money("200"), Quantity: money("1")},
	})

	assert.True(t, q.DiscountAmount.Equal(money("100")))
}

func TestSetLines_DerivesTotalsAndPositions(t *testing.T) {
	q := New()
	q.SetLines([]Line{
		{ItemName: "A", UnitCost: money("10"), Quantity: money("3"), LineTotal: money("999")},
		{ItemName: "B", UnitCost: money("5"), Quantity: money("2")},
	})

	require.Len(t, q.Lines, 2)

	// Client-sent line totals are ignored.
	assert.True(t, q.Lines[0].LineTotal.Equal(money("30")))
	assert.True(t, q.Lines[1].LineTotal.Equal(money("10")))

	assert.Equal(t, 1, q.Lines[0].Position)
	assert.Equal(t, 2, q.Lines[1].Position)

	for _, line := range q.Lines {
		assert.False(t, id.IsNil(line.ID), "line ID should be generated")
		assert.Equal(t, q.ID, line.QuotationID)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := New()
	valid.Number = "QT-000001"
	require.NoError(t, valid.Validate(ctx))

	tests := []struct {
		name   string
		mutate func(q *Quotation)
	}{
		{"missing number", func(q *Quotation) { q.Number = "" }},
		{"unknown status", func(q *Quotation) { q.Status = "archived" }},
		{"negative discount", func(q *Quotation) { q.Discount = money("-1") }},
		{"unknown discount type", func(q *Quotation) { q.DiscountType = "relative" }},
		{"line without name", func(q *Quotation) {
			q.Lines = []Line{{ItemName: " ", UnitCost: money("1"), Quantity: money("1")}}
		}},
		{"negative quantity", func(q *Quotation) {
			q.Lines = []Line{{ItemName: "X", UnitCost: money("1"), Quantity: money("-2")}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New()
			q.Number = "QT-000002"
			tt.mutate(q)
			assert.Error(t, q.Validate(ctx))
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("draft"))
	assert.True(t, ValidStatus("  Accepted "))
	assert.True(t, ValidStatus("DECLINED"))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestPatch_ApplyWithoutLinesRecalculates(t *testing.T) {
	q := New()
	q.Number = "QT-000003"
	q.SetLines([]Line{
		{ItemName: "A", UnitCost: money("100"), Quantity: money("1")},
	})

	discount := money("25")
	Patch{Discount: &discount}.Apply(q)

	assert.True(t, q.DiscountAmount.Equal(money("25")))
	assert.True(t, q.Total.Equal(money("75")))
	// Lines untouched.
	require.Len(t, q.Lines, 1)
	assert.Equal(t, "A", q.Lines[0].ItemName)
}

func TestPatch_ApplyReplacesLines(t *testing.T) {
	q := New()
	q.Number = "QT-000004"
	q.SetLines([]Line{
		{ItemName: "Old", UnitCost: money("10"), Quantity: money("1")},
	})

	Patch{Lines: []Line{
		{ItemName: "New", UnitCost: money("20"), Quantity: money("2")},
	}}.Apply(q)

	require.Len(t, q.Lines, 1)
	assert.Equal(t, "New", q.Lines[0].ItemName)
	assert.True(t, q.Subtotal.Equal(money("40")))
}

func TestPatch_EmptyStatusIgnored(t *testing.T) {
	q := New()
	q.Number = "QT-000005"
	q.Status = StatusSent

	empty := ""
	Patch{Status: &empty}.Apply(q)
	assert.Equal(t, StatusSent, q.Status)

	status := "Accepted"
	Patch{Status: &status}.Apply(q)
	assert.Equal(t, StatusAccepted, q.Status)
}

func TestRecalculate_EmptyLines(t *testing.T) {
	q := New()
	q.Recalculate()

	assert.True(t, q.Subtotal.Equal(decimal.Zero))
	assert.True(t, q.Total.Equal(decimal.Zero))
}
