package order

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTax_RoundsToWholeRupees(t *testing.T) {
	assert.Equal(t, "137", Tax(dec("760")).String())  // 136.8
	assert.Equal(t, "187", Tax(dec("1040")).String()) // 187.2
	assert.Equal(t, "18", Tax(dec("100")).String())
	assert.Equal(t, "0", Tax(decimal.Zero).String())
	// 4.5 rounds up
	assert.Equal(t, "5", Tax(dec("25")).String())
}

func TestOrder_Price(t *testing.T) {
	o := Order{Items: []Item{
		{ProductID: "1", Quantity: 2, Price: dec("380")},
		{ProductID: "2", Quantity: 1, Price: dec("280")},
	}}
	o.Price()
	assert.Equal(t, "1040", o.Subtotal.String())
	assert.Equal(t, "187", o.Tax.String())
	assert.Equal(t, "1227", o.TotalAmount.String())
}

func TestInvoice(t *testing.T) {
	o := Order{
		ID:            "8f7a",
		Customer:      Customer{ID: "u1", Name: "Priya"},
		Items:         []Item{{Title: "Coconut Oil", Quantity: 2, Price: dec("380")}},
		PaymentMethod: PaymentUPI,
		CreatedAt:     time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	o.Price()

	inv := NewInvoice(o)
	assert.Regexp(t, regexp.MustCompile(`^INV-20250315-\d{3}$`), inv.Number)
	assert.Equal(t, inv.Number, NewInvoice(o).Number, "stable per order")
	assert.Equal(t, "760", inv.Subtotal.String())
	assert.Equal(t, "137", inv.Tax.String())
	assert.Equal(t, "897", inv.Total.String())
	assert.Equal(t, "0.18", inv.TaxRate.String())
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "760", inv.Lines[0].Amount.String())

	// orders stored before pricing was split keep their total
	legacy := Order{ID: "1", Items: o.Items, TotalAmount: dec("760")}
	inv = NewInvoice(legacy)
	assert.Equal(t, "760", inv.Subtotal.String())
	assert.True(t, inv.Tax.IsZero())
}

func TestMemRepo_UpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	r := NewMemRepo(Order{ID: "o1", Status: StatusPending})

	require.NoError(t, r.UpdateStatus(ctx, "o1", StatusPending, StatusCancelled))
	assert.ErrorIs(t, r.UpdateStatus(ctx, "o1", StatusPending, StatusCancelled), ErrStatusChanged)
	assert.ErrorIs(t, r.UpdateStatus(ctx, "nope", StatusPending, StatusShipped), ErrNotFound)

	got, err := r.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}
