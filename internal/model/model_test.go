package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormulaItemClampsCount(t *testing.T) {
	assert.Equal(t, 1, NewFormulaItem("4-16-4", 1200, 800, 0).Count)
	assert.Equal(t, 1, NewFormulaItem("4-16-4", 1200, 800, -3).Count)
	assert.Equal(t, 7, NewFormulaItem("4-16-4", 1200, 800, 7).Count)
}

func TestOrderItemArea(t *testing.T) {
	it := OrderItem{Index: 1, Formula: "4-16-4", Width: 1200, Height: 800, Count: 3}
	assert.InDelta(t, 0.96, it.Area(), 1e-9)
	assert.InDelta(t, 2.88, it.TotalArea(), 1e-9)
}

func TestOrderTotals(t *testing.T) {
	order := NewOrder("ООО Окна", "Новосибирск", []OrderItem{
		{Index: 1, Formula: "a", Width: 1000, Height: 1000, Count: 2},
		{Index: 2, Formula: "b", Width: 500, Height: 400, Count: 5},
	})

	assert.Len(t, order.ID, 8)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, 7, order.TotalCount())
	assert.InDelta(t, 3.0, order.TotalArea(), 1e-9)
}

func TestNewOrderIDsAreUnique(t *testing.T) {
	a := NewOrder("", "", nil)
	b := NewOrder("", "", nil)
	assert.NotEqual(t, a.ID, b.ID)
}
