package model

import (
	"time"

	"github.com/google/uuid"
)

// FormulaItem is one recognised order line of an AluPro export.
type FormulaItem struct {
	Formula string `json:"formula"`
	Width   int    `json:"width"`  // mm
	Height  int    `json:"height"` // mm
	Count   int    `json:"count"`  // always >= 1
}

// NewFormulaItem builds a FormulaItem, clamping the count to at least one.
func NewFormulaItem(formula string, w, h, count int) FormulaItem {
	if count < 1 {
		count = 1
	}
	return FormulaItem{
		Formula: formula,
		Width:   w,
		Height:  h,
		Count:   count,
	}
}

// FormulaRowState is the editable resolution of one distinct source formula.
type FormulaRowState struct {
	SourceFormula   string `json:"source_formula"`
	ResolvedFormula string `json:"resolved_formula"`
	Modified        bool   `json:"modified"` // Edited by hand after auto-generation
}

// OrderItem is one row of the glass-order request.
type OrderItem struct {
	Index   int    `json:"index"` // 1-based, contiguous
	Formula string `json:"formula"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Count   int    `json:"count"`
}

// Area returns the area of a single unit in m².
func (o OrderItem) Area() float64 {
	return float64(o.Width) * float64(o.Height) / 1_000_000
}

// TotalArea returns Area multiplied by Count.
func (o OrderItem) TotalArea() float64 {
	return o.Area() * float64(o.Count)
}

// Order is the result of one generation pass.
type Order struct {
	ID        string      `json:"id"`
	Customer  string      `json:"customer"`
	Address   string      `json:"address"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

func NewOrder(customer, address string, items []OrderItem) Order {
	return Order{
		ID:        uuid.New().String()[:8],
		Customer:  customer,
		Address:   address,
		CreatedAt: time.Now(),
		Items:     items,
	}
}

// TotalCount returns the number of physical glass units in the order.
func (o Order) TotalCount() int {
	total := 0
	for _, it := range o.Items {
		total += it.Count
	}
	return total
}

// TotalArea returns the summed area of all units in m².
func (o Order) TotalArea() float64 {
	total := 0.0
	for _, it := range o.Items {
		total += it.TotalArea()
	}
	return total
}

// Selection holds the materials and treatment flags used to compose formulas.
type Selection struct {
	Outer  string `json:"outer"`
	Middle string `json:"middle"`
	Inner  string `json:"inner"`
	Spacer string `json:"spacer"`

	TemperOuter  bool `json:"zak_outer"`
	TemperMiddle bool `json:"zak_middle"`
	TemperInner  bool `json:"zak_inner"`
	Argon        bool `json:"argon"`
}
