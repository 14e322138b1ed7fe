package ordermodels

import (
	"testing"
	"time"
)

func TestOrderTimePrefersMigratedDate(t *testing.T) {
	order := Order{
		OrderDate: "2024-03-15T10:30:00Z",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
	}
	got := order.OrderTime()
	if got.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("expected migrated date 2024-03-15, got %s", got.Format("2006-01-02"))
	}
}

func TestOrderTimeFirestoreShape(t *testing.T) {
	order := Order{
		OrderDate: map[string]interface{}{"seconds": float64(1710496200), "nanoseconds": float64(0)},
	}
	got := order.OrderTime().UTC()
	if got.Year() != 2024 || got.Month() != time.March {
		t.Errorf("expected March 2024, got %s", got)
	}
}

func TestOrderTimeFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	order := Order{CreatedAt: created.UnixMilli()}
	if !order.OrderTime().Equal(created) {
		t.Errorf("expected createdAt fallback %s, got %s", created, order.OrderTime())
	}

	// Unparseable migrated value also falls back.
	order.OrderDate = "not a date"
	if !order.OrderTime().Equal(created) {
		t.Errorf("expected fallback on bad orderDate, got %s", order.OrderTime())
	}
}

func TestComputedSubtotal(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 2, Price: 50},
		{Quantity: 1, Price: 25},
	}}
	if got := order.ComputedSubtotal(); got != 125 {
		t.Errorf("expected computed subtotal 125, got %v", got)
	}

	order.Subtotal = 200
	if got := order.ComputedSubtotal(); got != 200 {
		t.Errorf("stored subtotal must win, got %v", got)
	}
}

func TestEffectiveTotalLegacyFallback(t *testing.T) {
	order := Order{Total: 99}
	if got := order.EffectiveTotal(); got != 99 {
		t.Errorf("expected legacy total 99, got %v", got)
	}
	order.TotalAmount = 120
	if got := order.EffectiveTotal(); got != 120 {
		t.Errorf("expected totalAmount 120, got %v", got)
	}
}
