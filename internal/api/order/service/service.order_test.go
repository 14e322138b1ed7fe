package ordersvc

import (
	"regexp"
	"testing"
	"time"

	orderdto "b8_shield/internal/api/order/dto"
	ordermodels "b8_shield/internal/api/order/models"
)

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)

	got := FormatOrderNumber(day, 42)
	if got != "B8-20250307-0042" {
		t.Fatalf("FormatOrderNumber = %q, want B8-20250307-0042", got)
	}

	pattern := regexp.MustCompile(`^B8-\d{8}-\d{4}$`)
	if !pattern.MatchString(got) {
		t.Errorf("order number %q does not match the expected format", got)
	}
}

func TestFormatOrderNumber_SequencePadding(t *testing.T) {
	day := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if got := FormatOrderNumber(day, 1); got != "B8-20251231-0001" {
		t.Errorf("seq=1 must be zero-padded, got %q", got)
	}
	if got := FormatOrderNumber(day, 12345); got != "B8-20251231-12345" {
		t.Errorf("seq beyond 4 digits keeps full width, got %q", got)
	}
}

func TestNormalizeItems_FromFordelning(t *testing.T) {
	items := NormalizeItems(nil, []orderdto.FordelningEntry{
		{Color: "röd", Size: "4", Quantity: 3},
	})

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Color != "röd" || item.Size != "4" || item.Quantity != 3 {
		t.Errorf("fordelning fields not preserved: %+v", item)
	}
	if item.Name != ordermodels.DefaultItemName {
		t.Errorf("name must default to %q, got %q", ordermodels.DefaultItemName, item.Name)
	}
}

func TestNormalizeItems_ExplicitItemsWinOverFordelning(t *testing.T) {
	items := NormalizeItems(
		[]orderdto.OrderItemInput{{Name: "Custom", Quantity: 2, Price: 50}},
		[]orderdto.FordelningEntry{{Color: "blå", Quantity: 5}},
	)

	if len(items) != 1 {
		t.Fatalf("expected 1 item from explicit list, got %d", len(items))
	}
	if items[0].Name != "Custom" {
		t.Errorf("explicit item name lost: %+v", items[0])
	}
	if items[0].Color != ordermodels.DefaultItemVariant || items[0].Size != ordermodels.DefaultItemVariant {
		t.Errorf("missing color/size must default to %q: %+v", ordermodels.DefaultItemVariant, items[0])
	}
}

func TestNormalizeItems_DropsZeroQuantity(t *testing.T) {
	items := NormalizeItems(nil, []orderdto.FordelningEntry{
		{Color: "röd", Quantity: 0},
		{Color: "blå", Quantity: 2},
	})
	if len(items) != 1 {
		t.Fatalf("zero-quantity rows must be dropped, got %d items", len(items))
	}
	if items[0].Color != "blå" {
		t.Errorf("wrong row survived: %+v", items[0])
	}
}

func TestIsProtectedOrderField(t *testing.T) {
	for _, name := range []string{"status", "statusHistory", "version", "orderNumber", "_id", "createdAt"} {
		if !isProtectedOrderField(name) {
			t.Errorf("%q must be protected from additional-data writes", name)
		}
	}
	if isProtectedOrderField("trackingNumber") {
		t.Error("trackingNumber must be writable via additional data")
	}
}
