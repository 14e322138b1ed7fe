package ordersvc

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	ordermodels "b8_shield/internal/api/order/models"
)

func TestExportOrdersCSV_HeaderAndBOM(t *testing.T) {
	data, err := ExportOrdersCSV(nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(data, []byte("\uFEFF")) {
		t.Error("export must start with a UTF-8 BOM")
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF"))))
	header, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != 26 {
		t.Fatalf("header must have 26 columns, got %d", len(header))
	}
	if header[0] != "Ordernummer" || header[25] != "Affiliate-kod" {
		t.Errorf("unexpected header boundaries: %q ... %q", header[0], header[25])
	}
}

func TestExportOrdersCSV_SubtotalFallback(t *testing.T) {
	order := ordermodels.Order{
		OrderNumber: "B8-20260830-0001",
		Status:      ordermodels.StatusPending,
		Source:      ordermodels.SourceB2C,
		Items: []ordermodels.OrderItem{
			{Name: "X", Quantity: 2, Price: 50},
		},
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}

	data, err := ExportOrdersCSV([]ordermodels.Order{order})
	if err != nil {
		t.Fatal(err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF"))))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}

	row := rows[1]
	// Delsumma is column 17 (index 16): computed 2×50 when subtotal absent.
	if row[16] != "100.00" {
		t.Errorf("subtotal fallback must be 100.00, got %q", row[16])
	}
	// Antal artiklar counts quantities, not lines.
	if row[15] != "2" {
		t.Errorf("item count must be 2, got %q", row[15])
	}
}

func TestExportOrdersCSV_StoredAmountsWin(t *testing.T) {
	order := ordermodels.Order{
		Source:      ordermodels.SourceB2B,
		Subtotal:    200,
		VAT:         50,
		TotalAmount: 250,
		Currency:    "SEK",
		Items:       []ordermodels.OrderItem{{Name: "X", Quantity: 1, Price: 999}},
	}

	data, err := ExportOrdersCSV([]ordermodels.Order{order})
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "200.00") || !strings.Contains(text, "250.00") {
		t.Error("stored subtotal/total must be exported as-is")
	}
	if !strings.Contains(text, "Företag") {
		t.Error("b2b orders must export Kundtyp Företag")
	}
}
