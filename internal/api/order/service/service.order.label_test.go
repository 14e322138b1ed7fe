package ordersvc

import (
	"bytes"
	"strings"
	"testing"

	ordermodels "b8_shield/internal/api/order/models"
)

func testLabelOrder() *ordermodels.Order {
	return &ordermodels.Order{
		OrderNumber: "B8-20260830-0007",
		CustomerInfo: ordermodels.CustomerInfo{
			Name:       "Anna Åberg",
			Address:    "Fiskargatan 3",
			PostalCode: "111 20",
			City:       "Stockholm",
		},
		Items: []ordermodels.OrderItem{
			{Name: "B8 Shield", Color: "röd", Size: "4", Quantity: 3},
		},
	}
}

func TestRenderLabelHTML(t *testing.T) {
	html := RenderLabelHTML(testLabelOrder())

	for _, want := range []string{"B8-20260830-0007", "Anna Åberg", "Fiskargatan 3", "111 20 Stockholm", "3x B8 Shield röd/4"} {
		if !strings.Contains(html, want) {
			t.Errorf("label missing %q", want)
		}
	}
	if !strings.Contains(html, "size: 40mm 60mm") {
		t.Error("label must declare the 40x60mm page size")
	}
	if !strings.Contains(html, "window.print()") {
		t.Error("label must trigger the print dialog on load")
	}
}

func TestRenderLabelHTML_EscapesMarkup(t *testing.T) {
	order := testLabelOrder()
	order.CustomerInfo.Name = `<script>alert("x")</script>`
	html := RenderLabelHTML(order)
	if strings.Contains(html, `<script>alert`) {
		t.Error("customer data must be HTML-escaped")
	}
}

func TestRenderLabelESCPOS(t *testing.T) {
	data := RenderLabelESCPOS(testLabelOrder())

	if !bytes.HasPrefix(data, []byte{0x1b, 0x40}) {
		t.Error("stream must start with the initialize command")
	}
	if !bytes.HasSuffix(data, []byte{0x1d, 0x56, 0x42, 0x03}) {
		t.Error("stream must end with the cut command")
	}
	if !bytes.Contains(data, []byte("B8-20260830-0007")) {
		t.Error("stream must carry the order number")
	}
	if !bytes.Contains(data, []byte("3x B8 Shield")) {
		t.Error("stream must list the items")
	}
}
