package ordersvc

import (
	"fmt"
	"html"
	"strings"

	ordermodels "b8_shield/internal/api/order/models"
)

// RenderLabelHTML renders a 40x60mm shipping label as a standalone HTML
// document with inline CSS, ready for the browser print dialog.
func RenderLabelHTML(order *ordermodels.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(
			`<div class="item">%dx %s %s/%s</div>`,
			item.Quantity,
			html.EscapeString(item.Name),
			html.EscapeString(item.Color),
			html.EscapeString(item.Size),
		))
	}

	info := order.CustomerInfo
	addressLines := []string{info.Name}
	if info.Company != "" {
		addressLines = append(addressLines, info.Company)
	}
	addressLines = append(addressLines, info.Address, info.PostalCode+" "+info.City)
	if info.Country != "" && info.Country != "Sverige" {
		addressLines = append(addressLines, info.Country)
	}

	var address strings.Builder
	for _, line := range addressLines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		address.WriteString(fmt.Sprintf(`<div>%s</div>`, html.EscapeString(line)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="sv">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
  @page { size: 40mm 60mm; margin: 0; }
  body { width: 40mm; height: 60mm; margin: 0; padding: 2mm; font-family: Arial, sans-serif; font-size: 8pt; }
  .header { font-weight: bold; font-size: 9pt; border-bottom: 1px solid #000; padding-bottom: 1mm; margin-bottom: 1mm; }
  .address { margin-bottom: 2mm; }
  .items { border-top: 1px dashed #000; padding-top: 1mm; }
  .item { font-size: 7pt; }
  .footer { position: absolute; bottom: 2mm; font-size: 6pt; }
</style>
</head>
<body>
<div class="header">B8 Shield · %s</div>
<div class="address">%s</div>
<div class="items">%s</div>
<div class="footer">%s</div>
<script>window.onload = function() { window.print(); };</script>
</body>
</html>`,
		html.EscapeString(order.OrderNumber),
		html.EscapeString(order.OrderNumber),
		address.String(),
		items.String(),
		order.OrderTime().Format("2006-01-02"),
	)
}
