package ordersvc

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	ordermodels "b8_shield/internal/api/order/models"
)

// vatRate is the Swedish standard VAT used when an order lacks an explicit
// VAT amount.
const vatRate = 0.25

// csvHeader is the fixed accounting export header. Column order is part of
// the contract with the accounting import.
var csvHeader = []string{
	"Ordernummer", "Orderdatum", "Status", "Källa", "Kundtyp",
	"Kundnamn", "E-post", "Telefon", "Företag", "Org.nr",
	"Adress", "Postnummer", "Ort", "Land",
	"Artiklar", "Antal artiklar",
	"Delsumma", "Frakt", "Rabatt", "Rabattkod", "Moms", "Totalt",
	"Valuta", "Betalmetod", "Spårningsnummer", "Affiliate-kod",
}

// ExportOrdersCSV renders orders as the accounting CSV: UTF-8 with BOM,
// comma-delimited, quote-escaped, one row per order. Amount columns fall
// back to computed values when the stored fields are absent.
func ExportOrdersCSV(orders []ordermodels.Order) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF") // BOM so Excel opens Swedish characters correctly

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range orders {
		if err := w.Write(csvOrderRow(&orders[i])); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvOrderRow(order *ordermodels.Order) []string {
	subtotal := order.ComputedSubtotal()

	vat := order.VAT
	if vat == 0 {
		vat = (subtotal + order.Shipping - order.Discount) * vatRate
	}

	total := order.EffectiveTotal()
	if total == 0 {
		total = subtotal + order.Shipping - order.Discount + vat
	}

	currency := order.Currency
	if currency == "" {
		currency = "SEK"
	}

	kundtyp := "Privat"
	if order.Source == ordermodels.SourceB2B {
		kundtyp = "Företag"
	}

	status := ordermodels.StatusDisplayNames[order.Status]
	if status == "" {
		status = order.Status
	}

	itemCount := 0
	var itemParts []string
	for _, item := range order.Items {
		itemCount += item.Quantity
		itemParts = append(itemParts, fmt.Sprintf("%dx %s (%s/%s)", item.Quantity, item.Name, item.Color, item.Size))
	}

	return []string{
		order.OrderNumber,
		order.OrderTime().Format("2006-01-02"),
		status,
		strings.ToUpper(order.Source),
		kundtyp,
		order.CustomerInfo.Name,
		order.CustomerInfo.Email,
		order.CustomerInfo.Phone,
		order.CustomerInfo.Company,
		order.CustomerInfo.OrgNumber,
		order.CustomerInfo.Address,
		order.CustomerInfo.PostalCode,
		order.CustomerInfo.City,
		order.CustomerInfo.Country,
		strings.Join(itemParts, "; "),
		fmt.Sprintf("%d", itemCount),
		formatAmount(subtotal),
		formatAmount(order.Shipping),
		formatAmount(order.Discount),
		order.DiscountCode,
		formatAmount(vat),
		formatAmount(total),
		currency,
		order.PaymentMethod,
		order.TrackingNumber,
		order.AffiliateCode,
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
