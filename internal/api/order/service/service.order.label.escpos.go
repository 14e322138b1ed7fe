package ordersvc

import (
	"bytes"
	"fmt"

	ordermodels "b8_shield/internal/api/order/models"
)

// ESC/POS command sequences.
var (
	escInit       = []byte{0x1b, 0x40}       // initialize printer
	escAlignLeft  = []byte{0x1b, 0x61, 0x00} // left justification
	escAlignMid   = []byte{0x1b, 0x61, 0x01} // centered
	escBoldOn     = []byte{0x1b, 0x45, 0x01}
	escBoldOff    = []byte{0x1b, 0x45, 0x00}
	escDoubleSize = []byte{0x1d, 0x21, 0x11} // double width and height
	escNormalSize = []byte{0x1d, 0x21, 0x00}
	escFeedCut    = []byte{0x1d, 0x56, 0x42, 0x03} // partial cut with feed
)

// RenderLabelESCPOS renders the label as an ESC/POS byte stream for thermal
// label printers.
func RenderLabelESCPOS(order *ordermodels.Order) []byte {
	var buf bytes.Buffer

	buf.Write(escInit)
	buf.Write(escAlignMid)
	buf.Write(escBoldOn)
	buf.Write(escDoubleSize)
	buf.WriteString("B8 SHIELD\n")
	buf.Write(escNormalSize)
	buf.WriteString(order.OrderNumber + "\n")
	buf.Write(escBoldOff)
	buf.WriteString("\n")

	buf.Write(escAlignLeft)
	info := order.CustomerInfo
	if info.Name != "" {
		buf.WriteString(info.Name + "\n")
	}
	if info.Company != "" {
		buf.WriteString(info.Company + "\n")
	}
	if info.Address != "" {
		buf.WriteString(info.Address + "\n")
	}
	if info.PostalCode != "" || info.City != "" {
		buf.WriteString(info.PostalCode + " " + info.City + "\n")
	}
	buf.WriteString("\n")

	for _, item := range order.Items {
		buf.WriteString(fmt.Sprintf("%dx %s %s/%s\n", item.Quantity, item.Name, item.Color, item.Size))
	}

	buf.Write(escFeedCut)
	return buf.Bytes()
}
