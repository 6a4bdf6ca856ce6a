// Package pdf renders order invoices for the admin panel.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"foodadmin/internal/domain/models"
	"foodadmin/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// BuildOrderInvoice renders one order as a PDF and returns (bytes, filename).
func BuildOrderInvoice(o models.Order) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : INV-"+o.Code)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name    : "+safe(o.CustomerName))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Phone   : "+safe(o.CustomerPhone))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Address : "+safe(o.DeliveryAddress))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Store   : "+safe(o.StoreName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(110, 7, "Item")
	pdf.Cell(20, 7, "Qty")
	pdf.Cell(0, 7, "Amount")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	for _, it := range o.Items {
		pdf.Cell(110, 7, safe(it.Name))
		pdf.Cell(20, 7, fmt.Sprintf("%d", it.Quantity))
		pdf.Cell(0, 7, utils.FormatMinor(it.LineTotal))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	rows := []struct {
		label  string
		amount int64
	}{
		{"Subtotal", o.Subtotal},
		{"Discount", -o.Discount},
		{"Delivery fee", o.DeliveryFee},
	}
	for _, r := range rows {
		pdf.Cell(130, 7, r.label)
		pdf.Cell(0, 7, utils.FormatMinor(r.amount))
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(130, 7, "Total")
	pdf.Cell(0, 7, utils.FormatMinor(o.Total))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for your order. Payment method: "+safe(o.PaymentName), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("INVOICE_%s.pdf", o.Code), nil
}

func safe(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
