package vouchers

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"mally-backend/internal/models"
)

// renderInvoicePDF produces a printable invoice for a voucher: company
// letterhead, party block, inventory lines with GST rates, and the accounting
// entries. Works for any voucher type; Sales/Purchase get the goods table.
func renderInvoicePDF(co models.Company, v models.Voucher, entries []EntryResponse, inventory []InventoryResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// letterhead
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, tr(co.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if co.Address != "" {
		pdf.CellFormat(0, 5, tr(co.Address), "", 1, "C", false, 0, "")
	}
	if co.GSTIN != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+co.GSTIN+"  State: "+tr(co.StateName)+" ("+co.StateCode+")", "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 7, string(v.Type)+" Voucher", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(95, 5, "No: "+v.VoucherNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, "Date: "+v.Date.Format("02-01-2006"), "", 1, "R", false, 0, "")

	if v.PartyName != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "Party: "+tr(v.PartyName), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		if v.PartyGSTIN != "" {
			pdf.CellFormat(0, 5, "Party GSTIN: "+v.PartyGSTIN, "", 1, "L", false, 0, "")
		}
		if v.PartyAddress != "" {
			pdf.CellFormat(0, 5, tr(v.PartyAddress), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(3)

	// goods table
	if len(inventory) > 0 {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(60, 6, "Item", "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 6, "HSN", "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 6, "Qty", "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, 6, "Rate", "1", 0, "R", true, 0, "")
		pdf.CellFormat(20, 6, "GST %", "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, 6, "Amount", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, line := range inventory {
			pdf.CellFormat(60, 6, tr(line.ItemName), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, line.HSNCode, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, line.Quantity.String(), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, line.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(20, 6, line.TaxRate.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, line.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	// accounting entries
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(110, 6, "Particulars", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 6, "Debit", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 6, "Credit", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, e := range entries {
		dr, cr := "", ""
		if e.Type == string(models.BalanceTypeDr) {
			dr = e.Amount.StringFixed(2)
		} else {
			cr = e.Amount.StringFixed(2)
		}
		pdf.CellFormat(110, 6, tr(e.LedgerName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, dr, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, cr, "1", 1, "R", false, 0, "")
	}

	if v.Narration != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 8)
		pdf.MultiCell(0, 4, "Narration: "+tr(v.Narration), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
