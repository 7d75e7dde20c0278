package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"daycare-backend/internal/models"
	"daycare-backend/internal/timeutil"
)

// PaymentReceipt renders a one page A5 receipt for a parent payment.
func PaymentReceipt(p *models.ParentPayment, child *models.Child) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(128, 10, "Daystar Daycare", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(128, 6, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.CellFormat(128, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	rows := [][2]string{
		{"Receipt No.", fmt.Sprintf("PP-%06d", p.ID)},
		{"Child", child.FullName},
		{"Parent/Guardian", child.ParentGuardianName},
		{"Payment date", timeutil.FormatDate(p.PaymentDate)},
		{"Session type", string(p.SessionType)},
		{"Amount", fmt.Sprintf("Shs %.2f", p.Amount)},
		{"Status", string(p.Status)},
	}
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 8, row[0], "1", 0, "L", fill, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(83, 8, row[1], "1", 1, "L", fill, 0, "")
	}

	if p.Status != models.PaymentPaid {
		pdf.Ln(4)
		pdf.SetTextColor(180, 0, 0)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(128, 8, "Balance outstanding", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
