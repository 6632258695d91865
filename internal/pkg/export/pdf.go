package export

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

var pdfColumnWidths = []float64{46, 20, 20, 20, 20, 20, 22, 22, 24, 16, 20, 22}

// DutySummaryPDF renders a landscape A4 page per employee.
func DutySummaryPDF(r report.DutySummaryReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Duty Summary "+r.PeriodStart+" to "+r.PeriodEnd, true)
	pdf.SetAutoPageBreak(true, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, emp := range r.Employees {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, "Duty Summary")
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("Employee: %s (%s)", emp.EmployeeName, emp.EmployeeID)))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", r.PeriodStart, r.PeriodEnd))
		pdf.Ln(9)

		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 230, 250)
		for i, header := range summaryHeaders {
			pdf.CellFormat(pdfColumnWidths[i], 8, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, w := range emp.Weeks {
			writePDFRow(pdf, weekLabel(w), summaryRow(w.Summary))
		}

		pdf.SetFont("Arial", "B", 8)
		writePDFRow(pdf, "Total", summaryRow(emp.Period))
	}

	if len(r.Employees) == 0 {
		pdf.AddPage()
	}
	pdf.SetFont("Arial", "I", 7)
	pdf.Ln(4)
	pdf.Cell(0, 6, "Generated at "+r.GeneratedAt)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFRow(pdf *gofpdf.Fpdf, label string, values []string) {
	pdf.CellFormat(pdfColumnWidths[0], 7, label, "1", 0, "L", false, 0, "")
	for i, value := range values {
		pdf.CellFormat(pdfColumnWidths[i+1], 7, value, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}
