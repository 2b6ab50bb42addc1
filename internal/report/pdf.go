package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/phpdave11/gofpdf"
)

// WritePDF renders the printable form of r: summary, department distribution
// and the row table.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, r.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	summary := []string{
		fmt.Sprintf("Total Employees : %d", len(r.Rows)),
		fmt.Sprintf("Report Date     : %s", r.GeneratedAt.Format("2006-01-02")),
		fmt.Sprintf("Date Range      : %s", r.RangeLabel),
	}
	if r.Filters.Scope == ScopeByDepartment {
		summary = append(summary, fmt.Sprintf("Department      : %s", r.Filters.Department))
	}
	for _, s := range summary {
		pdf.Cell(0, 6, s)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Department Distribution")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, share := range r.Distribution {
		pdf.Cell(0, 6, fmt.Sprintf("%-11s %4d   %5.1f%% of total", share.Department, share.Count, share.Percent))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Employee Details")
	pdf.Ln(9)

	if len(r.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "No employee data available for the selected filters.", "", "", false)
	} else {
		widths := []float64{12, 40, 58, 24, 28, 28}
		headers := []string{"ID", "Name", "Email", "Department", "Created At", "Updated At"}

		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 8)
		for _, e := range r.Rows {
			cells := []string{
				strconv.FormatInt(e.ID, 10),
				e.Name,
				e.Email,
				string(e.Department),
				formatTimestamp(e.CreatedAt),
				formatTimestamp(e.UpdatedAt),
			}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	return pdf.Output(w)
}
