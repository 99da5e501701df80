package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a week table into a printable PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with the timetable grouped by day.
func (e *PDFExporter) Render(table WeekTable) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(table.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	headers := []string{"Time", "Title", "Kind", "Room", "Teacher"}
	widths := []float64{35, 70, 25, 25, 35}

	lastDay := -1
	for _, b := range table.sorted() {
		if b.DayOfWeek != lastDay {
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, dayName(b.DayOfWeek), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "B", 9)
			for i, header := range headers {
				pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
			lastDay = b.DayOfWeek
		}
		pdf.SetFont("Arial", "", 9)
		cells := []string{
			fmt.Sprintf("%s-%s", b.StartTime, b.EndTime),
			b.Title,
			string(b.Kind),
			b.Room,
			b.TeacherName,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
