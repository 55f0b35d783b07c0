package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a timetable as a landscape PDF, one table block per
// group.
type PDFExporter struct{}

// NewPDFExporter builds a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF document: an uppercase title, then a bold group
// subtitle and column header above each group's section table.
func (e *PDFExporter) Render(timetable Timetable) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if timetable.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(timetable.Title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	colWidth := 277.0 / float64(len(timetableHeaders))
	writeHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		for _, header := range timetableHeaders {
			pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	for _, group := range timetable.Groups {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 8, "Group "+group.Name, "", 1, "L", false, 0, "")
		writeHeader()
		for _, row := range group.Rows {
			for _, cell := range row.record() {
				pdf.CellFormat(colWidth, 7, cell, "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render timetable pdf: %w", err)
	}
	return buf.Bytes(), nil
}
