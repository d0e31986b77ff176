package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"recordshop/internal/model"
)

const (
	pageMargin   = 14.0
	tableTop     = 35.0
	cellPadding  = 1.0
	bodyLineH    = 3.5
	headerLineH  = 4.0
	bottomMargin = 15.0
)

var headerFill = RGB{68, 114, 196}

// WritePDF writes an A4 portrait report with one genre-coloured row per record.
// Rows that do not fit start a new page, which repeats the header row.
func WritePDF(w io.Writer, records []model.Record, now time.Time) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(now)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(pageMargin, 15, "Music Records Export")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(pageMargin, 22, "Generated: "+now.Format("02/01/2006, 15:04:05"))
	pdf.Text(pageMargin, 28, fmt.Sprintf("Total Records: %d", len(records)))

	_, pageH := pdf.GetPageSize()
	pdf.SetDrawColor(200, 200, 200)

	y := drawRow(pdf, tr, tableTop, reportHeaders, headerFill, RGB{255, 255, 255}, "B", 9, headerLineH)
	for _, r := range records {
		cells := Row(r)
		pdf.SetFont("Helvetica", "", 8)
		if y+rowHeight(pdf, tr, cells, bodyLineH) > pageH-bottomMargin {
			pdf.AddPage()
			y = drawRow(pdf, tr, pageMargin, reportHeaders, headerFill, RGB{255, 255, 255}, "B", 9, headerLineH)
		}
		fill := GenreColor(r.Genre)
		y = drawRow(pdf, tr, y, cells, fill, ContrastColor(fill), "", 8, bodyLineH)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func rowHeight(pdf *fpdf.Fpdf, tr func(string) string, cells []string, lineH float64) float64 {
	lines := 1
	for i, cell := range cells {
		if n := len(wrap(pdf, tr, cell, reportWidths[i])); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineH + 2*cellPadding
}

// wrap splits a cell into lines that fit its column. The text is translated
// to the single-byte core font encoding first, so widths are looked up per byte.
func wrap(pdf *fpdf.Fpdf, tr func(string) string, cell string, width float64) [][]byte {
	return pdf.SplitLines([]byte(tr(cell)), width-2*cellPadding)
}

// drawRow draws one grid row starting at y and returns the y below it.
func drawRow(pdf *fpdf.Fpdf, tr func(string) string, y float64, cells []string, fill, text RGB, style string, size, lineH float64) float64 {
	pdf.SetFont("Helvetica", style, size)
	h := rowHeight(pdf, tr, cells, lineH)

	pdf.SetFillColor(fill.R, fill.G, fill.B)
	pdf.SetTextColor(text.R, text.G, text.B)

	x := pageMargin
	for i, cell := range cells {
		width := reportWidths[i]
		pdf.Rect(x, y, width, h, "FD")
		for j, line := range wrap(pdf, tr, cell, width) {
			pdf.SetXY(x+cellPadding, y+cellPadding+float64(j)*lineH)
			pdf.CellFormat(width-2*cellPadding, lineH, string(line), "", 0, "L", false, 0, "")
		}
		x += width
	}
	return y + h
}
