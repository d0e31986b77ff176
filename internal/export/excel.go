package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"recordshop/internal/model"
)

const sheetName = "Records"

// WriteExcel writes the records as a single-sheet workbook.
func WriteExcel(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(spreadsheetHeaders))
	for i, h := range spreadsheetHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.ID,
			r.Title,
			r.Artist,
			r.Format,
			r.Genre,
			r.ReleaseYear,
			FormatPrice(r),
			r.StockQty,
			r.CustomerID,
			r.CustomerName(),
			r.CustomerContact,
			r.CustomerEmail,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i, width := range spreadsheetWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(spreadsheetHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	return f.Write(w)
}
