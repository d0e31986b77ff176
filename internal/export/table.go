// Package export renders an already-loaded record list as a spreadsheet or a
// paginated PDF report. It never fetches records itself.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"recordshop/internal/model"
)

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no records to export")

// MsgNoRecords is the notice shown to staff for ErrNoRecords.
const MsgNoRecords = "No records to export"

// DefaultBaseName is used when no file base name is given.
const DefaultBaseName = "records"

var spreadsheetHeaders = []string{
	"ID", "Title", "Artist", "Format", "Genre", "Release Year", "Price", "Stock",
	"Customer ID", "Customer Name", "Contact", "Email",
}

var spreadsheetWidths = []float64{8, 25, 20, 10, 15, 12, 10, 8, 12, 25, 15, 25}

var reportHeaders = []string{
	"ID", "Title", "Artist", "Format", "Genre", "Year", "Price", "Stock",
	"Cust ID", "Customer", "Contact", "Email",
}

var reportWidths = []float64{10, 25, 18, 10, 12, 10, 14, 8, 12, 22, 15, 25}

// FormatPrice renders a price the way both exports print it.
func FormatPrice(r model.Record) string {
	return "€" + r.Price.StringFixed(2)
}

// Row is one record as the exported text cells, in column order.
func Row(r model.Record) []string {
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		r.Title,
		r.Artist,
		r.Format,
		r.Genre,
		strconv.Itoa(r.ReleaseYear),
		FormatPrice(r),
		strconv.Itoa(r.StockQty),
		r.CustomerID,
		r.CustomerName(),
		r.CustomerContact,
		r.CustomerEmail,
	}
}

// Table returns the text cells of every record in list order.
func Table(records []model.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r))
	}
	return rows
}

// FileName builds "<base>_<YYYY-MM-DD>.<ext>" using the UTC date of now.
func FileName(base, ext string, now time.Time) string {
	if base == "" {
		base = DefaultBaseName
	}
	return fmt.Sprintf("%s_%s.%s", base, now.UTC().Format("2006-01-02"), ext)
}
