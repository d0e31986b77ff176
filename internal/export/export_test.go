package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recordshop/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{
			ID: 1, Title: "Kind of Blue", Artist: "Miles Davis", Format: "Vinyl", Genre: "Jazz",
			ReleaseYear: 1959, Price: decimal.RequireFromString("24.99"), StockQty: 3,
			CustomerID: "123A", CustomerFirstName: "Nina", CustomerLastName: "Byrne",
			CustomerContact: "08761234", CustomerEmail: "nina@example.ie",
		},
		{
			ID: 7, Title: "Stony Hill", Artist: "Damian Marley", Format: "CD", Genre: "Reggae",
			ReleaseYear: 2017, Price: decimal.RequireFromString("12.5"), StockQty: 0,
			CustomerID: "45B", CustomerFirstName: "Sam", CustomerLastName: "Doyle",
			CustomerContact: "0871234567", CustomerEmail: "sam.doyle@example.com",
		},
	}
}

func TestTableGolden(t *testing.T) {
	var buf bytes.Buffer
	for _, row := range Table(sampleRecords()) {
		buf.WriteString(strings.Join(row, "\t"))
		buf.WriteByte('\n')
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "table", buf.Bytes())
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, time.March, 9, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "records_2025-03-09.xlsx", FileName("", "xlsx", now))
	assert.Equal(t, "music_records_2025-03-09.pdf", FileName("music_records", "pdf", now))
}

func TestGenreColor(t *testing.T) {
	assert.Equal(t, RGB{0xFF, 0x6B, 0x6B}, GenreColor("Rock"))
	assert.Equal(t, RGB{0x11, 0x8A, 0xB2}, GenreColor("Hip Hop"))
	assert.Equal(t, GenreColor("Hip Hop"), GenreColor("Hip-Hop"))
	assert.Equal(t, RGB{0x56, 0x0B, 0xAD}, GenreColor("Reggae"))
	assert.Equal(t, RGB{0xCC, 0xCC, 0xCC}, GenreColor("Alternative"))
}

func TestContrastColor(t *testing.T) {
	black := RGB{0, 0, 0}
	white := RGB{255, 255, 255}

	assert.Equal(t, black, ContrastColor(GenreColor("Jazz")))
	assert.Equal(t, black, ContrastColor(GenreColor("Alternative")))
	assert.Equal(t, white, ContrastColor(GenreColor("Country")))
	assert.Equal(t, white, ContrastColor(GenreColor("Metal")))
	assert.Equal(t, black, ContrastColor(RGB{128, 128, 128}))
	assert.Equal(t, white, ContrastColor(RGB{127, 127, 127}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Records"}, f.GetSheetList())

	header, err := f.GetCellValue("Records", "F1")
	require.NoError(t, err)
	assert.Equal(t, "Release Year", header)

	price, err := f.GetCellValue("Records", "G3")
	require.NoError(t, err)
	assert.Equal(t, "€12.50", price)

	name, err := f.GetCellValue("Records", "J2")
	require.NoError(t, err)
	assert.Equal(t, "Nina Byrne", name)

	for col, want := range map[string]float64{"A": 8, "B": 25, "C": 20, "J": 25, "L": 25} {
		width, err := f.GetColWidth("Records", col)
		require.NoError(t, err)
		assert.InDelta(t, want, width, 0.01, "column %s", col)
	}

	styleID, err := f.GetCellStyle("Records", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleRecords(), time.Now()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePDFRendersEuroPricesAndAccents(t *testing.T) {
	records := model.DemoRecords()
	accented := sampleRecords()[0]
	accented.Title = "Ágætis byrjun, the long edition with the bonus disc and a booklet"
	accented.Artist = "Sigur Rós"
	accented.CustomerFirstName = "Siobhán"
	records = append(records, accented)

	var buf bytes.Buffer
	require.NotPanics(t, func() {
		require.NoError(t, WritePDF(&buf, records, time.Now()))
	})
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWrapKeepsLinesInsideColumn(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCellMargin(0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 8)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	lines := wrap(pdf, tr, "€24.99", reportWidths[6])
	require.Len(t, lines, 1)
	assert.Equal(t, []byte(tr("€24.99")), lines[0])

	long := wrap(pdf, tr, strings.Repeat("Café del Mar ", 8), reportWidths[1])
	assert.Greater(t, len(long), 1)
	for _, line := range long {
		assert.LessOrEqual(t, pdf.GetStringWidth(string(line)), reportWidths[1])
	}
}

func TestWritePDFPaginatesLongLists(t *testing.T) {
	records := make([]model.Record, 0, 120)
	for i := 0; i < 120; i++ {
		r := sampleRecords()[i%2]
		r.ID = uint(i + 1)
		records = append(records, r)
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, records, time.Now()))
	pages := bytes.Count(buf.Bytes(), []byte("/Type /Page")) - bytes.Count(buf.Bytes(), []byte("/Type /Pages"))
	assert.Greater(t, pages, 1)
}

func TestEmptyListIsRejected(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteExcel(&buf, nil), ErrNoRecords)
	assert.ErrorIs(t, WritePDF(&buf, nil, time.Now()), ErrNoRecords)

	_, err := New(t.TempDir()).All(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestExporterAllWritesSpreadsheetThenReport(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)
	e.now = func() time.Time { return time.Date(2025, time.May, 4, 10, 0, 0, 0, time.UTC) }

	paths, err := e.Export(context.Background(), FormatBoth, sampleRecords(), "music_records")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "music_records_2025-05-04.xlsx"),
		filepath.Join(dir, "music_records_2025-05-04.pdf"),
	}, paths)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestExporterStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(t.TempDir()).All(ctx, sampleRecords(), "")
	assert.ErrorIs(t, err, context.Canceled)
}
