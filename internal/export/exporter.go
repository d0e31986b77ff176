package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"recordshop/internal/logger"
	"recordshop/internal/model"
)

// Format selects which files an export produces.
type Format string

const (
	FormatExcel Format = "xlsx"
	FormatPDF   Format = "pdf"
	FormatBoth  Format = "both"
)

// ParseFormat accepts xlsx, pdf or both, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatExcel, FormatPDF, FormatBoth:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want xlsx, pdf or both)", s)
	}
}

// Exporter writes export files into a directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// New returns an Exporter writing into dir ("" means the working directory).
func New(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Excel writes the spreadsheet and returns its path.
func (e *Exporter) Excel(ctx context.Context, records []model.Record, base string) (string, error) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, records); err != nil {
		return "", err
	}
	return e.save(ctx, FileName(base, "xlsx", e.now()), buf.Bytes())
}

// PDF writes the report and returns its path.
func (e *Exporter) PDF(ctx context.Context, records []model.Record, base string) (string, error) {
	now := e.now()
	var buf bytes.Buffer
	if err := WritePDF(&buf, records, now); err != nil {
		return "", err
	}
	return e.save(ctx, FileName(base, "pdf", now), buf.Bytes())
}

// All writes the spreadsheet, then the report once the spreadsheet is on
// disk. The first failure stops the sequence.
func (e *Exporter) All(ctx context.Context, records []model.Record, base string) ([]string, error) {
	xlsx, err := e.Excel(ctx, records, base)
	if err != nil {
		return nil, err
	}
	pdf, err := e.PDF(ctx, records, base)
	if err != nil {
		return []string{xlsx}, err
	}
	return []string{xlsx, pdf}, nil
}

// Export dispatches on format.
func (e *Exporter) Export(ctx context.Context, format Format, records []model.Record, base string) ([]string, error) {
	switch format {
	case FormatExcel:
		path, err := e.Excel(ctx, records, base)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatPDF:
		path, err := e.PDF(ctx, records, base)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatBoth:
		return e.All(ctx, records, base)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func (e *Exporter) save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	logger.Log.Infow("export written", "path", path, "bytes", len(data))
	return path, nil
}
