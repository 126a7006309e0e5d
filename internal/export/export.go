// Package export writes the dashboard table to files: a plain CSV and a
// tabular PDF report.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	CSVFileName = "market_analysis.csv"
	PDFFileName = "market_analysis.pdf"
	ReportTitle = "Market Analysis Report"
)

// Headers is the fixed header row of both exports.
var Headers = []string{
	"Symbol",
	"Opening Scenario",
	"Trend Observed",
	"Upward Close (%)",
	"Downward Close (%)",
	"Flat Close (%)",
}

// Exporter writes export files into a single directory.
type Exporter struct {
	basePath string
}

func NewExporter(basePath string) *Exporter {
	return &Exporter{basePath: basePath}
}

// Result describes a written export file.
type Result struct {
	Path  string
	Bytes int64
	Rows  int
}

// CSV writes rows to market_analysis.csv.
func (e *Exporter) CSV(rows [][]string) (*Result, error) {
	return e.write(CSVFileName, rows, WriteCSV)
}

// PDF writes rows to market_analysis.pdf.
func (e *Exporter) PDF(rows [][]string) (*Result, error) {
	return e.write(PDFFileName, rows, WritePDF)
}

func (e *Exporter) write(name string, rows [][]string, render func(io.Writer, [][]string) error) (*Result, error) {
	if err := os.MkdirAll(e.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var buf bytes.Buffer
	if err := render(&buf, rows); err != nil {
		return nil, err
	}

	path := filepath.Join(e.basePath, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return &Result{Path: path, Bytes: int64(buf.Len()), Rows: len(rows)}, nil
}

// stripPercent removes every "%" from each cell.
func stripPercent(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "%", "")
	}
	return out
}
