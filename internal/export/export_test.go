package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func sampleRows() [][]string {
	return [][]string{
		{"AAPL", "Gap Up", "Bullish", "5%", "2%", "1%"},
		{"NIFTY50", "flat open", "up trend", "61.54%", "23.08%", "15.38%"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "Symbol,Opening Scenario,Trend Observed,Upward Close (%),Downward Close (%),Flat Close (%)" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "AAPL,Gap Up,Bullish,5,2,1" {
		t.Fatalf("first row = %q", lines[1])
	}
	if lines[2] != "NIFTY50,flat open,up trend,61.54,23.08,15.38" {
		t.Fatalf("second row = %q", lines[2])
	}
	if !strings.HasSuffix(buf.String(), "\n") || len(lines) != 4 {
		t.Fatalf("expected newline-terminated lines, got %q", buf.String())
	}
}

func TestWriteCSVDoesNotQuote(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"BRK,B", "gap \"up\"", "x", "1%%", "2", "3"}}
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[1] != `BRK,B,gap "up",x,1,2,3` {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("expected only the header line, got %q", buf.String())
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleRows()); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:16])
	}
}

func TestReportLayout(t *testing.T) {
	pdf := buildReport(sampleRows())
	pdf.SetCompression(false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"(Market Analysis Report) Tj", "(Upward Close \\(%\\)) Tj", "(61.54) Tj"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in page content", want)
		}
	}
	if strings.Contains(out, "(61.54%) Tj") {
		t.Fatalf("body cells must have %% stripped")
	}
}

func TestReportPaginates(t *testing.T) {
	rows := make([][]string, 120)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("SYM%03d", i), "flat open", "indecisive", "1%", "2%", "3%"}
	}
	pdf := buildReport(rows)
	if pdf.PageNo() < 2 {
		t.Fatalf("expected several pages for %d rows, got %d", len(rows), pdf.PageNo())
	}
	if err := pdf.Error(); err != nil {
		t.Fatalf("pdf error: %v", err)
	}
}

func TestExporterWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	exp := NewExporter(dir)

	csvResult, err := exp.CSV(sampleRows())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if filepath.Base(csvResult.Path) != CSVFileName {
		t.Fatalf("csv path = %s", csvResult.Path)
	}
	data, err := os.ReadFile(csvResult.Path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if int64(len(data)) != csvResult.Bytes || csvResult.Rows != 2 {
		t.Fatalf("unexpected result %+v for %d bytes", csvResult, len(data))
	}

	pdfResult, err := exp.PDF(sampleRows())
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if filepath.Base(pdfResult.Path) != PDFFileName {
		t.Fatalf("pdf path = %s", pdfResult.Path)
	}
	if info, err := os.Stat(pdfResult.Path); err != nil || info.Size() == 0 {
		t.Fatalf("pdf not written: %v", err)
	}
}

// shownText joins the strings drawn on the page in drawing order.
func shownText(t *testing.T, rows [][]string) string {
	t.Helper()
	pdf := buildReport(rows)
	pdf.SetCompression(false)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	var parts []string
	for _, m := range shownRe.FindAllSubmatch(buf.Bytes(), -1) {
		parts = append(parts, string(m[1]))
	}
	return strings.Join(parts, " ")
}

var shownRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\) Tj`)

func TestReportWrapsLongCells(t *testing.T) {
	scenario := "Gap Up Above Previous High then Closed Below Open Price"
	if len(scenario) < 54 {
		t.Fatalf("scenario too short: %d", len(scenario))
	}
	rows := [][]string{{"NIFTY50", scenario, "Down Trend or Indecisive", "10%", "20%", "70%"}}

	got := shownText(t, rows)
	for _, want := range []string{scenario, "Down Trend or Indecisive", "NIFTY50", "70"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "...") {
		t.Fatalf("cell was truncated: %q", got)
	}
}

func TestWrapKeepsNonASCII(t *testing.T) {
	r := &report{pdf: buildReport(nil)}
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
	r.pdf.SetFont(pdfFont, "", pdfBodySize)

	long := strings.Repeat("é", 40)
	width := pdfColumnWidths[1] - 2*r.pdf.GetCellMargin()
	lines := r.wrap(long, width)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	if joined := strings.Join(lines, ""); joined != long {
		t.Fatalf("wrapped text changed: %q", joined)
	}
	for _, line := range lines {
		if strings.ContainsRune(line, '\uFFFD') {
			t.Fatalf("replacement rune in %q", line)
		}
		if w := r.pdf.GetStringWidth(r.tr(line)); w > width {
			t.Fatalf("line %q is %.2fmm, limit %.2fmm", line, w, width)
		}
	}

	pdf := buildReport([][]string{{"CAC", long, "x", "1%", "2%", "3%"}})
	pdf.SetCompression(false)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if n := bytes.Count(buf.Bytes(), []byte{0xe9}); n < 40 {
		t.Fatalf("expected 40 encoded characters, found %d", n)
	}
}

func TestWrapShortText(t *testing.T) {
	r := &report{pdf: buildReport(nil)}
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
	r.pdf.SetFont(pdfFont, "", pdfBodySize)

	if got := r.wrap("GOLD", 26); len(got) != 1 || got[0] != "GOLD" {
		t.Fatalf("short text changed: %q", got)
	}
	if got := r.wrap("", 26); len(got) != 1 || got[0] != "" {
		t.Fatalf("empty cell: %q", got)
	}
}
