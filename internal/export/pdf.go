package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfBodySize   = 8
	pdfTitleSize  = 16
	pdfMarginSide = 14
	pdfMarginTop  = 20
	pdfTitleY     = 15
	pdfRowHeight  = 6
	pdfLineHeight = 4
)

// Column widths in millimetres; they add up to the A4 width minus margins.
var pdfColumnWidths = []float64{28, 36, 34, 28, 28, 28}

// WritePDF renders rows as a grid table under the report title. The title and
// the header row are repeated on every page.
func WritePDF(w io.Writer, rows [][]string) error {
	pdf := buildReport(rows)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

type report struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func buildReport(rows [][]string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ReportTitle, true)
	pdf.SetMargins(pdfMarginSide, pdfMarginTop, pdfMarginSide)
	pdf.SetAutoPageBreak(true, pdfMarginSide)
	r := &report{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(pdfFont, "", pdfTitleSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(pdfMarginSide, pdfTitleY, ReportTitle)

		pdf.SetXY(pdfMarginSide, pdfMarginTop)
		pdf.SetFont(pdfFont, "B", pdfBodySize)
		pdf.SetFillColor(26, 188, 156)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(255, 255, 255)
		r.drawRow(Headers, true)
	})

	pdf.AddPage()
	for _, row := range rows {
		pdf.SetFont(pdfFont, "", pdfBodySize)
		pdf.SetTextColor(80, 80, 80)
		pdf.SetDrawColor(200, 200, 200)

		cells := stripPercent(row)
		if r.rowHeight(cells) > r.spaceLeft() {
			pdf.AddPage()
			pdf.SetFont(pdfFont, "", pdfBodySize)
			pdf.SetTextColor(80, 80, 80)
			pdf.SetDrawColor(200, 200, 200)
		}
		r.drawRow(cells, false)
	}
	return pdf
}

// drawRow draws one table row at the current position. Cells that do not fit
// their column are wrapped; the row grows to its tallest cell.
func (r *report) drawRow(cells []string, fill bool) {
	wrapped := r.wrapRow(cells)
	height := r.heightOf(wrapped)

	style := "D"
	if fill {
		style = "FD"
	}
	left, y := r.pdf.GetXY()
	x := left
	for i, w := range pdfColumnWidths {
		r.pdf.Rect(x, y, w, height, style)
		for n, line := range wrapped[i] {
			r.pdf.SetXY(x, y+1+float64(n)*pdfLineHeight)
			r.pdf.CellFormat(w, pdfLineHeight, r.tr(line), "", 0, "L", false, 0, "")
		}
		x += w
	}
	r.pdf.SetXY(left, y+height)
}

func (r *report) rowHeight(cells []string) float64 {
	return r.heightOf(r.wrapRow(cells))
}

func (r *report) heightOf(wrapped [][]string) float64 {
	lines := 1
	for _, cell := range wrapped {
		if len(cell) > lines {
			lines = len(cell)
		}
	}
	return max(pdfRowHeight, float64(lines)*pdfLineHeight+2)
}

// spaceLeft is the height available above the bottom margin.
func (r *report) spaceLeft() float64 {
	_, pageHeight := r.pdf.GetPageSize()
	_, bottom := r.pdf.GetAutoPageBreak()
	return pageHeight - bottom - r.pdf.GetY()
}

func (r *report) wrapRow(cells []string) [][]string {
	out := make([][]string, len(pdfColumnWidths))
	for i, w := range pdfColumnWidths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		out[i] = r.wrap(text, w-2*r.pdf.GetCellMargin())
	}
	return out
}

// wrap breaks UTF-8 text into lines no wider than width, measured in the
// encoding the page is written with. Words longer than a line are split.
func (r *report) wrap(text string, width float64) []string {
	fits := func(s string) bool { return r.pdf.GetStringWidth(r.tr(s)) <= width }

	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if fits(candidate) {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		for !fits(word) {
			head := splitToFit(word, fits)
			lines = append(lines, head)
			word = strings.TrimPrefix(word, head)
		}
		line = word
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// splitToFit returns the longest rune prefix of word that fits, and at least
// one rune.
func splitToFit(word string, fits func(string) bool) string {
	runes := []rune(word)
	n := len(runes) - 1
	for n > 1 && !fits(string(runes[:n])) {
		n--
	}
	if n < 1 {
		n = 1
	}
	return string(runes[:n])
}
