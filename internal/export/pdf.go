package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"outlay/internal/core"
)

// Tabular layout constants. A4 portrait in points; fixed row height with the
// column header redrawn at the top of every page.
const (
	pageWidth  = 595.28
	pageHeight = 841.89

	tableLeft   = 40.0
	titleY      = 50.0
	firstPageY  = 90.0
	nextPagesY  = 60.0
	rowHeight   = 14.0
	headerGap   = 6.0
	titleSize   = 20.0
	headerSize  = 12.0
	rowSize     = 10.0

	titleMaxLen = 28
	notesMaxLen = 30
)

var (
	pdfColumns   = []string{"Title", "Amount", "Category", "Date", "Notes"}
	columnWidths = []float64{150, 70, 90, 80, 150}
)

// RowsPerPage is the fixed data-row budget of one page.
func RowsPerPage() int {
	usable := float64(pageHeight - 120)
	return int(usable / rowHeight)
}

// ToPDF renders the filtered set as a paginated table. Page one carries the
// report title; every page repeats the column header row.
func ToPDF(items []core.Expense) ([]byte, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	// Pin the metadata clock so identical input yields identical bytes.
	doc.SetCreationDate(time.Unix(0, 0))
	doc.SetModificationDate(time.Unix(0, 0))
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "", titleSize)
	doc.SetTextColor(18, 242, 237)
	doc.Text(tableLeft, titleY, "Expenses Report")

	y := firstPageY
	drawRow(doc, tr, pdfColumns, headerSize, y, true)
	y += rowHeight + headerGap

	maxRows := RowsPerPage()
	rowCount := 0
	for _, e := range items {
		if rowCount >= maxRows {
			rowCount = 0
			doc.AddPage()
			y = nextPagesY
			drawRow(doc, tr, pdfColumns, headerSize, y, true)
			y += rowHeight + headerGap
		}
		drawRow(doc, tr, rowCells(e), rowSize, y, false)
		y += rowHeight
		rowCount++
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &ExportError{Format: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

func rowCells(e core.Expense) []string {
	notes := e.Notes
	if notes == "" {
		notes = "-"
	}
	return []string{
		truncate(e.Title, titleMaxLen),
		fmt.Sprintf("%.2f", e.Amount),
		e.Category,
		shortDate(e),
		truncate(notes, notesMaxLen),
	}
}

func drawRow(doc *fpdf.Fpdf, tr func(string) string, cells []string, size float64, y float64, header bool) {
	doc.SetFont("Helvetica", "", size)
	if header {
		doc.SetTextColor(102, 178, 229)
	} else {
		doc.SetTextColor(217, 217, 217)
	}
	x := tableLeft
	for i, c := range cells {
		doc.Text(x, y, tr(c))
		x += columnWidths[i]
	}
}

// truncate limits s to max characters, replacing the tail with an ellipsis
// when it would overflow the fixed column width.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func shortDate(e core.Expense) string {
	return e.Date.Format("1/2/2006")
}
