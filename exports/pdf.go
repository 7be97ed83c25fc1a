package exports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight   = 7.0
	pdfProblemCols = 30
)

// WritePDF формирует t постраничной таблицей. Полное представление идет в альбомной
// ориентации с сокращенными задачами, заголовок повторяется на каждой странице.
func WritePDF(w io.Writer, t Table, generatedAt time.Time) error {
	orientation := "P"
	header, rows := t.Header, t.Rows
	if t.View == ViewFull {
		orientation = "L"
		header, rows = pdfFullColumns(t)
	}

	pdf := fpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	left, _, right, bottom := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - left - right) / float64(len(header))

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(14, 22, tr(t.Title))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(14, 30, "Generated: "+generatedAt.Format("2006-01-02 15:04:05"))
	label := "Total Registrations"
	if t.View == ViewPayments {
		label = "Total Transactions"
	}
	pdf.Text(14, 38, fmt.Sprintf("%s: %d", label, len(rows)))
	pdf.SetY(45)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(233, 69, 96)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range header {
			pdf.CellFormat(colW, pdfRowHeight, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader()
	for _, row := range rows {
		if pdf.GetY()+pdfRowHeight > pageH-bottom {
			pdf.AddPage()
			drawHeader()
		}
		for _, cell := range row {
			pdf.CellFormat(colW, pdfRowHeight, fitText(pdf, tr(cell), colW-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// pdfFullColumns сужает полное представление до колонок, помещающихся на странице.
func pdfFullColumns(t Table) ([]string, [][]string) {
	header := []string{"Team", "Leader", "Email", "Phone", "Problem", "Transaction ID", "Date"}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, []string{r[0], r[1], r[2], r[3], shorten(r[6], pdfProblemCols), r[7], r[8]})
	}
	return header, rows
}

func shorten(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n]) + "..."
}

func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = strings.TrimRight(s[:len(s)-1], " ")
	}
	return s + "..."
}
