// Package exports превращает отфильтрованный список регистраций в табличные
// выгрузки XLSX, PDF и CSV, а также в лист Google Sheets.
package exports

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/hackfest/models"
)

var (
	ErrUnknownView   = errors.New("unknown export view")
	ErrUnknownFormat = errors.New("unknown export format")
)

// View задает набор колонок.
type View string

const (
	ViewFull     View = "full"
	ViewPayments View = "payments"
)

// Format задает тип файла.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
)

const dateLayout = "2006-01-02"

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewFull, nil
	case ViewFull, ViewPayments:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatPDF, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Table - готовая проекция регистраций.
type Table struct {
	View      View
	Title     string
	SheetName string
	Header    []string
	Rows      [][]string
}

// Build раскладывает записи по колонкам view, порядок записей сохраняется.
func Build(view View, records []*models.Registration) (Table, error) {
	switch view {
	case ViewFull:
		t := Table{
			View:      view,
			Title:     "Hackathon Registrations",
			SheetName: "Registrations",
			Header: []string{"Team Name", "Leader Name", "Email", "Phone", "Team Size",
				"Team Members", "Problem Statement", "Transaction ID", "Submitted At"},
			Rows: make([][]string, 0, len(records)),
		}
		for _, r := range records {
			t.Rows = append(t.Rows, []string{
				r.TeamName,
				r.Name,
				r.Email,
				r.Phone,
				strconv.Itoa(r.TeamSize),
				formatMembers(r.TeamMembers),
				r.SelectedProblem,
				r.PaymentReference,
				formatDate(r.SubmittedAt),
			})
		}
		return t, nil
	case ViewPayments:
		t := Table{
			View:      view,
			Title:     "Transaction IDs Report",
			SheetName: "Transactions",
			Header:    []string{"Team Name", "Leader Name", "Transaction ID", "Submitted At"},
			Rows:      make([][]string, 0, len(records)),
		}
		for _, r := range records {
			t.Rows = append(t.Rows, []string{r.TeamName, r.Name, r.PaymentReference, formatDate(r.SubmittedAt)})
		}
		return t, nil
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}

// FileName возвращает имя файла для представления в заданном формате.
func FileName(view View, format Format) string {
	base := "hackathon_registrations"
	if view == ViewPayments {
		base = "transaction_ids"
	}
	return base + "." + string(format)
}

func ContentType(format Format) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Write записывает t в w в заданном формате.
func Write(w io.Writer, format Format, t Table, generatedAt time.Time) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatPDF:
		return WritePDF(w, t, generatedAt)
	case FormatCSV:
		return WriteCSV(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func formatMembers(members []models.TeamMember) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, fmt.Sprintf("%s (%s)", m.Name, m.Email))
	}
	return strings.Join(parts, "; ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(dateLayout)
}
