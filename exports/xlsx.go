package exports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const headerColor = "E94560"

// WriteXLSX записывает t как книгу с одним листом, названным по представлению.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := t.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(t.Header))
	if err != nil {
		return fmt.Errorf("header width: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
