// Package sheet exports cards to XLSX workbooks and imports them back, one
// card per row in the TSV column layout.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/model"
)

// SheetName is the worksheet holding the cards.
const SheetName = "Cards"

// ImportResult holds the result of an import.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Errors         []string
}

// Export writes cards to a new workbook at path. Dates are relative to
// today, as in the TSV rows.
func Export(path string, cards []model.Card, today date.Date) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetName)

	header := make([]any, len(model.TSVColumns))
	for i, c := range model.TSVColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range cards {
		fields := model.TSVFields(&cards[i], today)
		row := make([]any, len(fields))
		for j, v := range fields {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Import reads the cards of the workbook at path. The first row is a header.
// Rows that fail to parse are reported in the result and skipped.
func Import(path string, today date.Date) ([]model.Card, *ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	var cards []model.Card
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		result.TotalProcessed++

		card, err := model.ParseTSVFields(row, today)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		cards = append(cards, card)
		result.Imported++
	}
	return cards, result, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
