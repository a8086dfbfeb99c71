// Package export writes the saved-recipes list to a spreadsheet.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/abelbrown/opskrifter/internal/saved"
)

// Sheet is the worksheet the list is written to.
const Sheet = "Sheet1"

// Header is the first row of the sheet.
var Header = []interface{}{"position", "title", "url", "image"}

// WriteXLSX writes items to path, one row per item in list order.
func WriteXLSX(path string, items []saved.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(Sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetRow("A1", Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, it := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		row := []interface{}{i + 1, it.Title, it.URL, it.Image}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return f.SaveAs(path)
}
