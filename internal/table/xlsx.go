package table

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX persists the table as a single-sheet workbook for spreadsheet
// consumers. Column order matches WriteCSV.
func (t *Table) WriteXLSX(path, sheetName string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "table: create directory %s", dir)
		}
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "table: add sheet %s", sheetName)
	}

	header := sheet.AddRow()
	for _, c := range t.cols {
		header.AddCell().Value = c
	}
	for _, row := range t.rows {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().SetFloat(v)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "table: save %s", path)
	}
	return nil
}
