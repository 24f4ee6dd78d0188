package export

import (
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

func buildXLSX(sheet string, rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if sheet != "" {
		if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	sheet = f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, 0, len(rows[0]))
	for _, name := range Header(rows) {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, row := range rows {
		vals := make([]interface{}, len(header))
		for j := range vals {
			if j < len(row) {
				vals[j] = cellValue(row[j].Value)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func EncodeXLSX(w io.Writer, sheet string, rows []Row) error {
	if len(rows) == 0 {
		return ErrEmpty
	}
	f, err := buildXLSX(sheet, rows)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}

func WriteXLSX(path, sheet string, rows []Row) error {
	if len(rows) == 0 {
		return ErrEmpty
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeXLSX(out, sheet, rows); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return err
	}
	return out.Close()
}
