package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/furniture-db/internal/export"
)

// table: строки файла импорта с колонками по именам заголовка.
type table struct {
	file   string
	header map[string]int
	rows   [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// require проверяет, что все нужные колонки есть в заголовке.
func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing columns %s", t.file, strings.Join(missing, ", "))
	}
	return nil
}

var errNoFile = errors.New("import file not found")

// openTable ищет base.xlsx, затем base.csv в dir.
func openTable(dir, base string) (*table, error) {
	xlsx := filepath.Join(dir, base+".xlsx")
	if _, err := os.Stat(xlsx); err == nil {
		return readXLSX(xlsx)
	}
	csvPath := filepath.Join(dir, base+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		return readCSV(csvPath)
	}
	return nil, errNoFile
}

func readXLSX(path string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return newTable(filepath.Base(path), rows)
}

func readCSV(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(export.NewBOMReader(f))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return newTable(filepath.Base(path), rows)
}

func newTable(file string, rows [][]string) (*table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", file)
	}
	t := &table{file: file, header: make(map[string]int, len(rows[0]))}
	for i, h := range rows[0] {
		// в исходных файлах встречаются пробелы в конце заголовков
		t.header[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	t.rows = rows[1:]
	return t, nil
}
