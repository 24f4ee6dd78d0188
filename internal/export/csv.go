package export

import (
	"encoding/csv"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodeCSV пишет строки в UTF-8 с BOM, заголовок берётся из первой строки.
func EncodeCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return ErrEmpty
	}

	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)

	header := Header(rows)
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, row := range rows {
		for i := range rec {
			rec[i] = ""
			if i < len(row) {
				rec[i] = formatValue(row[i].Value)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

// WriteCSV создаёт файл path. Для пустого результата возвращает ErrEmpty
// и ничего не пишет.
func WriteCSV(path string, rows []Row) error {
	if len(rows) == 0 {
		return ErrEmpty
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(f, rows); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// NewBOMReader снимает ведущий BOM, если он есть.
func NewBOMReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}
