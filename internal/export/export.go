// Package export материализует результаты запросов в CSV и XLSX.
package export

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmpty: результат пуст, файл не создаётся.
var ErrEmpty = errors.New("export: empty result set")

type Field struct {
	Name  string
	Value any
}

// Row: упорядоченные пары «колонка: значение» одной записи.
type Row []Field

type Rower interface {
	Row() Row
}

func Rows[T Rower](items []T) []Row {
	out := make([]Row, 0, len(items))
	for _, it := range items {
		out = append(out, it.Row())
	}
	return out
}

// Header: имена полей первой строки.
func Header(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}
	h := make([]string, len(rows[0]))
	for i, f := range rows[0] {
		h[i] = f.Name
	}
	return h
}

const timeLayout = "2006-01-02 15:04:05"

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.String()
	case decimal.NullDecimal:
		if !x.Valid {
			return ""
		}
		return x.Decimal.String()
	case time.Time:
		return x.Format(timeLayout)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		if s, ok := v.(interface{ String() string }); ok {
			return s.String()
		}
		return ""
	}
}

// cellValue приводит значение к типу, который excelize пишет числом или датой.
func cellValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64()
	case decimal.NullDecimal:
		if !x.Valid {
			return nil
		}
		return x.Decimal.InexactFloat64()
	case nil, string, bool, int, int32, int64, float64, time.Time:
		return x
	default:
		return formatValue(v)
	}
}
