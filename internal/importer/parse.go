package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var numberCleaner = strings.NewReplacer(" ", "", "\u00a0", "", ",", ".")

// parseDecimal понимает запятую как разделитель и пробелы между разрядами.
func parseDecimal(s string) (decimal.Decimal, error) {
	clean := numberCleaner.Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Decimal{}, fmt.Errorf("empty number")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

// parseFraction: "0,7%" -> 0.007, "0.007" -> 0.007.
func parseFraction(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		d, err := parseDecimal(strings.TrimSuffix(s, "%"))
		if err != nil {
			return d, err
		}
		return d.Div(decimal.NewFromInt(100)), nil
	}
	return parseDecimal(s)
}

func parseCount(s string) (int, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) || d.IsNegative() {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return int(d.IntPart()), nil
}

// normalizeArticle убирает хвост ".0", который даёт выгрузка числовой ячейки.
func normalizeArticle(s string) string {
	s = strings.TrimSpace(s)
	if head, ok := strings.CutSuffix(s, ".0"); ok {
		if _, err := strconv.ParseUint(head, 10, 64); err == nil {
			return head
		}
	}
	return s
}
