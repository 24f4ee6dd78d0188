package products

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/dberr"
)

// Field: колонка products, которую разрешено менять через Update.
type Field string

const (
	FieldName         Field = "product_name"
	FieldArticle      Field = "article_number"
	FieldProductType  Field = "product_type_id"
	FieldMaterialType Field = "material_type_id"
	FieldPrice        Field = "min_partner_price"
	FieldDimensions   Field = "dimensions"
	FieldWeight       Field = "weight"
	FieldDescription  Field = "description"
	FieldAvailable    Field = "is_available"
)

type valueKind int

const (
	kindText valueKind = iota
	kindID
	kindMoney
	kindNullableDecimal
	kindBool
)

var updatable = map[Field]valueKind{
	FieldName:         kindText,
	FieldArticle:      kindText,
	FieldProductType:  kindID,
	FieldMaterialType: kindID,
	FieldPrice:        kindMoney,
	FieldDimensions:   kindText,
	FieldWeight:       kindNullableDecimal,
	FieldDescription:  kindText,
	FieldAvailable:    kindBool,
}

const opUpdate = "products.update"

// Fields: разрешённые для изменения поля в алфавитном порядке.
func Fields() []Field {
	out := make([]Field, 0, len(updatable))
	for f := range updatable {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ParseField(s string) (Field, error) {
	f := Field(strings.TrimSpace(s))
	if _, ok := updatable[f]; !ok {
		return "", dberr.New(opUpdate, dberr.KindMalformed, "unknown field %q", s)
	}
	return f, nil
}

// Changes: новые значения полей. Поля, которых нет в наборе, не меняются.
type Changes map[Field]any

// ParseChanges проверяет имена по белому списку и приводит значения к типам колонок.
func ParseChanges(raw map[string]any) (Changes, error) {
	if len(raw) == 0 {
		return nil, dberr.New(opUpdate, dberr.KindMalformed, "no fields to update")
	}
	out := make(Changes, len(raw))
	for name, v := range raw {
		f, err := ParseField(name)
		if err != nil {
			return nil, err
		}
		nv, err := coerce(f, v)
		if err != nil {
			return nil, err
		}
		out[f] = nv
	}
	return out, nil
}

// ParseAssignments разбирает пары вида field=value из командной строки.
func ParseAssignments(pairs []string) (Changes, error) {
	raw := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, dberr.New(opUpdate, dberr.KindMalformed, "expected field=value, got %q", p)
		}
		raw[strings.TrimSpace(k)] = v
	}
	return ParseChanges(raw)
}

func coerce(f Field, v any) (any, error) {
	bad := func() (any, error) {
		return nil, dberr.New(opUpdate, dberr.KindMalformed, "field %s: unexpected value %v (%T)", f, v, v)
	}

	switch updatable[f] {
	case kindText:
		s, ok := v.(string)
		if !ok {
			return bad()
		}
		if (f == FieldName || f == FieldArticle) && strings.TrimSpace(s) == "" {
			return bad()
		}
		return s, nil

	case kindID:
		id, ok := toInt64(v)
		if !ok || id <= 0 {
			return bad()
		}
		return id, nil

	case kindMoney:
		d, ok := toDecimal(v)
		if !ok || d.IsNegative() {
			return bad()
		}
		return d, nil

	case kindNullableDecimal:
		if v == nil {
			return decimal.NullDecimal{}, nil
		}
		if nd, ok := v.(decimal.NullDecimal); ok {
			return nd, nil
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return decimal.NullDecimal{}, nil
		}
		d, ok := toDecimal(v)
		if !ok || d.IsNegative() {
			return bad()
		}
		return decimal.NewNullDecimal(d), nil

	case kindBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(x))
			if err != nil {
				return bad()
			}
			return b, nil
		}
		return bad()
	}
	return bad()
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		n, err := x.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(x), ",", "."))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// buildUpdate собирает UPDATE только из переданных полей; updated_at обновляется всегда.
func buildUpdate(id int64, ch Changes) (string, []any, error) {
	if len(ch) == 0 {
		return "", nil, dberr.New(opUpdate, dberr.KindMalformed, "no fields to update")
	}

	fields := make([]Field, 0, len(ch))
	for f := range ch {
		if _, ok := updatable[f]; !ok {
			return "", nil, dberr.New(opUpdate, dberr.KindMalformed, "unknown field %q", string(f))
		}
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		v, err := coerce(f, ch[f])
		if err != nil {
			return "", nil, err
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", f, i+1))
		args = append(args, v)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	q := fmt.Sprintf("UPDATE products SET %s WHERE product_id = $%d", strings.Join(sets, ", "), len(args))
	return q, args, nil
}
