package reports

import (
	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/export"
)

// Tables: порядок таблиц в статистике.
var Tables = []string{"material_types", "product_types", "workshops", "products", "product_workshops"}

type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

type Statistics []TableCount

type TypeCount struct {
	ProductType string `json:"product_type_name"`
	Count       int64  `json:"count"`
}

type TypeAverage struct {
	ProductType string          `json:"product_type_name"`
	Average     decimal.Decimal `json:"avg_price"`
}

type PricedProduct struct {
	Name  string          `json:"product_name"`
	Price decimal.Decimal `json:"min_partner_price"`
}

func (t TableCount) Row() export.Row {
	return export.Row{{Name: "table", Value: t.Table}, {Name: "count", Value: t.Count}}
}

func (t TypeCount) Row() export.Row {
	return export.Row{{Name: "product_type_name", Value: t.ProductType}, {Name: "count", Value: t.Count}}
}

func (t TypeAverage) Row() export.Row {
	return export.Row{{Name: "product_type_name", Value: t.ProductType}, {Name: "avg_price", Value: t.Average}}
}

func (p PricedProduct) Row() export.Row {
	return export.Row{{Name: "product_name", Value: p.Name}, {Name: "min_partner_price", Value: p.Price}}
}
