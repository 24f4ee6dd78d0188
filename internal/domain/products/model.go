package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/export"
)

type Product struct {
	ID              int64               `json:"product_id"`
	Name            string              `json:"product_name"`
	Article         string              `json:"article_number"`
	ProductTypeID   int64               `json:"product_type_id"`
	MaterialTypeID  int64               `json:"material_type_id"`
	MinPartnerPrice decimal.Decimal     `json:"min_partner_price"`
	Dimensions      string              `json:"dimensions"`
	Weight          decimal.NullDecimal `json:"weight"`
	Description     string              `json:"description"`
	Available       bool                `json:"is_available"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type NewProduct struct {
	Name            string          `json:"product_name" validate:"required"`
	Article         string          `json:"article_number" validate:"required"`
	ProductTypeID   int64           `json:"product_type_id" validate:"required,gt=0"`
	MaterialTypeID  int64           `json:"material_type_id" validate:"required,gt=0"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price"`
	Dimensions      string          `json:"dimensions"`
	Description     string          `json:"description"`
}

// View: продукт с названиями типа и материала, для списков и выгрузки.
type View struct {
	ID              int64           `json:"product_id"`
	Name            string          `json:"product_name"`
	Article         string          `json:"article_number"`
	ProductType     string          `json:"product_type_name"`
	MaterialType    string          `json:"material_type_name"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price"`
	Available       bool            `json:"is_available"`
}

func (v View) Row() export.Row {
	return export.Row{
		{Name: "product_id", Value: v.ID},
		{Name: "product_name", Value: v.Name},
		{Name: "article_number", Value: v.Article},
		{Name: "product_type_name", Value: v.ProductType},
		{Name: "material_type_name", Value: v.MaterialType},
		{Name: "min_partner_price", Value: v.MinPartnerPrice},
		{Name: "is_available", Value: v.Available},
	}
}

func (p Product) Row() export.Row {
	return export.Row{
		{Name: "product_id", Value: p.ID},
		{Name: "product_name", Value: p.Name},
		{Name: "article_number", Value: p.Article},
		{Name: "product_type_id", Value: p.ProductTypeID},
		{Name: "material_type_id", Value: p.MaterialTypeID},
		{Name: "min_partner_price", Value: p.MinPartnerPrice},
		{Name: "dimensions", Value: p.Dimensions},
		{Name: "weight", Value: p.Weight},
		{Name: "description", Value: p.Description},
		{Name: "is_available", Value: p.Available},
		{Name: "created_at", Value: p.CreatedAt},
		{Name: "updated_at", Value: p.UpdatedAt},
	}
}
