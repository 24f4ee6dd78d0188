package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/export"
)

type ProductType struct {
	ID          int64           `json:"product_type_id"`
	Name        string          `json:"product_type_name"`
	Coefficient decimal.Decimal `json:"type_coefficient"` // коэффициент типа продукции
	Style       string          `json:"style"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type NewProductType struct {
	Name        string
	Coefficient decimal.Decimal
	Style       string
	Description string
}

// Workshop: цех; используется и как представление для списков.
type Workshop struct {
	ID         int64     `json:"workshop_id"`
	Name       string    `json:"workshop_name"`
	Type       string    `json:"workshop_type"`
	StaffCount int       `json:"staff_count"`
	Location   string    `json:"location"`
	Equipment  string    `json:"equipment"`
	Active     bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type NewWorkshop struct {
	Name       string
	Type       string
	StaffCount int
	Location   string
	Equipment  string
}

func (p ProductType) Row() export.Row {
	return export.Row{
		{Name: "product_type_id", Value: p.ID},
		{Name: "product_type_name", Value: p.Name},
		{Name: "type_coefficient", Value: p.Coefficient},
		{Name: "style", Value: p.Style},
		{Name: "description", Value: p.Description},
		{Name: "created_at", Value: p.CreatedAt},
	}
}

func (w Workshop) Row() export.Row {
	return export.Row{
		{Name: "workshop_id", Value: w.ID},
		{Name: "workshop_name", Value: w.Name},
		{Name: "workshop_type", Value: w.Type},
		{Name: "staff_count", Value: w.StaffCount},
		{Name: "location", Value: w.Location},
		{Name: "equipment", Value: w.Equipment},
		{Name: "is_active", Value: w.Active},
		{Name: "created_at", Value: w.CreatedAt},
	}
}
