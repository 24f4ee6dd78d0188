package materials

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/export"
)

type MaterialType struct {
	ID          int64           `json:"material_type_id"`
	Name        string          `json:"material_type_name"`
	Waste       decimal.Decimal `json:"waste_percentage"` // доля потерь сырья, 0..1
	Ecological  bool            `json:"is_ecological"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type NewMaterialType struct {
	Name        string
	Waste       decimal.Decimal
	Ecological  bool
	Description string
}

func (m MaterialType) Row() export.Row {
	return export.Row{
		{Name: "material_type_id", Value: m.ID},
		{Name: "material_type_name", Value: m.Name},
		{Name: "waste_percentage", Value: m.Waste},
		{Name: "is_ecological", Value: m.Ecological},
		{Name: "description", Value: m.Description},
		{Name: "created_at", Value: m.CreatedAt},
	}
}
