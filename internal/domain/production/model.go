package production

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/export"
)

// Link: назначение продукта на цех.
type Link struct {
	ID         int64
	ProductID  int64
	WorkshopID int64
	Hours      decimal.Decimal
	Priority   int
	Notes      string
	CreatedAt  time.Time
}

type NewLink struct {
	ProductID  int64
	WorkshopID int64
	Hours      decimal.Decimal
	Priority   int
	Notes      string
}

// ProductWorkshop: строка отчёта «продукция по цехам».
type ProductWorkshop struct {
	ProductName  string          `json:"product_name"`
	WorkshopName string          `json:"workshop_name"`
	WorkshopType string          `json:"workshop_type"`
	Hours        decimal.Decimal `json:"production_time_hours"`
}

func (p ProductWorkshop) Row() export.Row {
	return export.Row{
		{Name: "product_name", Value: p.ProductName},
		{Name: "workshop_name", Value: p.WorkshopName},
		{Name: "workshop_type", Value: p.WorkshopType},
		{Name: "production_time_hours", Value: p.Hours},
	}
}

// Assignment: цех, в котором изготавливается конкретный продукт.
type Assignment struct {
	WorkshopID   int64           `json:"workshop_id"`
	WorkshopName string          `json:"workshop_name"`
	WorkshopType string          `json:"workshop_type"`
	StaffCount   int             `json:"staff_count"`
	Hours        decimal.Decimal `json:"production_time_hours"`
}

func (a Assignment) Row() export.Row {
	return export.Row{
		{Name: "workshop_id", Value: a.WorkshopID},
		{Name: "workshop_name", Value: a.WorkshopName},
		{Name: "workshop_type", Value: a.WorkshopType},
		{Name: "staff_count", Value: a.StaffCount},
		{Name: "production_time_hours", Value: a.Hours},
	}
}

type Time struct {
	ProductID  int64        `json:"product_id"`
	Workshops  []Assignment `json:"workshops"`
	TotalHours int64        `json:"total_production_time"`
}

// TotalHours: сумма часов по цехам, округлённая вверх до целого часа.
func TotalHours(as []Assignment) int64 {
	sum := decimal.Zero
	for _, a := range as {
		sum = sum.Add(a.Hours)
	}
	return sum.Ceil().IntPart()
}
