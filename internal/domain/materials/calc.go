package materials

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNonPositive = errors.New("quantity and parameters must be positive")

type CalcRequest struct {
	ProductTypeID  int64           `json:"product_type_id" validate:"required,gt=0"`
	MaterialTypeID int64           `json:"material_type_id" validate:"required,gt=0"`
	Quantity       int64           `json:"quantity" validate:"required,gt=0"`
	Param1         decimal.Decimal `json:"param1"`
	Param2         decimal.Decimal `json:"param2"`
}

type CalcResult struct {
	ProductTypeID     int64           `json:"product_type_id"`
	MaterialTypeID    int64           `json:"material_type_id"`
	Quantity          int64           `json:"quantity"`
	TypeCoefficient   decimal.Decimal `json:"type_coefficient"`
	WastePercentage   decimal.Decimal `json:"waste_percentage"`
	MaterialPerUnit   decimal.Decimal `json:"material_per_unit"`
	MaterialWithWaste decimal.Decimal `json:"material_with_waste"`
	MaterialNeeded    int64           `json:"material_needed"`
}

// Calculate считает сырьё на партию: param1*param2*коэффициент на единицу,
// плюс доля потерь, итог округляется вверх до целого.
func Calculate(req CalcRequest, coefficient, waste decimal.Decimal) (CalcResult, error) {
	if req.Quantity <= 0 || !req.Param1.IsPositive() || !req.Param2.IsPositive() {
		return CalcResult{}, ErrNonPositive
	}

	perUnit := req.Param1.Mul(req.Param2).Mul(coefficient)
	withWaste := perUnit.Mul(decimal.NewFromInt(1).Add(waste))
	total := withWaste.Mul(decimal.NewFromInt(req.Quantity)).Ceil()

	return CalcResult{
		ProductTypeID:     req.ProductTypeID,
		MaterialTypeID:    req.MaterialTypeID,
		Quantity:          req.Quantity,
		TypeCoefficient:   coefficient,
		WastePercentage:   waste,
		MaterialPerUnit:   perUnit.Round(2),
		MaterialWithWaste: withWaste.Round(2),
		MaterialNeeded:    total.IntPart(),
	}, nil
}
