package materials_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/domain/materials"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		req       materials.CalcRequest
		coef      string
		waste     string
		perUnit   string
		withWaste string
		needed    int64
	}{
		{
			name:      "exact",
			req:       materials.CalcRequest{Quantity: 10, Param1: d("2"), Param2: d("3")},
			coef:      "1.5",
			waste:     "0",
			perUnit:   "9",
			withWaste: "9",
			needed:    90,
		},
		{
			name:      "waste rounds up",
			req:       materials.CalcRequest{Quantity: 3, Param1: d("1.2"), Param2: d("0.5")},
			coef:      "2.35",
			waste:     "0.007",
			perUnit:   "1.41",
			withWaste: "1.42",
			needed:    5, // 1.41*1.007*3 = 4.25961
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			res, err := materials.Calculate(tt.req, d(tt.coef), d(tt.waste))
			c.Assert(err, qt.IsNil)
			c.Assert(res.MaterialNeeded, qt.Equals, tt.needed)
			c.Assert(res.MaterialPerUnit.Equal(d(tt.perUnit)), qt.IsTrue, qt.Commentf("got %s", res.MaterialPerUnit))
			c.Assert(res.MaterialWithWaste.Equal(d(tt.withWaste)), qt.IsTrue, qt.Commentf("got %s", res.MaterialWithWaste))
		})
	}
}

func TestCalculateRejectsNonPositive(t *testing.T) {
	c := qt.New(t)

	bad := []materials.CalcRequest{
		{Quantity: 0, Param1: d("1"), Param2: d("1")},
		{Quantity: 1, Param1: d("0"), Param2: d("1")},
		{Quantity: 1, Param1: d("1"), Param2: d("-2")},
	}
	for _, req := range bad {
		_, err := materials.Calculate(req, d("1"), d("0.1"))
		c.Assert(err, qt.ErrorIs, materials.ErrNonPositive)
	}
}
