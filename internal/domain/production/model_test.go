package production_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/domain/production"
)

func TestTotalHours(t *testing.T) {
	c := qt.New(t)

	c.Assert(production.TotalHours(nil), qt.Equals, int64(0))

	as := []production.Assignment{
		{WorkshopName: "Столярный", Hours: decimal.RequireFromString("2.5")},
		{WorkshopName: "Покрасочный", Hours: decimal.RequireFromString("1.2")},
	}
	c.Assert(production.TotalHours(as), qt.Equals, int64(4))

	as = append(as, production.Assignment{Hours: decimal.RequireFromString("0.3")})
	c.Assert(production.TotalHours(as), qt.Equals, int64(4))
}

func TestAssignmentRow(t *testing.T) {
	c := qt.New(t)

	row := production.Assignment{WorkshopID: 3, WorkshopName: "Сборочный", StaffCount: 5}.Row()
	c.Assert(row[0].Name, qt.Equals, "workshop_id")
	c.Assert(row[3].Value, qt.Equals, 5)
}
