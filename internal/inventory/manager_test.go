package inventory_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/Spok95/furniture-db/internal/dberr"
	"github.com/Spok95/furniture-db/internal/domain/catalog"
	"github.com/Spok95/furniture-db/internal/domain/materials"
	"github.com/Spok95/furniture-db/internal/domain/production"
	"github.com/Spok95/furniture-db/internal/domain/products"
	"github.com/Spok95/furniture-db/internal/export"
	"github.com/Spok95/furniture-db/internal/infra/db/dbtest"
	"github.com/Spok95/furniture-db/internal/inventory"
)

type fixture struct {
	m     *inventory.Manager
	chair *catalog.ProductType
	table *catalog.ProductType
	oak   *materials.MaterialType
	pine  *materials.MaterialType
}

func setup(c *qt.C) *fixture {
	pool := dbtest.Open(c)
	m := inventory.New(pool, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	ctx := context.Background()

	f := &fixture{m: m}
	var err error
	f.chair, err = m.CreateProductType(ctx, catalog.NewProductType{Name: "Chair", Coefficient: dec("1.5")})
	c.Assert(err, qt.IsNil)
	f.table, err = m.CreateProductType(ctx, catalog.NewProductType{Name: "Table", Coefficient: dec("2.35")})
	c.Assert(err, qt.IsNil)
	f.oak, err = m.CreateMaterialType(ctx, materials.NewMaterialType{Name: "Oak", Waste: dec("0.008")})
	c.Assert(err, qt.IsNil)
	f.pine, err = m.CreateMaterialType(ctx, materials.NewMaterialType{Name: "Pine", Waste: dec("0.0055")})
	c.Assert(err, qt.IsNil)
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) add(c *qt.C, name, article string, pt *catalog.ProductType, mt *materials.MaterialType, price string) int64 {
	id, err := f.m.AddProduct(context.Background(), products.NewProduct{
		Name: name, Article: article, ProductTypeID: pt.ID, MaterialTypeID: mt.ID, MinPartnerPrice: dec(price),
	})
	c.Assert(err, qt.IsNil)
	return id
}

func (f *fixture) seedScenario(c *qt.C) {
	f.add(c, "Chair A", "CH-001", f.chair, f.oak, "100")
	f.add(c, "Chair B", "CH-002", f.chair, f.pine, "200")
	f.add(c, "Chair C", "CH-003", f.chair, f.oak, "300")
	f.add(c, "Dining table", "TB-001", f.table, f.oak, "500")
}

func ids(vs []products.View) []int64 {
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func count(c *qt.C, m *inventory.Manager, table string) int64 {
	stats, err := m.Statistics(context.Background())
	c.Assert(err, qt.IsNil)
	for _, s := range stats {
		if s.Table == table {
			return s.Count
		}
	}
	c.Fatalf("table %s missing from statistics", table)
	return 0
}

func TestAddProductThenListJoinsNames(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()

	pairs := []struct {
		pt *catalog.ProductType
		mt *materials.MaterialType
	}{{f.chair, f.oak}, {f.chair, f.pine}, {f.table, f.oak}, {f.table, f.pine}}
	for i, p := range pairs {
		f.add(c, "Item", "ART-"+string(rune('A'+i)), p.pt, p.mt, "10")
	}

	list, err := f.m.ListProducts(ctx, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, len(pairs))
	for i, p := range pairs {
		var found bool
		for _, v := range list {
			if v.Article == "ART-"+string(rune('A'+i)) {
				found = true
				c.Assert(v.ProductType, qt.Equals, p.pt.Name)
				c.Assert(v.MaterialType, qt.Equals, p.mt.Name)
			}
		}
		c.Assert(found, qt.IsTrue)
	}
}

func TestListProductsOrderAndLimit(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	f.seedScenario(c)

	all, err := f.m.ListProducts(ctx, 0)
	c.Assert(err, qt.IsNil)
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = v.Name
	}
	c.Assert(sort.StringsAreSorted(names), qt.IsTrue)

	two, err := f.m.ListProducts(ctx, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(ids(two), qt.DeepEquals, ids(all[:2]))
}

func TestDuplicateArticleIsConstraintViolation(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	f.add(c, "Chair A", "CH-001", f.chair, f.oak, "100")

	before := count(c, f.m, "products")
	_, err := f.m.AddProduct(ctx, products.NewProduct{
		Name: "Другой стул", Article: "CH-001", ProductTypeID: f.chair.ID, MaterialTypeID: f.oak.ID, MinPartnerPrice: dec("1"),
	})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindConstraint)
	c.Assert(count(c, f.m, "products"), qt.Equals, before)
}

func TestUnknownForeignKeyIsConstraintViolation(t *testing.T) {
	c := qt.New(t)
	f := setup(c)

	_, err := f.m.AddProduct(context.Background(), products.NewProduct{
		Name: "X", Article: "X-1", ProductTypeID: 9999, MaterialTypeID: f.oak.ID, MinPartnerPrice: dec("1"),
	})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindConstraint)
}

func TestUpdateChangesOnlyGivenField(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	id := f.add(c, "Chair A", "CH-001", f.chair, f.oak, "100")

	before, err := f.m.GetProduct(ctx, id)
	c.Assert(err, qt.IsNil)

	c.Assert(f.m.UpdateProduct(ctx, id, products.Changes{products.FieldPrice: dec("150")}), qt.IsNil)

	after, err := f.m.GetProduct(ctx, id)
	c.Assert(err, qt.IsNil)
	c.Assert(after.MinPartnerPrice.Equal(dec("150")), qt.IsTrue)
	c.Assert(after.Name, qt.Equals, before.Name)
	c.Assert(after.Article, qt.Equals, before.Article)
	c.Assert(after.ProductTypeID, qt.Equals, before.ProductTypeID)
	c.Assert(after.MaterialTypeID, qt.Equals, before.MaterialTypeID)
	c.Assert(after.Available, qt.Equals, before.Available)
	c.Assert(after.Description, qt.Equals, before.Description)
	c.Assert(after.CreatedAt.Equal(before.CreatedAt), qt.IsTrue)
	c.Assert(after.UpdatedAt.Before(before.UpdatedAt), qt.IsFalse)
}

func TestUpdateErrors(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	id := f.add(c, "Chair A", "CH-001", f.chair, f.oak, "100")
	f.add(c, "Chair B", "CH-002", f.chair, f.oak, "100")

	err := f.m.UpdateProduct(ctx, id, products.Changes{products.Field("no_such_column"): "x"})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindMalformed)

	err = f.m.UpdateProduct(ctx, id, products.Changes{})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindMalformed)

	err = f.m.UpdateProduct(ctx, id, products.Changes{products.FieldArticle: "CH-002"})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindConstraint)

	err = f.m.UpdateProduct(ctx, 424242, products.Changes{products.FieldName: "Ghost"})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindNotFound)
}

func TestSearchIsSubsetAndComplete(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	f.seedScenario(c)
	f.add(c, "Кресло офисное", "OFF-100", f.chair, f.pine, "700")
	f.add(c, "Stool 100%", "ST_1", f.chair, f.pine, "50")

	all, err := f.m.ListProducts(ctx, 0)
	c.Assert(err, qt.IsNil)

	for _, term := range []string{"chair", "CH-00", "tb", "офис", "100%", "_", "absent"} {
		got, err := f.m.SearchProducts(ctx, term)
		c.Assert(err, qt.IsNil)

		want := []int64{}
		for _, v := range all {
			lt := strings.ToLower(term)
			if strings.Contains(strings.ToLower(v.Name), lt) || strings.Contains(strings.ToLower(v.Article), lt) {
				want = append(want, v.ID)
			}
		}
		c.Assert(ids(got), qt.DeepEquals, want, qt.Commentf("term %q", term))
	}
}

func TestTopExpensiveIsPrefixOfPriceOrder(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	f.seedScenario(c)
	f.add(c, "Bench", "BN-1", f.table, f.pine, "300")

	all, err := f.m.ListProducts(ctx, 0)
	c.Assert(err, qt.IsNil)
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].MinPartnerPrice.Equal(all[j].MinPartnerPrice) {
			return all[i].MinPartnerPrice.GreaterThan(all[j].MinPartnerPrice)
		}
		return all[i].Name < all[j].Name
	})

	for _, n := range []int{0, 1, 3, 10} {
		top, err := f.m.TopExpensiveProducts(ctx, n)
		c.Assert(err, qt.IsNil)
		want := n
		if want > len(all) {
			want = len(all)
		}
		c.Assert(top, qt.HasLen, want)
		for i, p := range top {
			c.Assert(p.Name, qt.Equals, all[i].Name)
			c.Assert(p.Price.Equal(all[i].MinPartnerPrice), qt.IsTrue)
		}
	}
}

func TestAggregatesScenario(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	f.seedScenario(c)

	// недоступный продукт тоже входит в среднее
	id := f.add(c, "Chair D", "CH-004", f.chair, f.oak, "200")
	c.Assert(f.m.UpdateProduct(ctx, id, products.Changes{products.FieldAvailable: false}), qt.IsNil)

	byType, err := f.m.ProductsByType(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(len(byType), qt.Equals, 2)
	c.Assert(byType[0].ProductType, qt.Equals, "Chair")
	c.Assert(byType[0].Count, qt.Equals, int64(4))
	c.Assert(byType[1].ProductType, qt.Equals, "Table")
	c.Assert(byType[1].Count, qt.Equals, int64(1))

	avg, err := f.m.AveragePriceByType(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(len(avg), qt.Equals, 2)
	c.Assert(avg[0].ProductType, qt.Equals, "Table")
	c.Assert(avg[0].Average.Equal(dec("500")), qt.IsTrue)
	c.Assert(avg[1].ProductType, qt.Equals, "Chair")
	c.Assert(avg[1].Average.Equal(dec("200")), qt.IsTrue)
}

func TestStatisticsFixedOrder(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	f.seedScenario(c)

	stats, err := f.m.Statistics(context.Background())
	c.Assert(err, qt.IsNil)
	tables := make([]string, len(stats))
	for i, s := range stats {
		tables[i] = s.Table
	}
	c.Assert(tables, qt.DeepEquals, []string{"material_types", "product_types", "workshops", "products", "product_workshops"})
	c.Assert(stats[3].Count, qt.Equals, int64(4))
}

func TestDeleteCascadesToWorkshopLinks(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()

	ws, err := f.m.CreateWorkshop(ctx, catalog.NewWorkshop{Name: "Сборочный", Type: "Сборка", StaffCount: 5})
	c.Assert(err, qt.IsNil)
	ws2, err := f.m.CreateWorkshop(ctx, catalog.NewWorkshop{Name: "Покрасочный", Type: "Покраска", StaffCount: 3})
	c.Assert(err, qt.IsNil)

	a := f.add(c, "Chair A", "CH-001", f.chair, f.oak, "100")
	b := f.add(c, "Chair B", "CH-002", f.chair, f.oak, "100")
	for _, pid := range []int64{a, b} {
		_, err := f.m.AddLink(ctx, production.NewLink{ProductID: pid, WorkshopID: ws.ID, Hours: dec("1.5")})
		c.Assert(err, qt.IsNil)
		_, err = f.m.AddLink(ctx, production.NewLink{ProductID: pid, WorkshopID: ws2.ID, Hours: dec("2.2")})
		c.Assert(err, qt.IsNil)
	}
	c.Assert(count(c, f.m, "product_workshops"), qt.Equals, int64(4))

	c.Assert(f.m.DeleteProduct(ctx, a), qt.IsNil)
	c.Assert(count(c, f.m, "product_workshops"), qt.Equals, int64(2))

	left, err := f.m.ProductWorkshops(ctx, a)
	c.Assert(err, qt.IsNil)
	c.Assert(left, qt.HasLen, 0)

	c.Assert(f.m.DeleteProduct(ctx, b), qt.IsNil)
	c.Assert(count(c, f.m, "product_workshops"), qt.Equals, int64(0))

	err = f.m.DeleteProduct(ctx, a)
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindNotFound)
}

func TestProductionTimeAndWorkshopOrder(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()

	ws1, err := f.m.CreateWorkshop(ctx, catalog.NewWorkshop{Name: "Раскрой", Type: "Обработка", StaffCount: 2})
	c.Assert(err, qt.IsNil)
	ws2, err := f.m.CreateWorkshop(ctx, catalog.NewWorkshop{Name: "Сборка", Type: "Сборка", StaffCount: 4})
	c.Assert(err, qt.IsNil)

	id := f.add(c, "Chair A", "CH-001", f.chair, f.oak, "100")
	_, err = f.m.AddLink(ctx, production.NewLink{ProductID: id, WorkshopID: ws1.ID, Hours: dec("0.7")})
	c.Assert(err, qt.IsNil)
	_, err = f.m.AddLink(ctx, production.NewLink{ProductID: id, WorkshopID: ws2.ID, Hours: dec("2.1")})
	c.Assert(err, qt.IsNil)

	pt, err := f.m.ProductionTime(ctx, id)
	c.Assert(err, qt.IsNil)
	c.Assert(pt.TotalHours, qt.Equals, int64(3))
	c.Assert(pt.Workshops, qt.HasLen, 2)
	c.Assert(pt.Workshops[0].WorkshopName, qt.Equals, "Сборка")

	rows, err := f.m.ProductsWithWorkshops(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 2)
	c.Assert(rows[0].WorkshopName, qt.Equals, "Раскрой")
}

func TestCalculateMaterial(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()

	res, err := f.m.CalculateMaterial(ctx, materials.CalcRequest{
		ProductTypeID: f.chair.ID, MaterialTypeID: f.oak.ID, Quantity: 10, Param1: dec("2"), Param2: dec("3"),
	})
	c.Assert(err, qt.IsNil)
	// 2*3*1.5*1.008*10 = 90.72
	c.Assert(res.MaterialNeeded, qt.Equals, int64(91))

	_, err = f.m.CalculateMaterial(ctx, materials.CalcRequest{
		ProductTypeID: 9999, MaterialTypeID: f.oak.ID, Quantity: 1, Param1: dec("1"), Param2: dec("1"),
	})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindNotFound)

	_, err = f.m.CalculateMaterial(ctx, materials.CalcRequest{
		ProductTypeID: f.chair.ID, MaterialTypeID: f.oak.ID, Quantity: 1, Param1: dec("0"), Param2: dec("1"),
	})
	c.Assert(dberr.KindOf(err), qt.Equals, dberr.KindMalformed)
}

func TestCreateIsIdempotentByName(t *testing.T) {
	c := qt.New(t)
	f := setup(c)

	again, err := f.m.CreateProductType(context.Background(), catalog.NewProductType{Name: "Chair", Coefficient: dec("9")})
	c.Assert(err, qt.IsNil)
	c.Assert(again.ID, qt.Equals, f.chair.ID)
	c.Assert(again.Coefficient.Equal(dec("1.5")), qt.IsTrue)
}

func TestExportEmptyWritesNothing(t *testing.T) {
	c := qt.New(t)
	f := setup(c)
	ctx := context.Background()
	dir := c.TempDir()

	path := filepath.Join(dir, "products.csv")
	err := f.m.ExportCSV(ctx, inventory.DatasetProducts, path)
	c.Assert(err, qt.ErrorIs, export.ErrEmpty)
	_, statErr := os.Stat(path)
	c.Assert(os.IsNotExist(statErr), qt.IsTrue)

	f.seedScenario(c)
	written, err := f.m.ExportAll(ctx, dir)
	c.Assert(err, qt.IsNil)
	// цехов и назначений нет, выгружаются только продукты
	c.Assert(written, qt.DeepEquals, []string{filepath.Join(dir, "products_export.csv")})
}
