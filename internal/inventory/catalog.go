package inventory

import (
	"context"
	"errors"

	"github.com/Spok95/furniture-db/internal/dberr"
	"github.com/Spok95/furniture-db/internal/domain/catalog"
	"github.com/Spok95/furniture-db/internal/domain/materials"
)

func (m *Manager) ListProductTypes(ctx context.Context) ([]catalog.ProductType, error) {
	return call(m, ctx, "list_product_types", m.catalog.ListProductTypes)
}

func (m *Manager) ListMaterialTypes(ctx context.Context) ([]materials.MaterialType, error) {
	return call(m, ctx, "list_material_types", m.materials.List)
}

// ListWorkshops: цеха по типу, затем по названию.
func (m *Manager) ListWorkshops(ctx context.Context) ([]catalog.Workshop, error) {
	return call(m, ctx, "list_workshops", m.catalog.ListWorkshops)
}

func (m *Manager) CreateProductType(ctx context.Context, in catalog.NewProductType) (*catalog.ProductType, error) {
	return call(m, ctx, "create_product_type", func(ctx context.Context) (*catalog.ProductType, error) {
		return m.catalog.CreateProductType(ctx, in)
	})
}

func (m *Manager) CreateMaterialType(ctx context.Context, in materials.NewMaterialType) (*materials.MaterialType, error) {
	return call(m, ctx, "create_material_type", func(ctx context.Context) (*materials.MaterialType, error) {
		return m.materials.Create(ctx, in)
	})
}

func (m *Manager) CreateWorkshop(ctx context.Context, in catalog.NewWorkshop) (*catalog.Workshop, error) {
	return call(m, ctx, "create_workshop", func(ctx context.Context) (*catalog.Workshop, error) {
		return m.catalog.CreateWorkshop(ctx, in)
	})
}

// ProductTypeByName и другие поиски по имени возвращают nil без ошибки, если записи нет.
func (m *Manager) ProductTypeByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	return call(m, ctx, "product_type_by_name", func(ctx context.Context) (*catalog.ProductType, error) {
		return m.catalog.GetProductTypeByName(ctx, name)
	})
}

func (m *Manager) MaterialTypeByName(ctx context.Context, name string) (*materials.MaterialType, error) {
	return call(m, ctx, "material_type_by_name", func(ctx context.Context) (*materials.MaterialType, error) {
		return m.materials.GetByName(ctx, name)
	})
}

func (m *Manager) WorkshopByName(ctx context.Context, name string) (*catalog.Workshop, error) {
	return call(m, ctx, "workshop_by_name", func(ctx context.Context) (*catalog.Workshop, error) {
		return m.catalog.GetWorkshopByName(ctx, name)
	})
}

// CalculateMaterial: сырьё на партию продукции с учётом коэффициента типа и потерь.
func (m *Manager) CalculateMaterial(ctx context.Context, req materials.CalcRequest) (materials.CalcResult, error) {
	const op = "materials.calculate"
	return call(m, ctx, "calculate_material", func(ctx context.Context) (materials.CalcResult, error) {
		pt, err := m.catalog.GetProductTypeByID(ctx, req.ProductTypeID)
		if err != nil {
			return materials.CalcResult{}, err
		}
		if pt == nil {
			return materials.CalcResult{}, dberr.New(op, dberr.KindNotFound, "product type %d not found", req.ProductTypeID)
		}
		mt, err := m.materials.GetByID(ctx, req.MaterialTypeID)
		if err != nil {
			return materials.CalcResult{}, err
		}
		if mt == nil {
			return materials.CalcResult{}, dberr.New(op, dberr.KindNotFound, "material type %d not found", req.MaterialTypeID)
		}

		res, err := materials.Calculate(req, pt.Coefficient, mt.Waste)
		if errors.Is(err, materials.ErrNonPositive) {
			return materials.CalcResult{}, &dberr.Error{Op: op, Kind: dberr.KindMalformed, Err: err}
		}
		return res, err
	})
}
