package inventory

import (
	"context"

	"github.com/Spok95/furniture-db/internal/dberr"
	"github.com/Spok95/furniture-db/internal/domain/production"
	"github.com/Spok95/furniture-db/internal/domain/products"
)

// ListProducts: продукты по названию; limit <= 0 без ограничения.
func (m *Manager) ListProducts(ctx context.Context, limit int) ([]products.View, error) {
	return call(m, ctx, "list_products", func(ctx context.Context) ([]products.View, error) {
		return m.products.List(ctx, limit)
	})
}

func (m *Manager) SearchProducts(ctx context.Context, term string) ([]products.View, error) {
	return call(m, ctx, "search_products", func(ctx context.Context) ([]products.View, error) {
		return m.products.Search(ctx, term)
	})
}

func (m *Manager) GetProduct(ctx context.Context, id int64) (*products.Product, error) {
	return call(m, ctx, "get_product", func(ctx context.Context) (*products.Product, error) {
		p, err := m.products.GetByID(ctx, id)
		if err == nil && p == nil {
			return nil, dberr.New("products.get", dberr.KindNotFound, "product %d not found", id)
		}
		return p, err
	})
}

// AddProduct возвращает id новой записи. Дубликат артикула: KindConstraint.
func (m *Manager) AddProduct(ctx context.Context, in products.NewProduct) (int64, error) {
	return call(m, ctx, "add_product", func(ctx context.Context) (int64, error) {
		if in.MinPartnerPrice.IsNegative() {
			return 0, dberr.New("products.create", dberr.KindMalformed, "min_partner_price must not be negative")
		}
		return m.products.Create(ctx, in)
	})
}

// UpdateProduct меняет только поля из ch; updated_at обновляется автоматически.
func (m *Manager) UpdateProduct(ctx context.Context, id int64, ch products.Changes) error {
	return run(m, ctx, "update_product", func(ctx context.Context) error {
		return m.products.Update(ctx, id, ch)
	})
}

func (m *Manager) DeleteProduct(ctx context.Context, id int64) error {
	return run(m, ctx, "delete_product", func(ctx context.Context) error {
		return m.products.Delete(ctx, id)
	})
}

// ProductIDByName: 0, если продукта с таким названием нет.
func (m *Manager) ProductIDByName(ctx context.Context, name string) (int64, error) {
	return call(m, ctx, "product_id_by_name", func(ctx context.Context) (int64, error) {
		return m.products.GetIDByName(ctx, name)
	})
}

/* Цеха продукта */

func (m *Manager) AddLink(ctx context.Context, in production.NewLink) (int64, error) {
	return call(m, ctx, "add_product_workshop", func(ctx context.Context) (int64, error) {
		return m.production.Create(ctx, in)
	})
}

func (m *Manager) ProductWorkshops(ctx context.Context, productID int64) ([]production.Assignment, error) {
	return call(m, ctx, "product_workshops", func(ctx context.Context) ([]production.Assignment, error) {
		return m.production.ListByProduct(ctx, productID)
	})
}

// ProductionTime: часы по цехам и итог, округлённый вверх.
func (m *Manager) ProductionTime(ctx context.Context, productID int64) (production.Time, error) {
	return call(m, ctx, "production_time", func(ctx context.Context) (production.Time, error) {
		as, err := m.production.ListByProduct(ctx, productID)
		if err != nil {
			return production.Time{}, err
		}
		return production.Time{ProductID: productID, Workshops: as, TotalHours: production.TotalHours(as)}, nil
	})
}
