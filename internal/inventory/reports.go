package inventory

import (
	"context"

	"github.com/Spok95/furniture-db/internal/domain/production"
	"github.com/Spok95/furniture-db/internal/domain/reports"
)

// Statistics: счётчики пяти таблиц в фиксированном порядке. Итог считает вызывающий.
func (m *Manager) Statistics(ctx context.Context) (reports.Statistics, error) {
	return call(m, ctx, "statistics", m.reports.Statistics)
}

func (m *Manager) ProductsByType(ctx context.Context) ([]reports.TypeCount, error) {
	return call(m, ctx, "products_by_type", m.reports.ProductsByType)
}

func (m *Manager) AveragePriceByType(ctx context.Context) ([]reports.TypeAverage, error) {
	return call(m, ctx, "average_price_by_type", m.reports.AveragePriceByType)
}

// TopExpensiveProducts: не более n самых дорогих; n <= 0 даёт пустой список.
func (m *Manager) TopExpensiveProducts(ctx context.Context, n int) ([]reports.PricedProduct, error) {
	return call(m, ctx, "top_expensive_products", func(ctx context.Context) ([]reports.PricedProduct, error) {
		return m.reports.TopExpensive(ctx, n)
	})
}

func (m *Manager) ProductsWithWorkshops(ctx context.Context) ([]production.ProductWorkshop, error) {
	return call(m, ctx, "products_with_workshops", m.production.ListProductWorkshops)
}
