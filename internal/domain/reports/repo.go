package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Statistics: число строк в каждой таблице, по одному запросу на таблицу.
func (r *Repo) Statistics(ctx context.Context) (Statistics, error) {
	out := make(Statistics, 0, len(Tables))
	for _, table := range Tables {
		var n int64
		// имя таблицы только из фиксированного списка
		if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, TableCount{Table: table, Count: n})
	}
	return out, nil
}

func (r *Repo) ProductsByType(ctx context.Context) ([]TypeCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pt.product_type_name, COUNT(*) AS cnt
		FROM products p
		JOIN product_types pt ON pt.product_type_id = p.product_type_id
		GROUP BY pt.product_type_name
		ORDER BY cnt DESC, pt.product_type_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TypeCount{}
	for rows.Next() {
		var it TypeCount
		if err := rows.Scan(&it.ProductType, &it.Count); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// AveragePriceByType считает среднее по всем продуктам типа, включая недоступные.
func (r *Repo) AveragePriceByType(ctx context.Context) ([]TypeAverage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pt.product_type_name, ROUND(AVG(p.min_partner_price), 2) AS avg_price
		FROM products p
		JOIN product_types pt ON pt.product_type_id = p.product_type_id
		GROUP BY pt.product_type_name
		ORDER BY avg_price DESC, pt.product_type_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TypeAverage{}
	for rows.Next() {
		var it TypeAverage
		if err := rows.Scan(&it.ProductType, &it.Average); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) TopExpensive(ctx context.Context, n int) ([]PricedProduct, error) {
	if n <= 0 {
		return []PricedProduct{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT product_name, min_partner_price
		FROM products
		ORDER BY min_partner_price DESC, product_name, product_id
		LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PricedProduct{}
	for rows.Next() {
		var it PricedProduct
		if err := rows.Scan(&it.Name, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
