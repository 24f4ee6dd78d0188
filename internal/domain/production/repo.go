package production

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, in NewLink) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO product_workshops (product_id, workshop_id, production_time_hours, priority, notes)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING product_workshop_id
	`, in.ProductID, in.WorkshopID, in.Hours, in.Priority, in.Notes).Scan(&id)
	return id, err
}

// ListProductWorkshops: по строке на каждое назначение, по продукту и часам.
func (r *Repo) ListProductWorkshops(ctx context.Context) ([]ProductWorkshop, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.product_name, w.workshop_name, w.workshop_type, pw.production_time_hours
		FROM products p
		JOIN product_workshops pw ON pw.product_id = p.product_id
		JOIN workshops w ON w.workshop_id = pw.workshop_id
		ORDER BY p.product_name, pw.production_time_hours, pw.product_workshop_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ProductWorkshop{}
	for rows.Next() {
		var it ProductWorkshop
		if err := rows.Scan(&it.ProductName, &it.WorkshopName, &it.WorkshopType, &it.Hours); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListByProduct: цеха продукта, самые долгие первыми.
func (r *Repo) ListByProduct(ctx context.Context, productID int64) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.workshop_id, w.workshop_name, w.workshop_type, w.staff_count, pw.production_time_hours
		FROM product_workshops pw
		JOIN workshops w ON w.workshop_id = pw.workshop_id
		WHERE pw.product_id = $1
		ORDER BY pw.production_time_hours DESC, w.workshop_name
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Assignment{}
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.WorkshopID, &a.WorkshopName, &a.WorkshopType, &a.StaffCount, &a.Hours); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
