package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const productTypeCols = `product_type_id, product_type_name, type_coefficient, style, description, created_at`

func scanProductType(row pgx.Row) (*ProductType, error) {
	var p ProductType
	if err := row.Scan(&p.ID, &p.Name, &p.Coefficient, &p.Style, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

/* Product types */

// CreateProductType добавляет тип продукции; если тип с таким именем уже есть, возвращает его.
func (r *Repo) CreateProductType(ctx context.Context, in NewProductType) (*ProductType, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO product_types (product_type_name, type_coefficient, style, description)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (product_type_name) DO NOTHING
		RETURNING `+productTypeCols, in.Name, in.Coefficient, in.Style, in.Description)
	p, err := scanProductType(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Уже есть: вернём существующий
		return r.GetProductTypeByName(ctx, in.Name)
	}
	return p, err
}

func (r *Repo) GetProductTypeByName(ctx context.Context, name string) (*ProductType, error) {
	p, err := scanProductType(r.pool.QueryRow(ctx,
		`SELECT `+productTypeCols+` FROM product_types WHERE product_type_name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *Repo) GetProductTypeByID(ctx context.Context, id int64) (*ProductType, error) {
	p, err := scanProductType(r.pool.QueryRow(ctx,
		`SELECT `+productTypeCols+` FROM product_types WHERE product_type_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *Repo) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productTypeCols+` FROM product_types ORDER BY product_type_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ProductType{}
	for rows.Next() {
		p, err := scanProductType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

/* Workshops */

const workshopCols = `workshop_id, workshop_name, workshop_type, staff_count, location, equipment, is_active, created_at`

func scanWorkshop(row pgx.Row) (*Workshop, error) {
	var w Workshop
	if err := row.Scan(&w.ID, &w.Name, &w.Type, &w.StaffCount, &w.Location, &w.Equipment, &w.Active, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) CreateWorkshop(ctx context.Context, in NewWorkshop) (*Workshop, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO workshops (workshop_name, workshop_type, staff_count, location, equipment)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (workshop_name) DO NOTHING
		RETURNING `+workshopCols, in.Name, in.Type, in.StaffCount, in.Location, in.Equipment)
	w, err := scanWorkshop(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.GetWorkshopByName(ctx, in.Name)
	}
	return w, err
}

func (r *Repo) GetWorkshopByName(ctx context.Context, name string) (*Workshop, error) {
	w, err := scanWorkshop(r.pool.QueryRow(ctx,
		`SELECT `+workshopCols+` FROM workshops WHERE workshop_name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

// ListWorkshops: все цеха, по типу и названию.
func (r *Repo) ListWorkshops(ctx context.Context) ([]Workshop, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+workshopCols+` FROM workshops ORDER BY workshop_type, workshop_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Workshop{}
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}
