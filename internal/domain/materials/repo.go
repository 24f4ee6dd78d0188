package materials

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const cols = `material_type_id, material_type_name, waste_percentage, is_ecological, description, created_at`

func scan(row pgx.Row) (*MaterialType, error) {
	var m MaterialType
	if err := row.Scan(&m.ID, &m.Name, &m.Waste, &m.Ecological, &m.Description, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create добавляет тип материала или возвращает существующий с тем же именем.
func (r *Repo) Create(ctx context.Context, in NewMaterialType) (*MaterialType, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO material_types (material_type_name, waste_percentage, is_ecological, description)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (material_type_name) DO NOTHING
		RETURNING `+cols, in.Name, in.Waste, in.Ecological, in.Description)
	m, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.GetByName(ctx, in.Name)
	}
	return m, err
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*MaterialType, error) {
	m, err := scan(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM material_types WHERE material_type_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *Repo) GetByName(ctx context.Context, name string) (*MaterialType, error) {
	m, err := scan(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM material_types WHERE material_type_name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *Repo) List(ctx context.Context) ([]MaterialType, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+cols+` FROM material_types ORDER BY material_type_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MaterialType{}
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
