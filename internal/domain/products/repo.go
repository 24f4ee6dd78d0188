package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const viewSelect = `
	SELECT p.product_id, p.product_name, p.article_number,
	       pt.product_type_name, mt.material_type_name,
	       p.min_partner_price, p.is_available
	FROM products p
	JOIN product_types pt ON pt.product_type_id = p.product_type_id
	JOIN material_types mt ON mt.material_type_id = p.material_type_id
`

const viewOrder = ` ORDER BY p.product_name, p.product_id`

func scanViews(rows pgx.Rows) ([]View, error) {
	defer rows.Close()
	out := []View{}
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ID, &v.Name, &v.Article, &v.ProductType, &v.MaterialType, &v.MinPartnerPrice, &v.Available); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// List возвращает продукты по имени; limit <= 0: без ограничения.
func (r *Repo) List(ctx context.Context, limit int) ([]View, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.pool.Query(ctx, viewSelect+viewOrder+` LIMIT $1`, limit)
	} else {
		rows, err = r.pool.Query(ctx, viewSelect+viewOrder)
	}
	if err != nil {
		return nil, err
	}
	return scanViews(rows)
}

// Search ищет подстроку в названии или артикуле без учёта регистра.
func (r *Repo) Search(ctx context.Context, term string) ([]View, error) {
	like := "%" + escapeLike(term) + "%"
	rows, err := r.pool.Query(ctx, viewSelect+`
		WHERE p.product_name ILIKE $1 ESCAPE '\' OR p.article_number ILIKE $1 ESCAPE '\'
	`+viewOrder, like)
	if err != nil {
		return nil, err
	}
	return scanViews(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// Create: одна вставка; уникальность артикула проверяет база.
func (r *Repo) Create(ctx context.Context, in NewProduct) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (product_name, article_number, product_type_id, material_type_id,
		                      min_partner_price, dimensions, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING product_id
	`, in.Name, in.Article, in.ProductTypeID, in.MaterialTypeID, in.MinPartnerPrice, in.Dimensions, in.Description).Scan(&id)
	return id, err
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, `
		SELECT product_id, product_name, article_number, product_type_id, material_type_id,
		       min_partner_price, dimensions, weight, description, is_available, created_at, updated_at
		FROM products WHERE product_id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Article, &p.ProductTypeID, &p.MaterialTypeID,
		&p.MinPartnerPrice, &p.Dimensions, &p.Weight, &p.Description, &p.Available, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetIDByName: первый по id продукт с таким названием (0, если нет).
func (r *Repo) GetIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		SELECT product_id FROM products WHERE product_name = $1 ORDER BY product_id LIMIT 1
	`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

func (r *Repo) Update(ctx context.Context, id int64, ch Changes) error {
	q, args, err := buildUpdate(id, ch)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// Delete удаляет продукт; назначения на цеха удаляются каскадом.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, pgx.ErrNoRows)
	}
	return nil
}
