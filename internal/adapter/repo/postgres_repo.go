package repo

import (
	"context"
	"encoding/json"

	"github.com/example/storefront-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalog — источник каталога поверх Postgres. Записи хранятся
// как jsonb-payload, порядок листинга задаёт колонка position.
type PostgresCatalog struct {
	Pool *pgxpool.Pool
}

func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{Pool: pool}
}

func (r *PostgresCatalog) ListProducts(ctx context.Context, page, limit int) (domain.CatalogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&total); err != nil {
		return domain.CatalogPage{}, err
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT payload FROM products ORDER BY position, id LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return domain.CatalogPage{}, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return domain.CatalogPage{}, err
		}
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			// пропускаем битые записи, не прерывая листинг
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return domain.CatalogPage{}, err
	}
	totalPages := (total + limit - 1) / limit
	return domain.CatalogPage{
		Products: products,
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (r *PostgresCatalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, `SELECT payload FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var c domain.Category
		if err := json.Unmarshal(raw, &c); err != nil {
			continue
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

var _ domain.CatalogSource = (*PostgresCatalog)(nil)

// EnsureSchema — создать необходимые таблицы, если отсутствуют.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS products (
  id bigint PRIMARY KEY,
  position bigint NOT NULL DEFAULT 0,
  payload jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS categories (
  id bigint PRIMARY KEY,
  payload jsonb NOT NULL
);`)
	return err
}
