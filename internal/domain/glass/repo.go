package glass

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const itemColumns = `natural_key, name, sku, manufacturer, code, coe, status, notes, url, image_path, created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	if err := row.Scan(
		&it.NaturalKey,
		&it.Name,
		&it.SKU,
		&it.Manufacturer,
		&it.Code,
		&it.COE,
		&it.Status,
		&it.Notes,
		&it.URL,
		&it.ImagePath,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) Create(ctx context.Context, it Item) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO glass_items (natural_key, name, sku, manufacturer, code, coe, status, notes, url, image_path)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING `+itemColumns+`
	`, it.NaturalKey, it.Name, it.SKU, it.Manufacturer, it.Code, it.COE, it.Status, it.Notes, it.URL, it.ImagePath)
	return scanItem(row)
}

func (r *Repo) GetByKey(ctx context.Context, key string) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM glass_items
		WHERE natural_key = $1
	`, key)
	it, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return it, err
}

// Update — полная замена записи по ключу (кроме самого ключа и created_at).
func (r *Repo) Update(ctx context.Context, it Item) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE glass_items
		SET name=$2, sku=$3, manufacturer=$4, code=$5, coe=$6, status=$7, notes=$8, url=$9, image_path=$10, updated_at=now()
		WHERE natural_key=$1
		RETURNING `+itemColumns+`
	`, it.NaturalKey, it.Name, it.SKU, it.Manufacturer, it.Code, it.COE, it.Status, it.Notes, it.URL, it.ImagePath)
	item, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return item, err
}

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM glass_items
		ORDER BY manufacturer, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (r *Repo) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT natural_key FROM glass_items ORDER BY natural_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Search ищет позиции по части имени/кода/производителя, без учёта регистра.
func (r *Repo) Search(ctx context.Context, q string) ([]Item, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	like := "%" + strings.ToLower(q) + "%"

	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM glass_items
		WHERE LOWER(name) LIKE $1 OR LOWER(code) LIKE $1 OR LOWER(manufacturer) LIKE $1
		ORDER BY manufacturer, name
	`, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, key string, status Status) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE glass_items SET status=$2, updated_at=now() WHERE natural_key=$1
	`, key, status)
	return err
}
