package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Append пишет новую запись журнала. Существующие записи никогда
// не обновляются, поэтому конкурентные вызовы не теряют друг друга.
func (r *Repo) Append(ctx context.Context, rec Record) (*Record, error) {
	if rec.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be >= 0")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_records (item_key, type, quantity, location)
		VALUES ($1,$2,$3,$4)
		RETURNING id, item_key, type, quantity, location, created_at
	`, rec.ItemKey, rec.Type, rec.Quantity, rec.Location)

	var out Record
	if err := row.Scan(&out.ID, &out.ItemKey, &out.Type, &out.Quantity, &out.Location, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) ListByItem(ctx context.Context, itemKey string) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_key, type, quantity, location, created_at
		FROM inventory_records
		WHERE item_key = $1
		ORDER BY id
	`, itemKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ItemKey, &rec.Type, &rec.Quantity, &rec.Location, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repo) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_key, type, quantity, location, created_at
		FROM inventory_records
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ItemKey, &rec.Type, &rec.Quantity, &rec.Location, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete удаляет запись журнала. Единственный путь уменьшить журнал —
// явное действие пользователя.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM inventory_records WHERE id = $1`, id)
	return err
}

// ListLocations — все различные места хранения по журналу.
func (r *Repo) ListLocations(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT location
		FROM inventory_records
		WHERE location IS NOT NULL
		ORDER BY location
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}
