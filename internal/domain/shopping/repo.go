package shopping

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, e Entry) (*Entry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO shopping_list (item_key, name, quantity, store, done)
		VALUES ($1,$2,$3,$4,FALSE)
		RETURNING id, item_key, name, quantity, store, done, created_at
	`, e.ItemKey, e.Name, e.Quantity, e.Store)

	var out Entry
	if err := row.Scan(&out.ID, &out.ItemKey, &out.Name, &out.Quantity, &out.Store, &out.Done, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) List(ctx context.Context, includeDone bool) ([]Entry, error) {
	q := `
		SELECT id, item_key, name, quantity, store, done, created_at
		FROM shopping_list
	`
	if !includeDone {
		q += " WHERE done = FALSE"
	}
	q += " ORDER BY done, id"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ItemKey, &e.Name, &e.Quantity, &e.Store, &e.Done, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) SetDone(ctx context.Context, id int64, done bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE shopping_list SET done=$2 WHERE id=$1`, id, done)
	return err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM shopping_list WHERE id = $1`, id)
	return err
}

// HasOpenForItem — есть ли уже незакрытая позиция по этому ключу каталога.
// Нужна, чтобы отчёт о низких остатках не плодил дубли в списке.
func (r *Repo) HasOpenForItem(ctx context.Context, itemKey string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM shopping_list WHERE item_key = $1 AND done = FALSE
		)
	`, itemKey).Scan(&exists)
	return exists, err
}
