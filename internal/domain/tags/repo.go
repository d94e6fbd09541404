package tags

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Source различает теги из каталога и пользовательские.
type Source string

const (
	SourceCatalog Source = "catalog"
	SourceUser    Source = "user"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Add(ctx context.Context, itemKey, tag string, src Source) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO item_tags (item_key, tag, source)
		VALUES ($1,$2,$3)
	`, itemKey, tag, string(src))
	return err
}

// ListByItem возвращает теги позиции в порядке добавления,
// каталожные раньше пользовательских.
func (r *Repo) ListByItem(ctx context.Context, itemKey string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tag
		FROM item_tags
		WHERE item_key = $1
		ORDER BY source = 'user', id
	`, itemKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListBySource — теги позиции одного источника, в порядке добавления.
// Импорт сравнивает фид только с каталожными тегами: пользовательские
// не должны превращать неизменную позицию в «обновлённую».
func (r *Repo) ListBySource(ctx context.Context, itemKey string, src Source) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tag
		FROM item_tags
		WHERE item_key = $1 AND source = $2
		ORDER BY id
	`, itemKey, string(src))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Replace заменяет весь набор тегов позиции для одного источника.
func (r *Repo) Replace(ctx context.Context, itemKey string, list []string, src Source) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `
		DELETE FROM item_tags WHERE item_key = $1 AND source = $2
	`, itemKey, string(src)); err != nil {
		return err
	}
	for _, t := range list {
		if _, err = tx.Exec(ctx, `
			INSERT INTO item_tags (item_key, tag, source) VALUES ($1,$2,$3)
		`, itemKey, t, string(src)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// All — все различные теги в базе, для подсказок при вводе.
func (r *Repo) All(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT tag FROM item_tags ORDER BY tag`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
