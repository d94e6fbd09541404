package projects

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Create пишет запись журнала вместе со строками стекла одной транзакцией.
func (r *Repo) Create(ctx context.Context, e Entry) (*Entry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO project_logs (title, notes, project_date)
		VALUES ($1,$2,$3)
		RETURNING id, title, notes, project_date, created_at
	`, e.Title, e.Notes, e.Date)

	var out Entry
	if err := row.Scan(&out.ID, &out.Title, &out.Notes, &out.Date, &out.CreatedAt); err != nil {
		return nil, err
	}

	for _, g := range e.Glass {
		if _, err := tx.Exec(ctx, `
			INSERT INTO project_glass (project_id, item_key, quantity)
			VALUES ($1,$2,$3)
		`, out.ID, g.ItemKey, g.Quantity); err != nil {
			return nil, err
		}
		out.Glass = append(out.Glass, g)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, notes, project_date, created_at
		FROM project_logs
		ORDER BY project_date DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Notes, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		glass, err := r.listGlass(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Glass = glass
	}
	return out, nil
}

func (r *Repo) listGlass(ctx context.Context, projectID int64) ([]GlassLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT item_key, quantity
		FROM project_glass
		WHERE project_id = $1
		ORDER BY item_key
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GlassLine
	for rows.Next() {
		var g GlassLine
		if err := rows.Scan(&g.ItemKey, &g.Quantity); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UsageByItem — суммарный расход стекла по позиции за всё время.
func (r *Repo) UsageByItem(ctx context.Context, itemKey string) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM project_glass
		WHERE item_key = $1
	`, itemKey).Scan(&total)
	return total, err
}
