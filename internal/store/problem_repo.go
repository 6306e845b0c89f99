package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/stepcoach/internal/problem"
)

// problemRepo implements ProblemRepo over the problems table.
type problemRepo struct {
	db *sqlx.DB
}

type problemRow struct {
	Title       string `db:"title"`
	Description string `db:"description"`
	Difficulty  string `db:"difficulty"`
}

func (r *problemRepo) SaveProblem(ctx context.Context, p problem.Problem) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO problems (title, description, difficulty, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(title) DO UPDATE SET description = excluded.description, difficulty = excluded.difficulty`,
		p.Title, p.Description, string(p.Difficulty), formatTimestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save problem %q: %w", p.Title, err)
	}
	return nil
}

func (r *problemRepo) ListProblems(ctx context.Context) ([]problem.Problem, error) {
	var rows []problemRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT title, description, difficulty FROM problems ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}

	out := make([]problem.Problem, 0, len(rows))
	for _, row := range rows {
		d, err := problem.ParseDifficulty(row.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("problem %q: %w", row.Title, err)
		}
		out = append(out, problem.Problem{
			Title:       row.Title,
			Description: row.Description,
			Difficulty:  d,
		})
	}
	return out, nil
}

func (r *problemRepo) DeleteProblem(ctx context.Context, title string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM problems WHERE title = ?`, title)
	if err != nil {
		return false, fmt.Errorf("delete problem %q: %w", title, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete problem %q: %w", title, err)
	}
	return n > 0, nil
}
