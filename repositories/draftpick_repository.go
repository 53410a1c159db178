package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/trade-machine/models"
	"github.com/google/uuid"
)

// DraftPickRepository stores which team holds each future pick.
type DraftPickRepository interface {
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.DraftPick, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	CreateBatch(ctx context.Context, exec SQLExecutor, picks []models.DraftPick) error
}

type postgresDraftPickRepository struct {
	db *sql.DB
}

func NewPostgresDraftPickRepository(db *sql.DB) DraftPickRepository {
	return &postgresDraftPickRepository{db: db}
}

func (r *postgresDraftPickRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresDraftPickRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.DraftPick, error) {
	query := `
		SELECT id, year, round, team_id
		FROM draft_picks
		WHERE team_id = $1
		ORDER BY year DESC, round ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft picks: %w", err)
	}
	defer rows.Close()

	picks := make([]models.DraftPick, 0)
	for rows.Next() {
		var p models.DraftPick
		if err := rows.Scan(&p.ID, &p.Year, &p.Round, &p.TeamID); err != nil {
			return nil, fmt.Errorf("failed to scan draft pick: %w", err)
		}
		picks = append(picks, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return picks, nil
}

func (r *postgresDraftPickRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var n int
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT count(*) FROM draft_picks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count draft picks: %w", err)
	}
	return n, nil
}

func (r *postgresDraftPickRepository) CreateBatch(ctx context.Context, exec SQLExecutor, picks []models.DraftPick) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO draft_picks (id, year, round, team_id) VALUES ($1, $2, $3, $4)`
	for i := range picks {
		if picks[i].ID == uuid.Nil {
			picks[i].ID = uuid.New()
		}
		if _, err := executor.ExecContext(ctx, query, picks[i].ID, picks[i].Year, picks[i].Round, picks[i].TeamID); err != nil {
			return fmt.Errorf("failed to insert draft pick %d/%d: %w", picks[i].Year, picks[i].Round, err)
		}
	}
	return nil
}
