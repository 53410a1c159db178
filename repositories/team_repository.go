package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/trade-machine/models"
	"github.com/google/uuid"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	// CreateIfMissing inserts the team unless one with the same name exists.
	// It reports whether a row was inserted.
	CreateIfMissing(ctx context.Context, exec SQLExecutor, team *models.Team) (bool, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, win_percentage FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.WinPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.QueryRowContext(ctx, `SELECT id, name, win_percentage FROM teams WHERE id = $1`, id).
		Scan(&team.ID, &team.Name, &team.WinPercentage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) CreateIfMissing(ctx context.Context, exec SQLExecutor, team *models.Team) (bool, error) {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	query := `
		INSERT INTO teams (id, name, win_percentage)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, team.ID, team.Name, team.WinPercentage)
	if err != nil {
		return false, fmt.Errorf("failed to insert team %q: %w", team.Name, err)
	}
	if err := checkAffectedRows(result, errTeamExists); err != nil {
		if errors.Is(err, errTeamExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var errTeamExists = errors.New("team already exists")
