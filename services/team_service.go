package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dosada05/trade-machine/models"
	"github.com/Dosada05/trade-machine/repositories"
)

type TeamService interface {
	List(ctx context.Context) ([]models.Team, error)
	// GetWithPicks returns a team and the picks it currently owns, newest
	// year first.
	GetWithPicks(ctx context.Context, id uuid.UUID) (*models.TeamWithPicks, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	pickRepo repositories.DraftPickRepository
}

func NewTeamService(teamRepo repositories.TeamRepository, pickRepo repositories.DraftPickRepository) TeamService {
	return &teamService{teamRepo: teamRepo, pickRepo: pickRepo}
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) GetWithPicks(ctx context.Context, id uuid.UUID) (*models.TeamWithPicks, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	picks, err := s.pickRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list team draft picks: %w", err)
	}

	return &models.TeamWithPicks{Team: *team, DraftPicks: picks}, nil
}
