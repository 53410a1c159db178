package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/trade-machine/models"
	"github.com/Dosada05/trade-machine/repositories"
)

// Dashboard is the landing view of a signed-in user.
type Dashboard struct {
	User        *models.User `json:"user"`
	TradesTotal int          `json:"trades_total"`
	// Trades are newest first.
	Trades []TradeView `json:"trades"`
}

type DashboardService interface {
	Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type dashboardService struct {
	userRepo repositories.UserRepository
	trades   TradeService
}

func NewDashboardService(userRepo repositories.UserRepository, trades TradeService) DashboardService {
	return &dashboardService{userRepo: userRepo, trades: trades}
}

func (s *dashboardService) Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	var (
		user   *models.User
		trades []TradeView
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.userRepo.GetByID(gCtx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}
		u.PasswordHash = ""
		user = u
		return nil
	})

	g.Go(func() error {
		list, err := s.trades.List(gCtx, userID)
		if err != nil {
			return err
		}
		trades = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{User: user, TradesTotal: len(trades), Trades: trades}, nil
}
