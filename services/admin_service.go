package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/Dosada05/trade-machine/db"
	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/models"
	"github.com/Dosada05/trade-machine/repositories"
	"github.com/Dosada05/trade-machine/utils"
)

// SeedResult counts the rows a seed run inserted. A second run on the same
// database inserts nothing.
type SeedResult struct {
	TeamsInserted      int  `json:"teams_inserted"`
	DraftPicksInserted int  `json:"draft_picks_inserted"`
	UserCreated        bool `json:"user_created"`
	TradesInserted     int  `json:"trades_inserted"`
}

type AdminService interface {
	Migrate(ctx context.Context) (db.MigrationResult, error)
	Seed(ctx context.Context) (*SeedResult, error)
}

type AdminServiceDeps struct {
	// DB is used for seed transactions. When nil each write commits on
	// its own.
	DB       *sql.DB
	Migrator func() (db.MigrationResult, error)
	Users    repositories.UserRepository
	Teams    repositories.TeamRepository
	Picks    repositories.DraftPickRepository
	Trades   repositories.TradeRepository
	League   *fixtures.League
	Clock    clockwork.Clock
	Logger   zerolog.Logger
}

type adminService struct {
	db        *sql.DB
	migrator  func() (db.MigrationResult, error)
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	pickRepo  repositories.DraftPickRepository
	tradeRepo repositories.TradeRepository
	league    *fixtures.League
	clock     clockwork.Clock
	logger    zerolog.Logger
}

func NewAdminService(deps AdminServiceDeps) AdminService {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &adminService{
		db:        deps.DB,
		migrator:  deps.Migrator,
		userRepo:  deps.Users,
		teamRepo:  deps.Teams,
		pickRepo:  deps.Picks,
		tradeRepo: deps.Trades,
		league:    deps.League,
		clock:     clock,
		logger:    deps.Logger.With().Str("service", "admin").Logger(),
	}
}

func (s *adminService) Migrate(ctx context.Context) (db.MigrationResult, error) {
	if s.migrator == nil {
		return db.MigrationResult{}, errors.New("migrations are not configured")
	}
	result, err := s.migrator()
	if err != nil {
		return db.MigrationResult{}, err
	}
	s.logger.Info().Uint("version", result.Version).Bool("changed", result.Changed).Msg("migrations applied")
	return result, nil
}

func (s *adminService) Seed(ctx context.Context) (*SeedResult, error) {
	if s.league == nil {
		return nil, errors.New("league fixtures are not loaded")
	}
	result := &SeedResult{}

	if err := s.seedTeams(ctx, result); err != nil {
		return nil, err
	}
	if err := s.seedDraftPicks(ctx, result); err != nil {
		return nil, err
	}
	user, err := s.seedUser(ctx, result)
	if err != nil {
		return nil, err
	}
	if err := s.seedTrades(ctx, user, result); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("teams", result.TeamsInserted).
		Int("draft_picks", result.DraftPicksInserted).
		Bool("user", result.UserCreated).
		Int("trades", result.TradesInserted).
		Msg("seed finished")
	return result, nil
}

// inTx runs fn inside a transaction when a database handle is available.
func (s *adminService) inTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (txErr error) {
	if s.db == nil {
		return fn(nil)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().Err(rbErr).AnErr("cause", txErr).Msg("seed rollback failed")
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}

func (s *adminService) seedTeams(ctx context.Context, result *SeedResult) error {
	return s.inTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, t := range s.league.Teams {
			inserted, err := s.teamRepo.CreateIfMissing(ctx, exec, &models.Team{Name: t.Name, WinPercentage: t.WinPercentage})
			if err != nil {
				return err
			}
			if inserted {
				result.TeamsInserted++
			}
		}
		return nil
	})
}

func (s *adminService) seedDraftPicks(ctx context.Context, result *SeedResult) error {
	existing, err := s.pickRepo.Count(ctx, nil)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list teams for pick seeding: %w", err)
	}

	picks := make([]models.DraftPick, 0, len(teams)*len(s.league.DraftYears)*2)
	for _, team := range teams {
		for _, year := range s.league.DraftYears {
			for round := 1; round <= 2; round++ {
				picks = append(picks, models.DraftPick{Year: year, Round: round, TeamID: team.ID})
			}
		}
	}

	err = s.inTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.pickRepo.CreateBatch(ctx, exec, picks)
	})
	if err != nil {
		return err
	}
	result.DraftPicksInserted = len(picks)
	return nil
}

func (s *adminService) seedUser(ctx context.Context, result *SeedResult) (*models.User, error) {
	sample := s.league.SampleUser
	email := utils.NormalizeEmail(sample.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up sample user: %w", err)
	}

	hash, err := utils.HashPassword(sample.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash sample user password: %w", err)
	}
	user = &models.User{Name: sample.Name, Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create sample user: %w", err)
	}
	result.UserCreated = true
	return user, nil
}

func (s *adminService) seedTrades(ctx context.Context, user *models.User, result *SeedResult) error {
	n, err := s.tradeRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := s.clock.Now().UTC()
	inserted := 0
	// A partial sample set would stop every later run at the count check.
	err = s.inTx(ctx, func(exec repositories.SQLExecutor) error {
		for i, sample := range s.league.SampleTrades {
			picks := make([]models.TradeDraftPick, len(sample.DraftPicks))
			for j, p := range sample.DraftPicks {
				picks[j] = models.TradeDraftPick{
					Year:          p.Year,
					Round:         p.Round,
					PickNumber:    p.PickNumber,
					GivingTeam:    p.GivingTeam,
					ReceivingTeam: p.ReceivingTeam,
				}
			}
			// Later samples are newer so listings show them first.
			createdAt := now.Add(time.Duration(i) * time.Second)
			trade := &models.Trade{
				ID:          uuid.New(),
				UserID:      user.ID,
				Description: sample.Description,
				Teams:       append([]string(nil), sample.Teams...),
				DraftPicks:  picks,
				CreatedAt:   createdAt,
				UpdatedAt:   createdAt,
			}
			if err := s.tradeRepo.Create(ctx, exec, trade); err != nil {
				return fmt.Errorf("failed to create sample trade %q: %w", sample.Description, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return err
	}
	result.TradesInserted = inserted
	return nil
}
