package main

import (
	"database/sql"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dosada05/trade-machine/config"
	"github.com/Dosada05/trade-machine/db"
	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/repositories"
	"github.com/Dosada05/trade-machine/services"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}

		result, err := db.Migrate(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		logger.Info().
			Uint("version", result.Version).
			Bool("dirty", result.Dirty).
			Bool("changed", result.Changed).
			Msg("migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference teams, draft picks and the sample account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}

		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		league, err := fixtures.Load()
		if err != nil {
			return err
		}

		admin := newAdminService(cfg, dbConn, league, clockwork.NewRealClock(), logger,
			repositories.NewPostgresUserRepository(dbConn),
			repositories.NewPostgresTeamRepository(dbConn),
			repositories.NewPostgresDraftPickRepository(dbConn),
			repositories.NewPostgresTradeRepository(dbConn),
		)

		result, err := admin.Seed(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info().
			Int("teams", result.TeamsInserted).
			Int("draft_picks", result.DraftPicksInserted).
			Bool("user_created", result.UserCreated).
			Int("trades", result.TradesInserted).
			Msg("seed complete")
		return nil
	},
}

func newAdminService(
	cfg *config.Config,
	dbConn *sql.DB,
	league *fixtures.League,
	clock clockwork.Clock,
	logger zerolog.Logger,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	pickRepo repositories.DraftPickRepository,
	tradeRepo repositories.TradeRepository,
) services.AdminService {
	return services.NewAdminService(services.AdminServiceDeps{
		DB: dbConn,
		Migrator: func() (db.MigrationResult, error) {
			return db.Migrate(cfg.DatabaseURL)
		},
		Users:  userRepo,
		Teams:  teamRepo,
		Picks:  pickRepo,
		Trades: tradeRepo,
		League: league,
		Clock:  clock,
		Logger: logger,
	})
}
