package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/trade-machine/db"
	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/models"
	"github.com/Dosada05/trade-machine/utils"
)

func TestSeedIsIdempotent(t *testing.T) {
	league, err := fixtures.Load()
	require.NoError(t, err)

	users := newFakeUserRepo()
	teams := &fakeTeamRepo{}
	picks := &fakePickRepo{}
	trades := newFakeTradeRepo()
	svc := NewAdminService(AdminServiceDeps{
		Users:  users,
		Teams:  teams,
		Picks:  picks,
		Trades: trades,
		League: league,
		Clock:  clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Logger: zerolog.Nop(),
	})
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{
		TeamsInserted:      30,
		DraftPicksInserted: 30 * len(league.DraftYears) * 2,
		UserCreated:        true,
		TradesInserted:     3,
	}, first)

	user, err := users.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	ok, err := utils.CheckPasswordHash("password123", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := trades.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Three-Team Trade", list[0].Description, "last sample is newest")

	second, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{}, second)
	assert.Len(t, teams.teams, 30)
}

func TestSeedTradesRollsBackOnFailure(t *testing.T) {
	league, err := fixtures.Load()
	require.NoError(t, err)
	require.Len(t, league.SampleTrades, 3)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	trades := newFakeTradeRepo()
	trades.failCreateAt = 2
	trades.createErr = errors.New("connection reset")
	svc := NewAdminService(AdminServiceDeps{
		DB:     sqlDB,
		Trades: trades,
		League: league,
		Clock:  clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Logger: zerolog.Nop(),
	}).(*adminService)
	user := &models.User{ID: uuid.New()}
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	result := &SeedResult{}
	err = svc.seedTrades(ctx, user, result)
	require.ErrorIs(t, err, trades.createErr)
	assert.Zero(t, result.TradesInserted)
	require.Len(t, trades.executors, 2)
	assert.NotNil(t, trades.executors[0])
	assert.Same(t, trades.executors[0], trades.executors[1], "samples share one transaction")
	require.NoError(t, mock.ExpectationsWereMet())

	// The rollback discarded the first sample, so the next run starts clean.
	trades.trades = make(map[uuid.UUID]models.Trade)
	trades.failCreateAt = 0
	trades.executors = nil
	mock.ExpectBegin()
	mock.ExpectCommit()

	result = &SeedResult{}
	require.NoError(t, svc.seedTrades(ctx, user, result))
	assert.Equal(t, 3, result.TradesInserted)
	assert.Len(t, trades.trades, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	calls := 0
	svc := NewAdminService(AdminServiceDeps{
		Migrator: func() (db.MigrationResult, error) {
			calls++
			return db.MigrationResult{Version: 1, Changed: calls == 1}, nil
		},
		Logger: zerolog.Nop(),
	})

	got, err := svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, db.MigrationResult{Version: 1, Changed: true}, got)

	got, err = svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Changed)
}
