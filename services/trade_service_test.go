package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/live"
)

type tradeFixture struct {
	svc      TradeService
	repo     *fakeTradeRepo
	events   *fakeEvents
	uploader *fakeUploader
	clock    *clockwork.FakeClock
}

func newTradeFixture(t *testing.T, v TradeValidator) *tradeFixture {
	t.Helper()
	league, err := fixtures.Load()
	require.NoError(t, err)

	f := &tradeFixture{
		repo:     newFakeTradeRepo(),
		events:   &fakeEvents{},
		uploader: newFakeUploader(),
		clock:    clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.svc = NewTradeService(TradeServiceDeps{
		Trades:    f.repo,
		Validator: v,
		League:    league,
		Events:    f.events,
		Reports:   f.uploader,
		Clock:     f.clock,
		Logger:    zerolog.Nop(),
	})
	return f
}

func TestEvaluateTwoTeamDraft(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})

	got, err := f.svc.Evaluate(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, got.Teams)
	assert.Equal(t, 4000, got.Valuation["A"].Given)
	assert.Equal(t, 370, got.Valuation["A"].Received)
	assert.Equal(t, -3630, got.Valuation["A"].Net())
	assert.Equal(t, 3630, got.Valuation["B"].Net())
	assert.Equal(t, "A", got.DraftPicks[0].GivingTeam)
	assert.Equal(t, "B", got.DraftPicks[1].GivingTeam)
	assert.Empty(t, f.repo.trades, "evaluation does not persist")
}

func TestEvaluateTrimsDescription(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	draft := validDraft()
	draft.Description = "  Swap \n"

	got, err := f.svc.Evaluate(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "Swap", got.Description)
}

func TestEvaluateRejectsInvalidDraft(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})

	_, err := f.svc.Evaluate(context.Background(), TradeDraft{})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateTrade(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	userID := uuid.New()

	got, err := f.svc.Create(context.Background(), userID, validDraft())
	require.NoError(t, err)

	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, f.clock.Now(), got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.Len(t, got.DraftPicks, 2)
	assert.Equal(t, -3630, got.Valuation["A"].Net())

	stored, ok := f.repo.trades[got.ID]
	require.True(t, ok)
	assert.Equal(t, "Swap", stored.Description)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, publishedEvent{userID, live.EventTradeCreated, got.ID}, f.events.events[0])
}

func TestCreateInvalidTradeStoresNothing(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})

	_, err := f.svc.Create(context.Background(), uuid.New(), TradeDraft{Teams: []TeamDraft{{Name: "A"}}})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, f.repo.trades)
	assert.Empty(t, f.events.events)
}

func TestGetTradeIsOwnerOnly(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	owner := uuid.New()
	created, err := f.svc.Create(context.Background(), owner, validDraft())
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.Get(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, ErrTradeForbidden)

	_, err = f.svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestListTradesNewestFirst(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	userID := uuid.New()

	first, err := f.svc.Create(context.Background(), userID, validDraft())
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	second, err := f.svc.Create(context.Background(), userID, validDraft())
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), uuid.New(), validDraft())
	require.NoError(t, err)

	got, err := f.svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
	assert.NotEmpty(t, got[0].Valuation)
}

func TestUpdateReplacesPicks(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	owner := uuid.New()
	created, err := f.svc.Create(context.Background(), owner, validDraft())
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	draft := TradeDraft{
		Description: "Three-way",
		Teams: []TeamDraft{
			{Name: "C", Picks: []PickDraft{{Year: 2026, Round: 1, PickNumber: 10, ReceivingTeam: "D"}}},
		},
	}
	got, err := f.svc.Update(context.Background(), owner, created.ID, draft)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, f.clock.Now(), got.UpdatedAt)

	stored := f.repo.trades[created.ID]
	assert.Equal(t, "Three-way", stored.Description)
	assert.Equal(t, []string{"C"}, stored.Teams)
	require.Len(t, stored.DraftPicks, 1)
	assert.Equal(t, "C", stored.DraftPicks[0].GivingTeam)
	assert.Equal(t, "D", stored.DraftPicks[0].ReceivingTeam)

	assert.Len(t, got.Valuation, 2)
	assert.Contains(t, got.Valuation, "C")
	assert.Contains(t, got.Valuation, "D")
	assert.Equal(t, live.EventTradeUpdated, f.events.events[len(f.events.events)-1].eventType)
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	owner := uuid.New()
	created, err := f.svc.Create(context.Background(), owner, validDraft())
	require.NoError(t, err)
	before := cloneTrade(f.repo.trades[created.ID])

	draft := validDraft()
	draft.Description = "hijacked"
	_, err = f.svc.Update(context.Background(), uuid.New(), created.ID, draft)

	assert.ErrorIs(t, err, ErrTradeForbidden)
	assert.Equal(t, before, f.repo.trades[created.ID])
}

func TestDeleteByNonOwnerLeavesTrade(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	owner := uuid.New()
	created, err := f.svc.Create(context.Background(), owner, validDraft())
	require.NoError(t, err)
	before := cloneTrade(f.repo.trades[created.ID])

	err = f.svc.Delete(context.Background(), uuid.New(), created.ID)

	assert.ErrorIs(t, err, ErrTradeForbidden)
	assert.Equal(t, before, f.repo.trades[created.ID])
	assert.Empty(t, f.uploader.deleted)
}

func TestDeleteTrade(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	owner := uuid.New()
	created, err := f.svc.Create(context.Background(), owner, validDraft())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), owner, created.ID))

	assert.NotContains(t, f.repo.trades, created.ID)
	assert.Equal(t, []string{ReportKey(created.ID)}, f.uploader.deleted)
	assert.Equal(t, live.EventTradeDeleted, f.events.events[len(f.events.events)-1].eventType)

	err = f.svc.Delete(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, ErrTradeNotFound)
}
