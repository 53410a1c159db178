package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/live"
	"github.com/Dosada05/trade-machine/models"
	"github.com/Dosada05/trade-machine/repositories"
	"github.com/Dosada05/trade-machine/storage"
	"github.com/Dosada05/trade-machine/valuation"
)

// TradeEventPublisher is notified after a trade change is committed.
type TradeEventPublisher interface {
	PublishTradeEvent(userID uuid.UUID, eventType string, tradeID uuid.UUID)
}

// TradeView is a stored trade together with its valuation.
type TradeView struct {
	models.Trade
	Valuation valuation.Result `json:"valuation"`
	Analysis  Analysis         `json:"analysis"`
}

// Evaluation is the valuation of a draft that has not been saved.
type Evaluation struct {
	Description string               `json:"description"`
	Teams       []string             `json:"teams"`
	DraftPicks  []valuation.Transfer `json:"draft_picks"`
	Valuation   valuation.Result     `json:"valuation"`
	Analysis    Analysis             `json:"analysis"`
}

type TradeService interface {
	Evaluate(ctx context.Context, draft TradeDraft) (*Evaluation, error)
	Create(ctx context.Context, userID uuid.UUID, draft TradeDraft) (*TradeView, error)
	Get(ctx context.Context, userID, tradeID uuid.UUID) (*TradeView, error)
	List(ctx context.Context, userID uuid.UUID) ([]TradeView, error)
	Update(ctx context.Context, userID, tradeID uuid.UUID, draft TradeDraft) (*TradeView, error)
	Delete(ctx context.Context, userID, tradeID uuid.UUID) error
}

type TradeServiceDeps struct {
	Trades    repositories.TradeRepository
	Validator TradeValidator
	League    *fixtures.League
	// Events and Reports are optional.
	Events  TradeEventPublisher
	Reports storage.FileUploader
	Clock   clockwork.Clock
	Logger  zerolog.Logger
}

type tradeService struct {
	tradeRepo repositories.TradeRepository
	validator TradeValidator
	league    *fixtures.League
	events    TradeEventPublisher
	reports   storage.FileUploader
	clock     clockwork.Clock
	logger    zerolog.Logger
}

func NewTradeService(deps TradeServiceDeps) TradeService {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &tradeService{
		tradeRepo: deps.Trades,
		validator: deps.Validator,
		league:    deps.League,
		events:    deps.Events,
		reports:   deps.Reports,
		clock:     clock,
		logger:    deps.Logger.With().Str("service", "trade").Logger(),
	}
}

// flatten turns builder teams into participant names and transfers. A
// pick's giving team is the team entry it is listed under.
func (d TradeDraft) flatten() ([]string, []models.TradeDraftPick) {
	teams := make([]string, 0, len(d.Teams))
	picks := make([]models.TradeDraftPick, 0)
	for _, team := range d.Teams {
		giving := strings.TrimSpace(team.Name)
		teams = append(teams, giving)
		for _, p := range team.Picks {
			picks = append(picks, models.TradeDraftPick{
				Year:          p.Year,
				Round:         p.Round,
				PickNumber:    p.PickNumber,
				GivingTeam:    giving,
				ReceivingTeam: strings.TrimSpace(p.ReceivingTeam),
			})
		}
	}
	return teams, picks
}

func (s *tradeService) view(trade *models.Trade) TradeView {
	result := trade.Evaluate()
	return TradeView{
		Trade:     *trade,
		Valuation: result,
		Analysis:  analyzeTrade(trade.Teams, trade.Years(), result, s.league),
	}
}

func (s *tradeService) Evaluate(ctx context.Context, draft TradeDraft) (*Evaluation, error) {
	if err := s.validator.Validate(draft); err != nil {
		return nil, err
	}

	teams, picks := draft.flatten()
	trade := models.Trade{Description: strings.TrimSpace(draft.Description), Teams: teams, DraftPicks: picks}
	v := s.view(&trade)

	return &Evaluation{
		Description: trade.Description,
		Teams:       teams,
		DraftPicks:  trade.Transfers(),
		Valuation:   v.Valuation,
		Analysis:    v.Analysis,
	}, nil
}

func (s *tradeService) Create(ctx context.Context, userID uuid.UUID, draft TradeDraft) (*TradeView, error) {
	if err := s.validator.Validate(draft); err != nil {
		return nil, err
	}

	teams, picks := draft.flatten()
	now := s.clock.Now().UTC()
	trade := &models.Trade{
		ID:          uuid.New(),
		UserID:      userID,
		Description: strings.TrimSpace(draft.Description),
		Teams:       teams,
		DraftPicks:  picks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tradeRepo.Create(ctx, nil, trade); err != nil {
		if errors.Is(err, repositories.ErrTradeUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	s.logger.Info().Str("trade_id", trade.ID.String()).Str("user_id", userID.String()).
		Int("picks", len(picks)).Msg("trade created")
	s.publish(userID, live.EventTradeCreated, trade.ID)

	v := s.view(trade)
	return &v, nil
}

// loadOwned fetches a trade and checks that userID owns it.
func (s *tradeService) loadOwned(ctx context.Context, userID, tradeID uuid.UUID) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		if errors.Is(err, repositories.ErrTradeNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	if trade.UserID != userID {
		return nil, ErrTradeForbidden
	}
	return trade, nil
}

func (s *tradeService) Get(ctx context.Context, userID, tradeID uuid.UUID) (*TradeView, error) {
	trade, err := s.loadOwned(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}
	v := s.view(trade)
	return &v, nil
}

func (s *tradeService) List(ctx context.Context, userID uuid.UUID) ([]TradeView, error) {
	trades, err := s.tradeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	views := make([]TradeView, len(trades))
	for i := range trades {
		views[i] = s.view(&trades[i])
	}
	return views, nil
}

func (s *tradeService) Update(ctx context.Context, userID, tradeID uuid.UUID, draft TradeDraft) (*TradeView, error) {
	if err := s.validator.Validate(draft); err != nil {
		return nil, err
	}

	trade, err := s.loadOwned(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	teams, picks := draft.flatten()
	trade.Description = strings.TrimSpace(draft.Description)
	trade.Teams = teams
	trade.DraftPicks = picks
	trade.UpdatedAt = s.clock.Now().UTC()

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		if errors.Is(err, repositories.ErrTradeNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}

	s.logger.Info().Str("trade_id", trade.ID.String()).Int("picks", len(picks)).Msg("trade updated")
	s.publish(userID, live.EventTradeUpdated, trade.ID)

	v := s.view(trade)
	return &v, nil
}

func (s *tradeService) Delete(ctx context.Context, userID, tradeID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, tradeID); err != nil {
		return err
	}

	if err := s.tradeRepo.Delete(ctx, tradeID); err != nil {
		if errors.Is(err, repositories.ErrTradeNotFound) {
			return ErrTradeNotFound
		}
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	s.logger.Info().Str("trade_id", tradeID.String()).Msg("trade deleted")
	s.publish(userID, live.EventTradeDeleted, tradeID)

	if s.reports != nil {
		// A report may never have been exported; failures are not fatal.
		if err := s.reports.Delete(ctx, ReportKey(tradeID)); err != nil {
			s.logger.Warn().Err(err).Str("trade_id", tradeID.String()).Msg("failed to remove trade report")
		}
	}
	return nil
}

func (s *tradeService) publish(userID uuid.UUID, eventType string, tradeID uuid.UUID) {
	if s.events != nil {
		s.events.PublishTradeEvent(userID, eventType, tradeID)
	}
}
