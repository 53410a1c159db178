package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/trade-machine/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrTradeNotFound     = errors.New("trade not found")
	ErrTradeUserNotFound = errors.New("trade owner not found")
)

// TradeRepository persists trades together with their pick rows.
// Pick order is preserved through the position column.
type TradeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, trade *models.Trade) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trade, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// Update replaces description, teams and the full pick set.
	Update(ctx context.Context, trade *models.Trade) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresTradeRepository struct {
	db *sql.DB
}

func NewPostgresTradeRepository(db *sql.DB) TradeRepository {
	return &postgresTradeRepository{db: db}
}

// Create inserts the trade and its picks. With a nil exec it opens its own
// transaction; otherwise the caller owns the transaction.
func (r *postgresTradeRepository) Create(ctx context.Context, exec SQLExecutor, trade *models.Trade) error {
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}
	if trade.Teams == nil {
		trade.Teams = []string{}
	}

	if exec != nil {
		return r.insertTrade(ctx, exec, trade)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.insertTrade(ctx, tx, trade)
	})
}

func (r *postgresTradeRepository) insertTrade(ctx context.Context, exec SQLExecutor, trade *models.Trade) error {
	query := `
		INSERT INTO trades (id, user_id, description, teams, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := exec.ExecContext(ctx, query,
		trade.ID,
		trade.UserID,
		trade.Description,
		pq.Array(trade.Teams),
		trade.CreatedAt,
		trade.UpdatedAt,
	)
	if err != nil {
		if _, ok := constraintViolation(err, pqForeignKeyViolation); ok {
			return ErrTradeUserNotFound
		}
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return r.insertPicks(ctx, exec, trade)
}

func (r *postgresTradeRepository) insertPicks(ctx context.Context, exec SQLExecutor, trade *models.Trade) error {
	query := `
		INSERT INTO trade_draft_picks (id, trade_id, position, year, round, pick_number, giving_team, receiving_team)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range trade.DraftPicks {
		p := &trade.DraftPicks[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.TradeID = trade.ID
		p.Position = i

		_, err := exec.ExecContext(ctx, query,
			p.ID, p.TradeID, p.Position, p.Year, p.Round, p.PickNumber, p.GivingTeam, p.ReceivingTeam)
		if err != nil {
			return fmt.Errorf("failed to insert trade draft pick %d: %w", i, err)
		}
	}
	return nil
}

func (r *postgresTradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	query := `
		SELECT id, user_id, description, teams, created_at, updated_at
		FROM trades
		WHERE id = $1`

	trade := &models.Trade{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Description,
		pq.Array(&trade.Teams),
		&trade.CreatedAt,
		&trade.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	picks, err := r.listPicks(ctx, []uuid.UUID{trade.ID})
	if err != nil {
		return nil, err
	}
	trade.DraftPicks = picks[trade.ID]
	if trade.DraftPicks == nil {
		trade.DraftPicks = []models.TradeDraftPick{}
	}
	return trade, nil
}

func (r *postgresTradeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trade, error) {
	query := `
		SELECT id, user_id, description, teams, created_at, updated_at
		FROM trades
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	trades := make([]models.Trade, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, pq.Array(&t.Teams), &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
		ids = append(ids, t.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return trades, nil
	}

	picks, err := r.listPicks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range trades {
		trades[i].DraftPicks = picks[trades[i].ID]
		if trades[i].DraftPicks == nil {
			trades[i].DraftPicks = []models.TradeDraftPick{}
		}
	}
	return trades, nil
}

func (r *postgresTradeRepository) listPicks(ctx context.Context, tradeIDs []uuid.UUID) (map[uuid.UUID][]models.TradeDraftPick, error) {
	ids := make([]string, len(tradeIDs))
	for i, id := range tradeIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, trade_id, position, year, round, pick_number, giving_team, receiving_team
		FROM trade_draft_picks
		WHERE trade_id = ANY($1::uuid[])
		ORDER BY trade_id, position ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list trade draft picks: %w", err)
	}
	defer rows.Close()

	byTrade := make(map[uuid.UUID][]models.TradeDraftPick, len(tradeIDs))
	for rows.Next() {
		var p models.TradeDraftPick
		if err := rows.Scan(&p.ID, &p.TradeID, &p.Position, &p.Year, &p.Round, &p.PickNumber, &p.GivingTeam, &p.ReceivingTeam); err != nil {
			return nil, fmt.Errorf("failed to scan trade draft pick: %w", err)
		}
		byTrade[p.TradeID] = append(byTrade[p.TradeID], p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return byTrade, nil
}

func (r *postgresTradeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM trades WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return n, nil
}

func (r *postgresTradeRepository) Update(ctx context.Context, trade *models.Trade) error {
	if trade.Teams == nil {
		trade.Teams = []string{}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE trades
			SET description = $1, teams = $2, updated_at = $3
			WHERE id = $4`

		result, err := tx.ExecContext(ctx, query, trade.Description, pq.Array(trade.Teams), trade.UpdatedAt, trade.ID)
		if err != nil {
			return fmt.Errorf("failed to update trade: %w", err)
		}
		if err := checkAffectedRows(result, ErrTradeNotFound); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM trade_draft_picks WHERE trade_id = $1`, trade.ID); err != nil {
			return fmt.Errorf("failed to clear trade draft picks: %w", err)
		}

		for i := range trade.DraftPicks {
			trade.DraftPicks[i].ID = uuid.Nil
		}
		return r.insertPicks(ctx, tx, trade)
	})
}

func (r *postgresTradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return checkAffectedRows(result, ErrTradeNotFound)
}
