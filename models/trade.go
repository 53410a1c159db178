package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/trade-machine/valuation"
)

type Trade struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Description string           `json:"description"`
	Teams       []string         `json:"teams"`
	DraftPicks  []TradeDraftPick `json:"draft_picks"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TradeDraftPick is one pick changing hands inside a trade. Teams are
// stored by name.
type TradeDraftPick struct {
	ID            uuid.UUID `json:"id"`
	TradeID       uuid.UUID `json:"trade_id"`
	Position      int       `json:"-"`
	Year          int       `json:"year"`
	Round         int       `json:"round"`
	PickNumber    int       `json:"pick_number"`
	GivingTeam    string    `json:"giving_team"`
	ReceivingTeam string    `json:"receiving_team"`
}

func (p TradeDraftPick) Transfer() valuation.Transfer {
	return valuation.Transfer{
		Year:          p.Year,
		Round:         p.Round,
		PickNumber:    p.PickNumber,
		GivingTeam:    p.GivingTeam,
		ReceivingTeam: p.ReceivingTeam,
	}
}

// Transfers converts the trade's picks for the valuation engine.
func (t *Trade) Transfers() []valuation.Transfer {
	out := make([]valuation.Transfer, len(t.DraftPicks))
	for i, p := range t.DraftPicks {
		out[i] = p.Transfer()
	}
	return out
}

// Evaluate values the trade with the pick chart.
func (t *Trade) Evaluate() valuation.Result {
	return valuation.Evaluate(t.Teams, t.Transfers())
}

// Years returns the distinct draft years in the trade, in first-seen order.
func (t *Trade) Years() []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, p := range t.DraftPicks {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	return years
}
