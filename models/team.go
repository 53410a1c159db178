package models

import "github.com/google/uuid"

type Team struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	WinPercentage float64   `json:"win_percentage"` // last season
}

type TeamWithPicks struct {
	Team
	DraftPicks []DraftPick `json:"draft_picks"`
}
