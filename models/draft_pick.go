package models

import "github.com/google/uuid"

// DraftPick records which team currently holds a future pick.
type DraftPick struct {
	ID     uuid.UUID `json:"id"`
	Year   int       `json:"year"`
	Round  int       `json:"round"`
	TeamID uuid.UUID `json:"team_id"`
}
