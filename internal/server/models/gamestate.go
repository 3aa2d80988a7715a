package models

import "time"

// GameState is the per-user cursor over the account list. One row per user.
type GameState struct {
	UserID       string
	CurrentIndex int
	CurrentLevel int
	UpdatedAt    time.Time
}
