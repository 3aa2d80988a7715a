package models

// GameView is the server's snapshot of the stepper: the account under the
// cursor plus its position. Index is zero-based; Level starts at 1 and grows
// by one every time the cursor wraps past the last account.
type GameView struct {
	Index   int     `json:"index"`
	Level   int     `json:"level"`
	Total   int     `json:"total"`
	Account Account `json:"account"`
}
