package models

import "time"

// RefreshToken is an opaque server-stored token. The access JWT is never
// persisted, only these rotate through the database.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
