package models

import "time"

// Account is a generated credential pair stored on behalf of a user.
// Password is kept in the clear on purpose: the game board shows it,
// and PasswordMD5 is only its hex digest for the registration wire format.
type Account struct {
	ID          string
	UserID      string
	Email       string
	Password    string
	PasswordMD5 string
	CreatedAt   time.Time
}
