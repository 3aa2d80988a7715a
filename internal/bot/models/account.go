// Package models defines the account records the bot generates and tracks.
package models

import "time"

// AccountStatus is the lifecycle state of a generated account.
type AccountStatus string

const (
	// StatusPending — created locally, not submitted yet.
	StatusPending AccountStatus = "pending"
	// StatusSuccess — the endpoint accepted the registration.
	StatusSuccess AccountStatus = "success"
	// StatusError — the submission failed; ErrorMessage says why.
	StatusError AccountStatus = "error"
)

type Account struct {
	ID            string
	Email         string
	PasswordPlain string
	PasswordMD5   string
	Status        AccountStatus
	ErrorMessage  string
	CreatedAt     time.Time
}
