// Package models defines client-side data models used by the machine CLI.
package models

import "time"

// Account is a generated credential pair as the server returns it.
// PasswordMD5 is the 32-character lowercase hex digest of Password.
type Account struct {
	ID          string    `json:"id,omitempty"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	PasswordMD5 string    `json:"password_md5"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
