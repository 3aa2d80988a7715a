package models

import "time"

type Archive struct {
	ID         string
	UserID     string
	StorageKey string
	Filename   string
	Size       int64
	Uploaded   bool
	CreatedAt  time.Time
}
