package models

import "time"

// Archive describes one uploaded account export. Key is the storage key the
// server issued with the presigned URL; it doubles as the public handle for
// download requests.
type Archive struct {
	Key       string    `json:"key"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	Uploaded  bool      `json:"uploaded"`
	CreatedAt time.Time `json:"created_at"`
}
