package entity

import "time"

// Profile holds display and contact fields kept apart from credentials.
// Every user gets exactly one; it is created alongside the user and
// re-created lazily if it ever goes missing.
type Profile struct {
	ID        string
	UserID    string
	Address   string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
