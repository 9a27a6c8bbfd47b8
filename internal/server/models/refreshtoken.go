package models

import "time"

// RefreshToken is a server-stored opaque refresh token with its expiry.
type RefreshToken struct {
	UserID  int64
	Token   string
	Expires time.Time
}
