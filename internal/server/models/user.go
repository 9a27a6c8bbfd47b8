package models

import "time"

// User is the server-side account record.
type User struct {
	ID              int64
	Email           string
	PasswordHash    []byte
	FirstName       string
	LastName        string
	Role            string
	ProfilePhotoURL *string
	ReferralCode    string
	GoogleID        *string
	CreatedAt       time.Time
}
