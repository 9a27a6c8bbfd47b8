// Package common contains shared constants and sentinel errors used across
// SevenTour components.
package common

// Fixed key names for the two credential entries persisted by the client.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)
