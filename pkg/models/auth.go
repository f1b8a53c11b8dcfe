package models

import "time"

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthConfig configures local administrator authentication. LocalUsers maps
// usernames to bcrypt password hashes.
type AuthConfig struct {
	JWTSecret     string            `json:"jwt_secret"`
	JWTExpiration Duration          `json:"jwt_expiration"`
	LocalUsers    map[string]string `json:"local_users"`
}
