package model

import "time"

type AuthRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthUser is the identity attached to a request that passed the auth gate.
type AuthUser struct {
	ID int64
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the outward projection of a User. It never carries the hash.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
	}
}

// SessionClaim is the identity carried inside a signed session token.
type SessionClaim struct {
	UserID int64
}
