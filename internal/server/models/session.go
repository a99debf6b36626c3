package models

import "time"

// Session is a server-side refresh token issued on successful sign-in.
type Session struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
