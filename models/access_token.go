package models

import "time"

type AccessToken struct {
	// ? maybe change to uuid.UUID
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AccountID   string    `json:"account_id"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}
