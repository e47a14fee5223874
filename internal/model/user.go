// Package model defines domain entities for the application.
package model

import "time"

// User is a registered platform user. The row is created only after
// the remote connected account exists; AccountID is never empty.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	AccountID      string    `json:"account_id"`
	Country        string    `json:"country"`
	Capabilities   []string  `json:"capabilities"`
	CreatedAt      time.Time `json:"created_at"`
}
