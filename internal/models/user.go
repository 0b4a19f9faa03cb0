package models

import "time"

type User struct {
	ID           int64  `json:"id" redis:"id"`
	Username     string `json:"username" redis:"username"`
	Email        string `json:"email" redis:"email"`
	// PasswordHash rides along in the stored JSON; handlers never marshal
	// a User straight to the wire.
	PasswordHash string `json:"password_hash" redis:"password_hash"`
	IsAdmin      bool   `json:"is_admin" redis:"is_admin"`

	LastLogin time.Time `json:"last_login,omitempty" redis:"last_login"`
	CreatedAt time.Time `json:"created_at" redis:"created_at"`
}
