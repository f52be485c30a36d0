package models

import "time"

// User is a directory record. It is created once at registration and never
// updated. HashedPassword is a bcrypt string; the plaintext is never stored.
type User struct {
	ID             string    `json:"id"`
	UserName       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	CreatedAt      time.Time `json:"-"`
}
