package models

// User is a directory entry as returned by the server's user listing.
type User struct {
	ID             string `json:"id"`
	UserName       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
}
