package domain

import "time"

// User is a registered bookshop account.
type User struct {
	ID             int64
	Username       string
	FirstName      string
	LastName       string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}

// NewUser carries the fields needed to create a User; the ID and CreatedAt
// are assigned by storage.
type NewUser struct {
	Username       string
	FirstName      string
	LastName       string
	Email          string
	HashedPassword string
}
