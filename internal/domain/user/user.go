// Package user holds the identity-store domain model. The site has a small,
// fixed set of accounts (the owner plus any collaborators); registration is
// not part of the public surface.
package user

import "time"

type User struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
