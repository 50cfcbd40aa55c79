// Package models defines the persisted entities of the authentication
// service.
package models

import "time"

// User is an identity record. ID and Login are immutable after creation;
// PasswordHash is only ever replaced by a credential-change operation.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
