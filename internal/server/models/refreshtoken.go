package models

import "time"

// RefreshToken is one active session row. A user may hold any number of
// concurrent rows (one per device). Expiry lives inside the signed token
// itself, not in the row.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
}
