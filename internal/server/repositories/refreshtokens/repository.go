// Package refreshtokens declares the session registry contract: the
// persisted set of currently-valid refresh tokens. Removing a row revokes
// the session regardless of the token's cryptographic validity.
package refreshtokens

import "context"

// Repository defines operations on the session registry. Rows are never
// swept here; an expired-but-present row is rejected at token verification,
// so cleanup is an operational concern.
type Repository interface {
	// Create inserts a session row for userID. Multiple rows per user
	// coexist (multi-device sessions); nothing is overwritten.
	Create(ctx context.Context, userID int64, token string) error

	// Delete removes the row matching both token and userID. Deleting a
	// non-existent row is a no-op, making logout idempotent.
	Delete(ctx context.Context, token string, userID int64) error

	// Exists reports whether the token/user pair is still registered.
	Exists(ctx context.Context, token string, userID int64) (bool, error)
}
