// Package services contains the server-side business logic. This file
// implements AuthService, the authentication flow controller: registration,
// login, logout, token verification, and refresh-token rotation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpashkov/videovault/internal/common"
	"github.com/mpashkov/videovault/internal/dbx"
	"github.com/mpashkov/videovault/internal/server/auth"
	"github.com/mpashkov/videovault/internal/server/models"
	"github.com/mpashkov/videovault/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the credential store, password hasher, token
// signer, and session registry. Credential and token failures collapse into
// common.ErrorUnauthorized at this boundary; storage errors pass through
// unchanged.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	signer      *auth.TokenSigner
}

// NewAuthService constructs an AuthService over the given database handle,
// repositories, and token signer.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, signer *auth.TokenSigner) *AuthService {
	return &AuthService{db: db, repomanager: m, signer: signer}
}

// Register creates a new user. A login that is already taken yields
// common.ErrorConflict. Registration does not log the user in; no tokens
// are issued.
func (s *AuthService) Register(ctx context.Context, login string, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByLogin(ctx, login); err == nil {
		return nil, common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking existing login: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	// The unique constraint still backstops a concurrent registration of
	// the same login; the repository maps it to ErrorConflict.
	user, err := repo.Create(ctx, login, hash)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and, on success, mints both token classes and
// registers the refresh token as a new session. An unknown login and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login string, password string) (*TokenPair, *auth.Payload, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil, common.ErrorUnauthorized
	}

	payload := auth.Payload{ID: user.ID, Login: user.Login}
	pair, err := s.issueTokens(ctx, payload, s.db)
	if err != nil {
		return nil, nil, err
	}
	return pair, &payload, nil
}

// Logout revokes the session for the given refresh token. Deleting an
// already-deleted row is a no-op, so a replayed logout is safe.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, userID int64) error {
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken, userID)
}

// VerifyAccess checks an access token and returns its payload. Pure and
// side-effect-free: an expired access token is never silently re-minted
// here; renewal is the explicit Refresh operation.
func (s *AuthService) VerifyAccess(token string) (*auth.Payload, error) {
	return s.signer.VerifyAccess(token)
}

// VerifyRefreshIsActive reports whether the refresh token is still
// registered for the user. A revoked token stays invalid no matter how
// sound its signature is.
func (s *AuthService) VerifyRefreshIsActive(ctx context.Context, token string, userID int64) (bool, error) {
	return s.repomanager.RefreshTokens(s.db).Exists(ctx, token, userID)
}

// Refresh exchanges a valid, still-registered refresh token for a new token
// pair. The old session row is replaced by the new one in a single
// transaction, so the presented token cannot be replayed afterwards.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, *auth.Payload, error) {
	payload, err := s.signer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	active, err := s.repomanager.RefreshTokens(s.db).Exists(ctx, refreshToken, payload.ID)
	if err != nil {
		return nil, nil, err
	}
	if !active {
		return nil, nil, common.ErrorUnauthorized
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken, payload.ID); err != nil {
			return err
		}
		var issueErr error
		pair, issueErr = s.issueTokens(ctx, *payload, tx)
		return issueErr
	}); err != nil {
		return nil, nil, err
	}
	return pair, payload, nil
}

func (s *AuthService) issueTokens(ctx context.Context, payload auth.Payload, db dbx.DBTX) (*TokenPair, error) {
	refresh, err := s.signer.SignRefresh(payload)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, payload.ID, refresh); err != nil {
		return nil, err
	}
	access, err := s.signer.SignAccess(payload)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
