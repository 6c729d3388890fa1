// Package services contains application services for the gameguesser client.
// This file defines the authentication service: account sign-in, local
// registration and login, logout and the current identity.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/users"
	"github.com/dmitrijs2005/gameguesser/internal/cryptox"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignInAccount: adopt an externally issued account id and make sure a
//     streak record exists for it.
//   - Register: create a local account keyed by email and sign it in.
//   - Login: check a local account's password and sign it in.
//   - Logout: forget the signed-in identity; streak records are kept.
//   - Current: the signed-in identity, or nil.
//
// Account and local identities never share streak records.
type AuthService interface {
	SignInAccount(ctx context.Context, accountID, userName string) (*models.Identity, error)
	Register(ctx context.Context, email, userName string, password []byte) (*models.Identity, error)
	Login(ctx context.Context, email string, password []byte) (*models.Identity, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Identity, error)
}

// IdentityStore persists the signed-in identity.
type IdentityStore interface {
	Current(ctx context.Context) (*models.Identity, error)
	Set(ctx context.Context, id models.Identity) error
	Clear(ctx context.Context) error
}

type authService struct {
	accounts users.AccountRepository
	locals   users.LocalRepository
	sessions IdentityStore
	logger   logging.Logger
}

func NewAuthService(accounts users.AccountRepository, locals users.LocalRepository, sessions IdentityStore, logger logging.Logger) AuthService {
	return &authService{accounts: accounts, locals: locals, sessions: sessions, logger: logger}
}

func (a *authService) SignInAccount(ctx context.Context, accountID, userName string) (*models.Identity, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}

	created, err := a.accounts.Ensure(ctx, accountID, strings.TrimSpace(userName))
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if created {
		a.logger.Info(ctx, "new account record", "account", accountID)
	}

	return a.signIn(ctx, models.Identity{Kind: models.IdentityAccount, ID: accountID})
}

// Register hashes the password with argon2id and stores the local account.
func (a *authService) Register(ctx context.Context, email, userName string, password []byte) (*models.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.LocalUser{Email: email, UserName: strings.TrimSpace(userName), PasswordHash: hash}
	if err := a.locals.Create(ctx, u); err != nil {
		if errors.Is(err, users.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return a.signIn(ctx, models.Identity{Kind: models.IdentityLocal, ID: email})
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := a.locals.GetCredentials(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := cryptox.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		a.logger.Warn(ctx, "stored password hash unreadable", "email", email, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return a.signIn(ctx, models.Identity{Kind: models.IdentityLocal, ID: email})
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.Identity, error) {
	return a.sessions.Current(ctx)
}

func (a *authService) signIn(ctx context.Context, id models.Identity) (*models.Identity, error) {
	if err := a.sessions.Set(ctx, id); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.logger.Info(ctx, "signed in", "user", id.String())
	return &id, nil
}

func normalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("%w: %q is not an email address", ErrInvalidInput, s)
	}
	return s, nil
}
