package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/domain"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates an account and its main driver profile, then logs the
// new account in.
//
// The main profile is created idempotently: if a profile already links to
// the new account id (possible after a crash between the two writes on a
// previous attempt) it is left alone.
func (a *App) Register(ctx context.Context, in RegisterInput) (domain.Account, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return domain.Account{}, validationf("first and last name are required")
	}
	if domain.NormalizeEmail(in.Email) == "" {
		return domain.Account{}, validationf("email is required")
	}
	if in.Password == "" {
		return domain.Account{}, validationf("password is required")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return domain.Account{}, err
	}

	account := domain.NewAccount(in.FirstName, in.LastName, in.Email, hash)
	if err := a.repos.Accounts.Add(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("register: %w", err)
	}

	existing, err := a.repos.Drivers.GetByLinkedAccount(ctx, account.ID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("register: %w", err)
	}
	if existing == nil {
		main := domain.NewDriverProfile(account.ID, &account.ID, in.FirstName, in.LastName, in.Email)
		if err := a.repos.Drivers.Save(ctx, main); err != nil {
			return domain.Account{}, fmt.Errorf("register: create main profile: %w", err)
		}
	}

	a.setActing(account.ID)
	a.log.Info("account registered", "account", account.ID)
	return account, nil
}

// Resume restores a previous session by account id, as saved by the CLI
// between invocations. An unknown id is invalid credentials, not an
// error to act on.
func (a *App) Resume(ctx context.Context, accountID uuid.UUID) error {
	if accountID == uuid.Nil {
		return errInvalidCredentials
	}
	account, err := a.repos.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("resume session: %w", err)
	}
	if account == nil {
		return errInvalidCredentials
	}
	a.setActing(account.ID)
	return nil
}

// Login verifies credentials and sets the acting account. The error never
// distinguishes an unknown email from a wrong password.
func (a *App) Login(ctx context.Context, email, password string) (domain.Account, error) {
	account, err := a.repos.Accounts.GetByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, fmt.Errorf("login: %w", err)
	}
	if account == nil || !checkPassword(account.PasswordHash, password) {
		return domain.Account{}, errInvalidCredentials
	}

	a.setActing(account.ID)
	a.log.Info("logged in", "account", account.ID)
	return *account, nil
}
