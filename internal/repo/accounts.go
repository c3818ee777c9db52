package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
)

// Accounts is the account repository. Uniqueness key: normalized email.
//
// Duplicate policy is uniform rejection: both Add and Update fail with an
// IDENTITY_VIOLATION when the normalized email belongs to a different
// account, so the registration flow gets a distinguishable error instead
// of a silent no-op.
type Accounts struct {
	col *docstore.Collection[domain.Account]
}

// NewAccounts binds the accounts collection.
func NewAccounts(env *docstore.Env) *Accounts {
	return &Accounts{col: docstore.NewCollection[domain.Account](env, accountsFile)}
}

// Add appends a new account. Fails with IDENTITY_VIOLATION when an account
// with the same normalized email already exists; the collection is left
// unchanged.
func (r *Accounts) Add(ctx context.Context, account domain.Account) error {
	email := domain.NormalizeEmail(account.Email)
	return r.col.Update(ctx, func(records []domain.Account) ([]domain.Account, bool, error) {
		for _, existing := range records {
			if domain.NormalizeEmail(existing.Email) == email {
				return nil, false, docstore.NewIdentityViolation(
					fmt.Sprintf("account with email %q already exists", email))
			}
		}
		return append(records, account), true, nil
	})
}

// GetByEmail finds an account by normalized email. Returns nil when the
// email is blank or no account matches.
func (r *Accounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, nil
	}
	var found *domain.Account
	err := r.col.View(ctx, func(records []domain.Account) error {
		for _, a := range records {
			if domain.NormalizeEmail(a.Email) == normalized {
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

// GetByID finds an account by id. Returns nil when id is nil or unknown.
func (r *Accounts) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var found *domain.Account
	err := r.col.View(ctx, func(records []domain.Account) error {
		for _, a := range records {
			if a.ID == id {
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Update upserts an account by id. Fails with IDENTITY_VIOLATION when the
// account's email belongs to a different id. An unknown id is added, since
// registration and identity-update share this path.
func (r *Accounts) Update(ctx context.Context, account domain.Account) error {
	if account.ID == uuid.Nil {
		return fmt.Errorf("cannot update account with empty id")
	}
	email := domain.NormalizeEmail(account.Email)
	resolve := docstore.ResolveByKey(func(a domain.Account) uuid.UUID { return a.ID })

	return r.col.Update(ctx, func(records []domain.Account) ([]domain.Account, bool, error) {
		for _, existing := range records {
			if existing.ID != account.ID && domain.NormalizeEmail(existing.Email) == email {
				return nil, false, docstore.NewIdentityViolation(
					fmt.Sprintf("email %q is already in use", email))
			}
		}
		return docstore.Apply(records, account, resolve), true, nil
	})
}

// Any reports whether any account exists. Used to decide between the
// first-run registration flow and the login flow.
func (r *Accounts) Any(ctx context.Context) (bool, error) {
	var any bool
	err := r.col.View(ctx, func(records []domain.Account) error {
		any = len(records) > 0
		return nil
	})
	return any, err
}
