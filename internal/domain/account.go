// Package domain holds the persisted entities: accounts, driver profiles,
// jobs, delivery receipts and vehicle assets. Entities carry their own
// identity and normalization rules; storage mechanics live in docstore.
package domain

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

var emailFolder = cases.Fold()

// NormalizeEmail trims whitespace and case-folds an email address. All
// email comparisons in the app go through this; "  A@B.com " and "a@b.com"
// are the same account.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// Account is a registered user of the app.
//
// Identity: id. Uniqueness: normalized email. Accounts are created at
// registration and mutated by identity updates; they are never deleted.
type Account struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
}

// NewAccount creates an account with a fresh id and normalized fields.
func NewAccount(firstName, lastName, email, passwordHash string) Account {
	return Account{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}
}

// UpdateIdentity replaces the account's name and email, normalized.
func (a *Account) UpdateIdentity(firstName, lastName, email string) {
	a.FirstName = strings.TrimSpace(firstName)
	a.LastName = strings.TrimSpace(lastName)
	a.Email = NormalizeEmail(email)
}

// DisplayName returns "First Last" for UI surfaces.
func (a Account) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
