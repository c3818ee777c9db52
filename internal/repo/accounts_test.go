package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
)

func TestAccounts_AddAndGetByEmail_Normalized(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	account := domain.NewAccount("Jane", "Doe", "a@b.com", "hash")
	require.NoError(t, r.Accounts.Add(ctx, account))

	found, err := r.Accounts.GetByEmail(ctx, " A@B.com ")
	require.NoError(t, err)
	require.NotNil(t, found, "lookup must normalize before comparing")
	assert.Equal(t, account.ID, found.ID)

	missing, err := r.Accounts.GetByEmail(ctx, "nobody@b.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	blank, err := r.Accounts.GetByEmail(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, blank)
}

func TestAccounts_DuplicateEmailRejected(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	first := domain.NewAccount("Jane", "Doe", "a@b.com", "hash1")
	require.NoError(t, r.Accounts.Add(ctx, first))

	dup := domain.NewAccount("Janet", "Doe", " A@B.COM ", "hash2")
	err := r.Accounts.Add(ctx, dup)
	require.Error(t, err)
	assert.True(t, docstore.IsIdentityViolation(err), "want IDENTITY_VIOLATION, got %v", err)

	// The collection is unchanged in length and content.
	got, err := r.Accounts.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "hash1", got.PasswordHash)
}

func TestAccounts_UpdateIdentity(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	account := domain.NewAccount("Jane", "Doe", "a@b.com", "hash")
	require.NoError(t, r.Accounts.Add(ctx, account))

	account.UpdateIdentity("Jane", "Smith", "jane@b.com")
	require.NoError(t, r.Accounts.Update(ctx, account))

	got, err := r.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Smith", got.LastName)
	assert.Equal(t, "jane@b.com", got.Email)
}

func TestAccounts_UpdateEmailCollisionRejected(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	a := domain.NewAccount("A", "One", "a@b.com", "h")
	b := domain.NewAccount("B", "Two", "b@b.com", "h")
	require.NoError(t, r.Accounts.Add(ctx, a))
	require.NoError(t, r.Accounts.Add(ctx, b))

	b.UpdateIdentity("B", "Two", "A@B.com")
	err := r.Accounts.Update(ctx, b)
	require.Error(t, err)
	assert.True(t, docstore.IsIdentityViolation(err))

	// b keeps its original email.
	got, err := r.Accounts.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@b.com", got.Email)
}

func TestAccounts_Any(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	any, err := r.Accounts.Any(ctx)
	require.NoError(t, err)
	assert.False(t, any)

	require.NoError(t, r.Accounts.Add(ctx, domain.NewAccount("J", "D", "a@b.com", "h")))
	any, err = r.Accounts.Any(ctx)
	require.NoError(t, err)
	assert.True(t, any)
}
