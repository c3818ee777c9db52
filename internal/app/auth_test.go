package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulory/haulory/internal/docstore"
)

func TestRegister_CreatesAccountAndMainProfile(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	account, err := a.Register(ctx, RegisterInput{
		FirstName: "Jane", LastName: "Doe",
		Email: " Jane@Haulory.Test ", Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@haulory.test", account.Email)
	assert.NotEqual(t, "s3cret", account.PasswordHash, "password must be hashed")
	assert.Equal(t, account.ID, a.ActingAccount(), "registration logs in")

	drivers, err := a.ListDrivers(ctx)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.True(t, drivers[0].IsMainProfile())
	assert.Equal(t, account.ID, *drivers[0].LinkedAccountID)
}

func TestRegister_Validation(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	cases := []RegisterInput{
		{LastName: "Doe", Email: "a@b.com", Password: "p"},
		{FirstName: "Jane", Email: "a@b.com", Password: "p"},
		{FirstName: "Jane", LastName: "Doe", Email: "   ", Password: "p"},
		{FirstName: "Jane", LastName: "Doe", Email: "a@b.com"},
	}
	for _, in := range cases {
		_, err := a.Register(ctx, in)
		assert.True(t, IsValidation(err), "input %+v: want validation error, got %v", in, err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.Register(ctx, RegisterInput{FirstName: "Jane", LastName: "Doe", Email: "a@b.com", Password: "p"})
	require.NoError(t, err)

	_, err = a.Register(ctx, RegisterInput{FirstName: "Janet", LastName: "Doe", Email: " A@B.COM ", Password: "p"})
	require.Error(t, err)
	assert.True(t, docstore.IsIdentityViolation(err))
}

func TestLogin(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	registered, err := a.Register(ctx, RegisterInput{FirstName: "Jane", LastName: "Doe", Email: "a@b.com", Password: "s3cret"})
	require.NoError(t, err)
	a.Logout()
	assert.Equal(t, uuid.Nil, a.ActingAccount())

	_, err = a.Login(ctx, "a@b.com", "wrong")
	assert.True(t, IsInvalidCredentials(err))

	_, err = a.Login(ctx, "nobody@b.com", "s3cret")
	assert.True(t, IsInvalidCredentials(err), "unknown email reads the same as a wrong password")

	account, err := a.Login(ctx, " A@B.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
	assert.Equal(t, registered.ID, a.ActingAccount())
}

func TestSessionGating(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.ListJobs(ctx)
	require.Error(t, err)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ErrCodeNotLoggedIn, ae.Code)
}
