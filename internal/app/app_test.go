package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/domain"
	"github.com/haulory/haulory/internal/keystore"
	"github.com/haulory/haulory/internal/repo"
	"github.com/haulory/haulory/internal/testutil"
)

var testBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	keys := keystore.NewManager(testutil.NewMemorySecrets(), "")
	clock := testutil.NewFixedClock(testBase, time.Second)
	env, err := docstore.NewEnv(t.TempDir(), keys, nil, docstore.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewEnv() failed: %v", err)
	}
	return New(repo.New(env, clock.Now), nil, clock.Now)
}

// newLoggedInApp registers a default account so session-gated operations
// work immediately.
func newLoggedInApp(t *testing.T) *App {
	t.Helper()
	a := newTestApp(t)
	_, err := a.Register(context.Background(), RegisterInput{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@haulory.test", Password: "s3cret",
	})
	require.NoError(t, err)
	return a
}

func testSignature() domain.Signature {
	return domain.Signature{Strokes: []domain.SignatureStroke{{
		Points: []domain.SignaturePoint{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 1}},
	}}}
}
