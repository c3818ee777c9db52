package repo

import (
	"testing"
	"time"

	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/keystore"
	"github.com/haulory/haulory/internal/testutil"
)

var testBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestRepos wires all repositories over a temp dir, an in-memory
// secret store and a deterministic clock.
func newTestRepos(t *testing.T) *Repos {
	t.Helper()
	keys := keystore.NewManager(testutil.NewMemorySecrets(), "")
	clock := testutil.NewFixedClock(testBase, time.Second)
	env, err := docstore.NewEnv(t.TempDir(), keys, nil, docstore.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewEnv() failed: %v", err)
	}
	return New(env, clock.Now)
}
