package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/app"
	"github.com/haulory/haulory/internal/config"
	"github.com/haulory/haulory/internal/docstore"
	"github.com/haulory/haulory/internal/keystore"
	"github.com/haulory/haulory/internal/logging"
	"github.com/haulory/haulory/internal/repo"
)

// sessionFile records the acting account id between CLI invocations. It
// lives next to the encrypted collections and holds only a uuid.
const sessionFile = "session"

// buildApp opens the real application over the configured data directory
// and resumes any saved session. The returned cleanup clears the saved
// session when the app has been logged out.
func buildApp(opts *RootOptions) (*app.App, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Verbose {
		cfg.Verbose = true
	}

	log := logging.New(logging.Options{File: cfg.LogFile, Verbose: cfg.Verbose})
	keys := keystore.NewManager(keystore.Keyring{Service: keystore.DefaultService}, "")
	env, err := docstore.NewEnv(cfg.DataDir, keys, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open data dir %s: %w", cfg.DataDir, err)
	}

	a := app.New(repo.New(env, nil), log, nil)

	if id, ok := readSession(cfg.DataDir); ok {
		// A stale session (account removed, foreign data dir) is dropped
		// silently; the user just has to log in again.
		if err := a.Resume(context.Background(), id); err != nil {
			clearSession(cfg.DataDir)
		}
	}

	dataDir := cfg.DataDir
	cleanup := func() {
		if a.ActingAccount() == uuid.Nil {
			clearSession(dataDir)
		} else {
			saveSession(dataDir, a.ActingAccount())
		}
	}
	return a, cleanup, nil
}

func sessionPath(dataDir string) string {
	return filepath.Join(dataDir, sessionFile)
}

func readSession(dataDir string) (uuid.UUID, bool) {
	data, err := os.ReadFile(sessionPath(dataDir))
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func saveSession(dataDir string, id uuid.UUID) {
	_ = os.WriteFile(sessionPath(dataDir), []byte(id.String()+"\n"), 0o600)
}

func clearSession(dataDir string) {
	_ = os.Remove(sessionPath(dataDir))
}
