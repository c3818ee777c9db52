// Package app is the application layer: registration and login, driver
// management, the job board and the vehicle fleet. It enforces input
// validation and the acting-account session; persistence rules live in
// the repositories underneath.
package app

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haulory/haulory/internal/repo"
)

// App holds the repositories and the in-process session.
type App struct {
	repos *repo.Repos
	log   *slog.Logger
	now   func() time.Time

	mu     sync.Mutex
	acting uuid.UUID // uuid.Nil when logged out
}

// New wires the application layer. A nil logger discards; a nil clock
// selects time.Now.
func New(repos *repo.Repos, log *slog.Logger, now func() time.Time) *App {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if now == nil {
		now = time.Now
	}
	return &App{repos: repos, log: log, now: now}
}

// ActingAccount returns the logged-in account id, or uuid.Nil.
func (a *App) ActingAccount() uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acting
}

// Logout clears the session. Always succeeds.
func (a *App) Logout() {
	a.mu.Lock()
	a.acting = uuid.Nil
	a.mu.Unlock()
}

func (a *App) setActing(id uuid.UUID) {
	a.mu.Lock()
	a.acting = id
	a.mu.Unlock()
}

// requireActing returns the session account id or ErrCodeNotLoggedIn.
func (a *App) requireActing() (uuid.UUID, error) {
	id := a.ActingAccount()
	if id == uuid.Nil {
		return uuid.Nil, errNotLoggedIn
	}
	return id, nil
}
