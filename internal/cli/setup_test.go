package cli

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()

	_, ok := readSession(dir)
	assert.False(t, ok, "no session file yet")

	id := uuid.New()
	saveSession(dir, id)
	got, ok := readSession(dir)
	require.True(t, ok)
	assert.Equal(t, id, got)

	clearSession(dir)
	_, ok = readSession(dir)
	assert.False(t, ok)
}

func TestReadSession_Garbage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(sessionPath(dir), []byte("not a uuid\n"), 0o600))

	_, ok := readSession(dir)
	assert.False(t, ok)
}
