package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/pkg/logger"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "Admin1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSetPersistsAndLoadRestores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path, logger.NewNop())
	store.Set(&domain.User{Username: "Admin1", Role: domain.RoleAdmin, UUID: "u-1"}, "opaque-token")

	restored := NewStore(path, logger.NewNop())
	require.NoError(t, restored.Load())

	current := restored.Current()
	require.NotNil(t, current)
	assert.Equal(t, "Admin1", current.Username)
	assert.Equal(t, domain.RoleAdmin, current.Role)
	assert.Equal(t, "opaque-token", restored.Token())
	assert.True(t, restored.Authenticated())
}

func TestLoadMissingFileIsAnonymous(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"), logger.NewNop())
	require.NoError(t, store.Load())
	assert.False(t, store.Authenticated())
	assert.Nil(t, store.Current())
}

func TestLoadDiscardsExpiredJWT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path, logger.NewNop())
	store.Set(&domain.User{Username: "Admin1"}, signedToken(t, time.Now().Add(-time.Hour)))

	restored := NewStore(path, logger.NewNop())
	require.NoError(t, restored.Load())
	assert.False(t, restored.Authenticated())
	assert.Empty(t, restored.Token())

	// The stale cache file is removed so the next run starts clean.
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadKeepsUnexpiredJWT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path, logger.NewNop())
	store.Set(&domain.User{Username: "Admin1"}, signedToken(t, time.Now().Add(time.Hour)))

	restored := NewStore(path, logger.NewNop())
	require.NoError(t, restored.Load())
	assert.True(t, restored.Authenticated())
}

func TestClearRemovesCacheAndNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, logger.NewNop())

	var events []*domain.User
	store.Subscribe(func(user *domain.User) { events = append(events, user) })

	store.Set(&domain.User{Username: "Admin1"}, "")
	store.Clear()

	require.Len(t, events, 2)
	require.NotNil(t, events[0])
	assert.Equal(t, "Admin1", events[0].Username)
	assert.Nil(t, events[1])

	assert.False(t, store.Authenticated())
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCurrentReturnsCopy(t *testing.T) {
	store := NewStore("", logger.NewNop())
	store.Set(&domain.User{Username: "Admin1"}, "")

	first := store.Current()
	first.Username = "tampered"
	assert.Equal(t, "Admin1", store.Current().Username)
}
