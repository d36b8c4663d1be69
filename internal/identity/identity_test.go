package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/maternal/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATA_DIR", t.TempDir())

	s, err := storage.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserIDStableWithinProvider(t *testing.T) {
	p := New(newTestStore(t))

	first := p.UserID()
	assert.NotEmpty(t, first)
	assert.Regexp(t, `^user_\d+_[0-9a-z]{9}$`, first)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, p.UserID())
	}
}

func TestUserIDSurvivesRestart(t *testing.T) {
	store := newTestStore(t)

	first := New(store).UserID()

	// A fresh provider over the same store must reuse the persisted id
	second := New(store).UserID()
	assert.Equal(t, first, second)
}

func TestUserIDDiffersPerProfile(t *testing.T) {
	a := New(newTestStore(t)).UserID()
	b := New(newTestStore(t)).UserID()
	assert.NotEqual(t, a, b)
}
