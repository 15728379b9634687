package blacklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/database/docstore"
	"bookly/models"
)

func newRepo(t *testing.T) *FileBlacklistRepo {
	t.Helper()
	store, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewFileBlacklistRepo(store)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "14165551234", NormalizePhone("+1 (416) 555-1234"))
	assert.Equal(t, "", NormalizePhone("none"))
}

func TestIsBlockedMatchesNormalizedIdentities(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Add(models.BlacklistEntry{
		Email: " Alex@Example.COM ",
		Phone: "+1 (416) 555-1234",
		IP:    "203.0.113.9",
	}))

	blocked, err := repo.IsBlocked("alex@example.com", "", "")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = repo.IsBlocked("", "14165551234", "")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = repo.IsBlocked("", "", "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = repo.IsBlocked("other@example.com", "+19995550000", "198.51.100.1")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestIsBlockedIgnoresEmptyKeys(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Add(models.BlacklistEntry{Email: "alex@example.com"}))

	// An entry with no phone must not match every empty phone.
	blocked, err := repo.IsBlocked("", "", "")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestAddFirstWriterWins(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Add(models.BlacklistEntry{Email: "alex@example.com", Reason: "first"}))
	require.NoError(t, repo.Add(models.BlacklistEntry{Email: "ALEX@example.com", Reason: "second"}))

	entries, err := repo.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Reason)
	assert.NotEmpty(t, entries[0].CreatedAt)
}

func TestAddDropsEmptyIdentity(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Add(models.BlacklistEntry{Name: "no identity"}))

	entries, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
