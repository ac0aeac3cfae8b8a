package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

func newStore(t *testing.T, passphrase string) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "credentials.json"), passphrase)
	require.NoError(t, err)
	return s
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("", "")
	assert.Error(t, err)
}

func TestGetMissingFile(t *testing.T) {
	s := newStore(t, "")

	_, err := s.Get(context.Background(), ports.TokenKey)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestSetGetDeletePlain(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "")

	require.NoError(t, s.Set(ctx, ports.TokenKey, "abc"))
	require.NoError(t, s.Set(ctx, ports.UserKey, `{"username":"amina"}`))

	got, err := s.Get(ctx, ports.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Delete(ctx, ports.TokenKey))
	_, err = s.Get(ctx, ports.TokenKey)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)

	require.NoError(t, s.Delete(ctx, ports.UserKey, "never-set"))
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "empty store removes its file")
}

func TestSealedValuesAreNotReadable(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "correct horse")

	require.NoError(t, s.Set(ctx, ports.TokenKey, "secret-token"))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "secret-token"))

	var doc document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.True(t, doc.Sealed)
	assert.NotEmpty(t, doc.Salt)

	got, err := s.Get(ctx, ports.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", got)

	// A second store with the same passphrase reads the file.
	other, err := New(s.Path(), "correct horse")
	require.NoError(t, err)
	got, err = other.Get(ctx, ports.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", got)
}

func TestWrongPassphraseIsCorrupt(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "correct horse")
	require.NoError(t, s.Set(ctx, ports.TokenKey, "secret-token"))

	wrong, err := New(s.Path(), "battery staple")
	require.NoError(t, err)
	_, err = wrong.Get(ctx, ports.TokenKey)
	assert.ErrorIs(t, err, domain.ErrCorruptSession)

	plain, err := New(s.Path(), "")
	require.NoError(t, err)
	_, err = plain.Get(ctx, ports.TokenKey)
	assert.ErrorIs(t, err, domain.ErrCorruptSession)
}

func TestCorruptFile(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "")
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, err := s.Get(ctx, ports.TokenKey)
	assert.ErrorIs(t, err, domain.ErrCorruptSession)

	require.NoError(t, s.Delete(ctx, ports.TokenKey, ports.UserKey))
	_, err = s.Get(ctx, ports.TokenKey)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestSetOverwritesCorruptFile(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "")
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version":99}`), 0o600))

	require.NoError(t, s.Set(ctx, ports.TokenKey, "abc"))
	got, err := s.Get(ctx, ports.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}
