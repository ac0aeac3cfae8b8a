package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

func newTestStore(t *testing.T, ttl time.Duration) *CredentialStore {
	t.Helper()
	addr := os.Getenv("EBANK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("EBANK_TEST_REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "test:" + uuid.NewString() + ":"
	return NewCredentialStore(client, prefix, ttl)
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)

	_, err := s.Get(ctx, ports.TokenKey)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)

	require.NoError(t, s.Set(ctx, ports.TokenKey, "abc"))
	require.NoError(t, s.Set(ctx, ports.UserKey, `{"username":"amina"}`))

	got, err := s.Get(ctx, ports.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, s.Delete(ctx, ports.TokenKey, ports.UserKey))
	_, err = s.Get(ctx, ports.UserKey)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)

	require.NoError(t, s.Delete(ctx))
}

func TestCredentialStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Minute)

	require.NoError(t, s.Set(ctx, ports.TokenKey, "abc"))
	ttl, err := s.client.TTL(ctx, s.key(ports.TokenKey)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestConnectFailure(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
