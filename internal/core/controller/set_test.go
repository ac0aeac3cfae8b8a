package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

func TestNewSetBuildsScreensByRole(t *testing.T) {
	env := newEnv(t)
	gw := Gateways{}

	anonymous := NewSet(gw, stubSessions{}, domain.Session{}, env)
	assert.Zero(t, anonymous.Len())
	assert.Nil(t, anonymous.ChangePassword)
	require.NoError(t, anonymous.Start(context.Background()))

	admin := NewSet(gw, stubSessions{}, sessionWith(domain.RoleAdmin), env)
	defer admin.Close()
	assert.NotNil(t, admin.AdminDashboard)
	assert.NotNil(t, admin.SystemSettings)
	assert.Nil(t, admin.Transactions)
	assert.Nil(t, admin.NotificationBell)
	assert.NotNil(t, admin.ChangePassword)
	assert.Equal(t, 5, admin.Len())

	both := NewSet(gw, stubSessions{}, sessionWith(domain.RoleAgent, domain.RoleClient), env)
	defer both.Close()
	assert.Nil(t, both.AdminDashboard)
	assert.NotNil(t, both.ClientManagement)
	assert.NotNil(t, both.CryptoWallet)
	assert.Equal(t, 10, both.Len())
}

func TestSetStartPollsForClients(t *testing.T) {
	client := inboxStub()
	set := NewSet(Gateways{Client: client}, stubSessions{}, sessionWith(domain.RoleClient), newEnv(t))
	ctx := context.Background()

	require.NoError(t, set.Start(ctx))
	require.Eventually(t, func() bool { return client.Polls() >= 2 }, time.Second, 5*time.Millisecond)

	set.Close()
	on, err := set.NotificationBell.Polling(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}
