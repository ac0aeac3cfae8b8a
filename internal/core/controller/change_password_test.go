package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/guard"
)

type passwordFunc func(domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error)

func (f passwordFunc) Change(_ context.Context, req domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error) {
	return f(req)
}

func TestChangePasswordRedirectsHome(t *testing.T) {
	tests := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleAdmin, guard.AdminHome},
		{domain.RoleAgent, guard.AgentHome},
		{domain.RoleClient, guard.ClientHome},
	}
	for _, tc := range tests {
		t.Run(tc.role.String(), func(t *testing.T) {
			ok := passwordFunc(func(domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error) {
				return &domain.ChangePasswordResponse{}, nil
			})
			c := NewChangePassword(ok, stubSessions{sessionWith(tc.role)}, newEnv(t))
			defer c.Close()
			ctx := context.Background()

			require.NoError(t, c.Submit(ctx, domain.ChangePasswordRequest{}))
			state, err := c.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, ActionSuccess, state.Submit.Phase)
			assert.Equal(t, "Password changed successfully!", state.Submit.Message)
			assert.Empty(t, state.Redirect)

			require.Eventually(t, func() bool {
				st, err := c.Snapshot(ctx)
				return err == nil && st.Redirect == tc.want
			}, time.Second, 5*time.Millisecond)
		})
	}
}

func TestChangePasswordFailureKeepsUserOnPage(t *testing.T) {
	bad := passwordFunc(func(domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error) {
		return nil, failure(domain.KindValidation, "Current password is incorrect")
	})
	c := NewChangePassword(bad, stubSessions{sessionWith(domain.RoleClient)}, newEnv(t))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Submit(ctx, domain.ChangePasswordRequest{}))

	time.Sleep(60 * time.Millisecond)
	state, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, ActionError, state.Submit.Phase)
	assert.Equal(t, "Current password is incorrect", state.Submit.Message)
	assert.Empty(t, state.Redirect)

	require.NoError(t, c.Reset(ctx))
	state, err = c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, ActionIdle, state.Submit.Phase)
}
