package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

func validDeposit() domain.DepositRequest {
	return domain.DepositRequest{AccountID: "ACC1", Amount: 150, Description: " cash deposit "}
}

func TestClientManagementDepositAutoCloses(t *testing.T) {
	var sent domain.DepositRequest
	agent := &stubAgent{deposit: func(req domain.DepositRequest) (*domain.DepositResponse, error) {
		sent = req
		return &domain.DepositResponse{TransactionID: "TX-5"}, nil
	}}
	m := NewClientManagement(agent, newEnv(t))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.OpenDeposit(ctx, "CL-1"))
	require.NoError(t, m.Deposit(ctx, validDeposit()))

	assert.Equal(t, "CL-1", sent.ClientID)
	assert.Equal(t, "cash deposit", sent.Description)

	state, err := m.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, ActionSuccess, state.Deposit.Phase)
	assert.Equal(t, "Deposit successful! Transaction ID: TX-5", state.Deposit.Message)
	assert.Equal(t, "CL-1", state.DepositTarget)

	require.Eventually(t, func() bool {
		st, err := m.Snapshot(ctx)
		return err == nil && st.DepositTarget == "" && st.Deposit.Phase == ActionIdle
	}, time.Second, 5*time.Millisecond)
}

func TestClientManagementReopenCancelsAutoClose(t *testing.T) {
	agent := &stubAgent{deposit: func(domain.DepositRequest) (*domain.DepositResponse, error) {
		return &domain.DepositResponse{TransactionID: "TX-6"}, nil
	}}
	m := NewClientManagement(agent, newEnv(t))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.OpenDeposit(ctx, "CL-1"))
	require.NoError(t, m.Deposit(ctx, validDeposit()))
	require.NoError(t, m.OpenDeposit(ctx, "CL-2"))

	time.Sleep(80 * time.Millisecond)
	state, err := m.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CL-2", state.DepositTarget)
}

func TestClientManagementDepositFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message", err: failure(domain.KindServer, "Account is frozen"), want: "Account is frozen"},
		{name: "not found", err: failure(domain.KindNotFound, ""), want: "Client or account not found."},
		{name: "unknown", err: failure(domain.KindServer, ""), want: "Failed to make deposit. Please try again."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agent := &stubAgent{deposit: func(domain.DepositRequest) (*domain.DepositResponse, error) { return nil, tc.err }}
			m := NewClientManagement(agent, newEnv(t))
			defer m.Close()
			ctx := context.Background()

			require.NoError(t, m.OpenDeposit(ctx, "CL-1"))
			require.NoError(t, m.Deposit(ctx, validDeposit()))

			state, err := m.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, ActionError, state.Deposit.Phase)
			assert.Equal(t, tc.want, state.Deposit.Message)
			assert.Equal(t, "CL-1", state.DepositTarget)
		})
	}
}

func TestClientManagementLoad(t *testing.T) {
	agent := &stubAgent{clients: func() ([]domain.Client, error) {
		return []domain.Client{{ClientID: "CL-1", Status: domain.StatusActive}}, nil
	}}
	m := NewClientManagement(agent, newEnv(t))
	defer m.Close()

	require.NoError(t, m.Load(context.Background()))

	state, err := m.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, state.List.Phase)
	assert.Len(t, state.Clients, 1)
}
