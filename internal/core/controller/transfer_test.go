package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

func accountStub() *stubClient {
	return &stubClient{account: func() (*domain.AccountDetails, error) {
		return &domain.AccountDetails{AccountID: "ACC123456", Balance: 900}, nil
	}}
}

func TestTransferUsesConfiguredFee(t *testing.T) {
	s := NewTransfer(accountStub(), settingsWithFee(1.5), newEnv(t))
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.SetAmount(ctx, 200))

	state, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, state.Load.Phase)
	assert.Equal(t, 1.5, state.FeePercentage)
	assert.Equal(t, 3.0, state.Fee)
	assert.Equal(t, 203.0, state.Total)
}

func TestTransferFallsBackWhenSettingsFail(t *testing.T) {
	settings := &stubSettings{get: func() (*domain.GlobalSettingsResponse, error) {
		return nil, failure(domain.KindAuthorization, "")
	}}
	s := NewTransfer(accountStub(), settings, newEnv(t))
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.SetAmount(ctx, 100))

	state, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, state.Load.Phase)
	assert.Equal(t, 2.0, state.FeePercentage)
	assert.Equal(t, 2.0, state.Fee)
	assert.Equal(t, 102.0, state.Total)
}

func TestTransferAccountFailure(t *testing.T) {
	client := &stubClient{account: func() (*domain.AccountDetails, error) {
		return nil, failure(domain.KindServer, "")
	}}
	s := NewTransfer(client, settingsWithFee(1), newEnv(t))
	defer s.Close()

	require.NoError(t, s.Load(context.Background()))

	state, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseError, state.Load.Phase)
	assert.Equal(t, "Failed to load account details. Please try again.", state.Load.Error)
	assert.Equal(t, 1.0, state.FeePercentage)
}

func TestTransferSubmit(t *testing.T) {
	var sent domain.TransferRequest
	client := accountStub()
	client.transfer = func(req domain.TransferRequest) (*domain.TransactionResponse, error) {
		sent = req
		return &domain.TransactionResponse{TransactionID: "TX-77"}, nil
	}
	s := NewTransfer(client, settingsWithFee(2.5), newEnv(t))
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Submit(ctx, " DEST9876 ", 40, "rent share"))

	assert.Equal(t, domain.TransferRequest{
		SourceAccountID:      "ACC123456",
		DestinationAccountID: "DEST9876",
		Amount:               40,
		TransferFee:          1,
		Description:          "rent share",
	}, sent)

	state, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, ActionSuccess, state.Submit.Phase)
	assert.Equal(t, "Transfer initiated successfully! Transaction ID: TX-77", state.Submit.Message)
	assert.Zero(t, state.Amount)
	require.NotNil(t, state.Last)
	assert.Equal(t, "TX-77", state.Last.TransactionID)
}

func TestTransferSubmitFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message wins", err: failure(domain.KindServer, "Insufficient balance"), want: "Insufficient balance"},
		{name: "authorization without message", err: failure(domain.KindAuthorization, ""), want: "Insufficient funds or account restrictions."},
		{name: "unreachable", err: context.DeadlineExceeded, want: TransportMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := accountStub()
			client.transfer = func(domain.TransferRequest) (*domain.TransactionResponse, error) { return nil, tc.err }
			s := NewTransfer(client, settingsWithFee(2), newEnv(t))
			defer s.Close()
			ctx := context.Background()

			require.NoError(t, s.Load(ctx))
			require.NoError(t, s.Submit(ctx, "DEST9876", 10, "groceries"))

			state, err := s.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, ActionError, state.Submit.Phase)
			assert.Equal(t, tc.want, state.Submit.Message)
		})
	}
}

func TestTransferSubmitValidatesLocally(t *testing.T) {
	client := accountStub()
	client.transfer = func(domain.TransferRequest) (*domain.TransactionResponse, error) {
		t.Fatal("invalid transfer reached the gateway")
		return nil, nil
	}
	s := NewTransfer(client, settingsWithFee(2), newEnv(t))
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Submit(ctx, "ACC123456", 10, "to myself"))

	state, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, ActionError, state.Submit.Phase)
	assert.NotEmpty(t, state.Submit.Message)
}
