package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

var (
	loadAccountMessages = fallback("Failed to load account details. Please try again.")
	transferMessages    = serverFirst("Transfer failed. Please try again later.", map[domain.FailureKind]string{
		domain.KindValidation:    "Invalid transfer details. Please check your input.",
		domain.KindAuthorization: "Insufficient funds or account restrictions.",
	})
)

type TransferState struct {
	Load          Load                   `json:"load"`
	Account       *domain.AccountDetails `json:"account,omitempty"`
	FeePercentage float64                `json:"feePercentage"`
	Amount        float64                `json:"amount"`
	Fee           float64                `json:"fee"`
	Total         float64                `json:"total"`
	Submit        Action                 `json:"submit"`
	Last          *domain.Transaction    `json:"last,omitempty"`
}

// Transfer sends money from the client's account to another account. The
// fee follows the global fee percentage, or the fallback when the settings
// cannot be read.
type Transfer struct {
	screen
	client   ports.ClientGateway
	settings ports.SettingsGateway
	state    TransferState
}

func NewTransfer(client ports.ClientGateway, settings ports.SettingsGateway, env Env) *Transfer {
	t := &Transfer{screen: newScreen("transfer", env), client: client, settings: settings}
	t.state.FeePercentage = env.Timing.FallbackFee
	return t
}

// Load fetches the account and the fee percentage concurrently. Only the
// account decides the screen phase.
func (t *Transfer) Load(ctx context.Context) error {
	if err := t.update(ctx, t.state.Load.begin); err != nil {
		return err
	}

	// Not an errgroup: both errors are needed, the settings one only selects the fallback fee.
	var (
		wg       sync.WaitGroup
		account  *domain.AccountDetails
		settings *domain.GlobalSettingsResponse
		accErr   error
		setErr   error
	)
	wg.Add(2)
	go func() { defer wg.Done(); account, accErr = t.client.Account(ctx) }()
	go func() { defer wg.Done(); settings, setErr = t.settings.GlobalSettings(ctx) }()
	wg.Wait()

	if accErr != nil {
		t.failed("load account", accErr)
	}
	if setErr != nil {
		t.log.Info().Err(setErr).Float64("fee_percentage", t.timing.FallbackFee).Msg("using fallback fee percentage")
	}

	return t.update(ctx, func() {
		if setErr != nil {
			t.state.FeePercentage = t.timing.FallbackFee
		} else {
			t.state.FeePercentage = settings.Settings.FeePercentage
		}
		t.recompute()
		if accErr != nil {
			t.state.Load.fail(loadAccountMessages.For(accErr))
			return
		}
		t.state.Account = account
		t.state.Load.ready()
	})
}

// SetAmount updates the amount and the derived fee.
func (t *Transfer) SetAmount(ctx context.Context, amount float64) error {
	return t.update(ctx, func() {
		t.state.Amount = amount
		t.recompute()
	})
}

func (t *Transfer) recompute() {
	t.state.Fee = view.Fee(t.state.Amount, t.state.FeePercentage)
	t.state.Total = view.TransferTotal(t.state.Amount, t.state.FeePercentage)
}

// Submit transfers amount to destination.
func (t *Transfer) Submit(ctx context.Context, destination string, amount float64, description string) error {
	var (
		account *domain.AccountDetails
		pct     float64
	)
	if err := t.read(ctx, func() { account, pct = t.state.Account, t.state.FeePercentage }); err != nil {
		return err
	}
	if err := t.begin(ctx, &t.state.Submit); err != nil {
		return err
	}

	req := domain.TransferRequest{
		DestinationAccountID: strings.TrimSpace(destination),
		Amount:               amount,
		TransferFee:          view.Fee(amount, pct),
		Description:          strings.TrimSpace(description),
	}
	if account != nil {
		req.SourceAccountID = account.AccountID
	}

	var resp *domain.TransactionResponse
	err := form.Validate(req)
	if err == nil {
		resp, err = t.client.Transfer(ctx, req)
	}
	if err != nil {
		t.failed("transfer", err)
	}
	return t.update(ctx, func() {
		if err != nil {
			t.state.Submit.fail(transferMessages.For(err))
			return
		}
		msg := resp.Message
		if msg == "" {
			msg = "Transfer initiated successfully! Transaction ID: " + resp.TransactionID
		}
		t.state.Last = resp
		t.state.Amount = 0
		t.recompute()
		t.state.Submit.succeed(msg)
	})
}

func (t *Transfer) Snapshot(ctx context.Context) (TransferState, error) {
	var out TransferState
	err := t.read(ctx, func() { out = t.state })
	return out, err
}
