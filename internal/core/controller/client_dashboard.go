package controller

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

// maskVisible is how many leading characters of an identifier stay visible.
const maskVisible = 4

var (
	loadDashboardMessages  = fallback("Failed to load dashboard data. Please try again.")
	cryptoTransferMessages = serverFirst("Crypto transfer failed. Please try again later.", map[domain.FailureKind]string{
		domain.KindValidation:    "Invalid transfer details. Please check your input.",
		domain.KindAuthorization: "Insufficient crypto balance or wallet restrictions.",
		domain.KindNotFound:      "Recipient wallet address not found.",
	})
)

type ClientDashboardState struct {
	Load    Load                   `json:"load"`
	Profile *domain.ClientProfile  `json:"profile,omitempty"`
	Account *domain.AccountDetails `json:"account,omitempty"`
	Balance *domain.AccountBalance `json:"balance,omitempty"`
	Wallet  *domain.CryptoWallet   `json:"wallet,omitempty"`

	ShowAccountID bool `json:"showAccountId"`
	ShowWallet    bool `json:"showWallet"`
	// AccountID and WalletAddress are masked unless shown.
	AccountID     string `json:"accountId"`
	WalletAddress string `json:"walletAddress"`

	CryptoTransfer Action `json:"cryptoTransfer"`
}

// ClientDashboard is the client's home: profile, account, balance and the
// crypto wallet summary.
type ClientDashboard struct {
	screen
	client ports.ClientGateway
	state  ClientDashboardState

	closeTransfer func()
}

func NewClientDashboard(client ports.ClientGateway, env Env) *ClientDashboard {
	return &ClientDashboard{screen: newScreen("client_dashboard", env), client: client}
}

// Load fetches the four resources concurrently; all must succeed.
func (d *ClientDashboard) Load(ctx context.Context) error {
	if err := d.update(ctx, d.state.Load.begin); err != nil {
		return err
	}

	var (
		profile *domain.ClientProfile
		account *domain.AccountDetails
		balance *domain.AccountBalance
		wallet  *domain.CryptoWallet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { profile, err = d.client.Profile(gctx); return err })
	g.Go(func() (err error) { account, err = d.client.Account(gctx); return err })
	g.Go(func() (err error) { balance, err = d.client.Balance(gctx); return err })
	g.Go(func() (err error) { wallet, err = d.client.Wallet(gctx); return err })
	err := g.Wait()
	if err != nil {
		d.failed("load dashboard", err)
	}

	return d.update(ctx, func() {
		if err != nil {
			d.state.Load.fail(loadDashboardMessages.For(err))
			return
		}
		d.state.Profile, d.state.Account, d.state.Balance, d.state.Wallet = profile, account, balance, wallet
		d.state.Load.ready()
	})
}

// ToggleAccountID reveals or masks the account identifier.
func (d *ClientDashboard) ToggleAccountID(ctx context.Context) error {
	return d.update(ctx, func() { d.state.ShowAccountID = !d.state.ShowAccountID })
}

// ToggleWallet reveals or masks the wallet address.
func (d *ClientDashboard) ToggleWallet(ctx context.Context) error {
	return d.update(ctx, func() { d.state.ShowWallet = !d.state.ShowWallet })
}

// TransferCrypto sends crypto to another wallet. A zero network fee uses
// the default one. On success the dialog closes after the long toast delay.
func (d *ClientDashboard) TransferCrypto(ctx context.Context, req domain.CryptoTransferRequest) error {
	if err := d.begin(ctx, &d.state.CryptoTransfer); err != nil {
		return err
	}
	req.RecipientWalletAddress = strings.TrimSpace(req.RecipientWalletAddress)
	if req.NetworkFee == 0 {
		req.NetworkFee = domain.DefaultNetworkFee
	}

	var resp *domain.CryptoTransactionResponse
	err := form.Validate(req)
	if err == nil {
		resp, err = d.client.TransferCrypto(ctx, req)
	}
	if err != nil {
		d.failed("crypto transfer", err)
	}
	return d.update(ctx, func() {
		if err != nil {
			d.state.CryptoTransfer.fail(cryptoTransferMessages.For(err))
			return
		}
		msg := resp.Message
		if msg == "" {
			msg = "Crypto transfer initiated successfully! Transaction ID: " + resp.TransactionID
		}
		d.state.CryptoTransfer.succeed(msg)
		if d.closeTransfer != nil {
			d.closeTransfer()
		}
		d.closeTransfer = d.sched.After(d.timing.LongToast, func() {
			d.closeTransfer = nil
			d.state.CryptoTransfer.reset()
		})
	})
}

// CloseCryptoTransfer dismisses the transfer dialog.
func (d *ClientDashboard) CloseCryptoTransfer(ctx context.Context) error {
	return d.update(ctx, func() {
		if d.closeTransfer != nil {
			d.closeTransfer()
			d.closeTransfer = nil
		}
		d.state.CryptoTransfer.reset()
	})
}

func (d *ClientDashboard) Snapshot(ctx context.Context) (ClientDashboardState, error) {
	var out ClientDashboardState
	err := d.read(ctx, func() {
		out = d.state
		if d.state.Account != nil {
			out.AccountID = view.Reveal(d.state.Account.AccountID, maskVisible, d.state.ShowAccountID)
		}
		if d.state.Wallet != nil {
			out.WalletAddress = view.Reveal(d.state.Wallet.WalletAddress, maskVisible, d.state.ShowWallet)
		}
	})
	return out, err
}
