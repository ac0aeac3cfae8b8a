package controller

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

var (
	loadCryptoMessages    = serverFirst("Failed to load crypto data. Please try again.", nil)
	buyMessages           = serverFirst("Buy transaction failed. Please try again.", nil)
	buyFromMainMessages   = serverFirst("Buy from main transaction failed. Please try again.", nil)
	sellMessages          = serverFirst("Sell transaction failed. Please try again.", nil)
	walletAddressMessages = serverFirst("Failed to update wallet address. Please try again.", nil)
)

const missingRateMessage = "Exchange rate unavailable for the selected crypto."

// Trade kinds accepted by CryptoWallet.Trade.
const (
	TradeBuy         = "buy"
	TradeBuyFromMain = "buy-from-main"
	TradeSell        = "sell"
)

// TradeForm is the trading panel input. Amount is in MAD for every kind.
type TradeForm struct {
	Kind            string  `json:"kind"`
	Crypto          string  `json:"crypto"`
	Amount          float64 `json:"amount"`
	WalletAddress   string  `json:"walletAddress"`
	Description     string  `json:"description"`
	PlatformFee     float64 `json:"platformFee"`
	UseRealTimeRate bool    `json:"useRealTimeRate"`
}

// DefaultTradeForm is the initial trading panel.
func DefaultTradeForm() TradeForm {
	return TradeForm{
		Kind:            TradeBuy,
		Crypto:          domain.CryptoBTC,
		PlatformFee:     view.DefaultPlatformFee,
		UseRealTimeRate: true,
	}
}

// CryptoHolding is one line of the balances table.
type CryptoHolding struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
	ValueInMAD float64 `json:"valueInMAD"`
	Rate       float64 `json:"rate"`
}

type CryptoWalletState struct {
	Load         Load                        `json:"load"`
	Wallet       *domain.CryptoWalletDetails `json:"wallet,omitempty"`
	Rates        *domain.CryptoRates         `json:"rates,omitempty"`
	Transactions []domain.CryptoTransaction  `json:"transactions"`
	Holdings     []CryptoHolding             `json:"holdings"`
	Trade        Action                      `json:"trade"`
	Address      Action                      `json:"address"`
}

// CryptoWallet is the crypto trading page.
type CryptoWallet struct {
	screen
	client ports.ClientGateway
	state  CryptoWalletState
}

func NewCryptoWallet(client ports.ClientGateway, env Env) *CryptoWallet {
	return &CryptoWallet{screen: newScreen("crypto_wallet", env), client: client}
}

// Load fetches wallet, rates and history concurrently; all must succeed.
func (w *CryptoWallet) Load(ctx context.Context) error {
	if err := w.update(ctx, w.state.Load.begin); err != nil {
		return err
	}

	var (
		wallet *domain.CryptoWalletDetails
		rates  *domain.CryptoRates
		txs    []domain.CryptoTransaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { wallet, err = w.client.WalletDetails(gctx); return err })
	g.Go(func() (err error) { rates, err = w.client.CryptoRates(gctx); return err })
	g.Go(func() (err error) { txs, err = w.client.CryptoTransactions(gctx); return err })
	err := g.Wait()
	if err != nil {
		w.failed("load crypto data", err)
	}

	return w.update(ctx, func() {
		if err != nil {
			w.state.Load.fail(loadCryptoMessages.For(err))
			return
		}
		w.state.Wallet, w.state.Rates, w.state.Transactions = wallet, rates, txs
		w.state.Holdings = holdings(wallet, rates)
		w.state.Load.ready()
	})
}

func holdings(w *domain.CryptoWalletDetails, rates *domain.CryptoRates) []CryptoHolding {
	symbols := view.HeldCryptos(w)
	if len(symbols) == 0 {
		symbols = domain.CryptoSymbols
	}
	out := make([]CryptoHolding, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, CryptoHolding{
			Symbol:     sym,
			Name:       view.CryptoName(sym),
			Balance:    view.BalanceOf(w, sym),
			ValueInMAD: view.ValueInMAD(w, sym),
			Rate:       view.RateFor(rates, sym),
		})
	}
	return out
}

// Trade executes f. Selling converts the MAD amount to crypto at the
// current rate. The page reloads after a successful trade.
func (w *CryptoWallet) Trade(ctx context.Context, f TradeForm) error {
	var (
		rates  *domain.CryptoRates
		wallet *domain.CryptoWalletDetails
	)
	if err := w.read(ctx, func() { rates, wallet = w.state.Rates, w.state.Wallet }); err != nil {
		return err
	}
	if rates == nil || wallet == nil {
		return domain.ErrNotFound
	}
	if err := w.begin(ctx, &w.state.Trade); err != nil {
		return err
	}

	f.Crypto = strings.ToUpper(strings.TrimSpace(f.Crypto))
	f.Description = strings.TrimSpace(f.Description)
	address := strings.TrimSpace(f.WalletAddress)
	if address == "" {
		address = wallet.WalletAddress
	}
	rate := view.RateFor(rates, f.Crypto)

	var (
		resp     *domain.CryptoTransactionResponse
		err      error
		messages Messages
		success  string
	)
	switch {
	case rate <= 0 && f.Kind != TradeBuyFromMain:
		err = form.Errors{{Field: "cryptoType", Message: missingRateMessage}}
		messages = buyMessages
	case f.Kind == TradeBuy:
		messages, success = buyMessages, "Buy transaction successful!"
		req := domain.CryptoBuyRequest{
			CryptoType:    f.Crypto,
			Amount:        f.Amount,
			ExchangeRate:  rate,
			WalletAddress: address,
			Description:   orDefault(f.Description, "Buy "+f.Crypto),
		}
		if err = form.Validate(req); err == nil {
			resp, err = w.client.BuyCrypto(ctx, req)
		}
	case f.Kind == TradeBuyFromMain:
		messages, success = buyFromMainMessages, "Buy from main transaction successful!"
		req := domain.CryptoBuyFromMainRequest{
			CryptoType:      f.Crypto,
			Amount:          f.Amount,
			Description:     orDefault(f.Description, "Buy "+f.Crypto+" from main account"),
			PlatformFee:     f.PlatformFee,
			UseRealTimeRate: f.UseRealTimeRate,
		}
		if err = form.Validate(req); err == nil {
			resp, err = w.client.BuyCryptoFromMain(ctx, req)
		}
	case f.Kind == TradeSell:
		messages, success = sellMessages, "Sell transaction successful!"
		req := domain.CryptoSellRequest{
			CryptoType:    f.Crypto,
			CryptoAmount:  view.SellAmount(f.Amount, rate),
			ExchangeRate:  rate,
			WalletAddress: address,
			Description:   orDefault(f.Description, "Sell "+f.Crypto),
		}
		if err = form.Validate(req); err == nil {
			resp, err = w.client.SellCrypto(ctx, req)
		}
	default:
		err = form.Errors{{Field: "kind", Message: "Unknown trade type"}}
		messages = buyMessages
	}
	if err != nil {
		w.failed("trade "+f.Kind, err)
		return w.update(ctx, func() { w.state.Trade.fail(messages.For(err)) })
	}

	msg := resp.Message
	if msg == "" {
		msg = success + " Transaction ID: " + resp.TransactionID
	}
	if err := w.update(ctx, func() { w.state.Trade.succeed(msg) }); err != nil {
		return err
	}
	return w.Load(ctx)
}

// UpdateAddress changes the wallet's receiving address.
func (w *CryptoWallet) UpdateAddress(ctx context.Context, address string) error {
	if err := w.begin(ctx, &w.state.Address); err != nil {
		return err
	}
	req := domain.WalletAddressUpdateRequest{NewWalletAddress: strings.TrimSpace(address)}
	var resp *domain.WalletAddressUpdateResponse
	err := form.Validate(req)
	if err == nil {
		resp, err = w.client.UpdateWalletAddress(ctx, req)
	}
	if err != nil {
		w.failed("update wallet address", err)
		return w.update(ctx, func() { w.state.Address.fail(walletAddressMessages.For(err)) })
	}
	if err := w.update(ctx, func() {
		w.state.Address.succeed(orDefault(resp.Message, "Wallet address updated successfully."))
	}); err != nil {
		return err
	}
	return w.Load(ctx)
}

func (w *CryptoWallet) ResetActions(ctx context.Context) error {
	return w.update(ctx, func() {
		w.state.Trade.reset()
		w.state.Address.reset()
	})
}

func (w *CryptoWallet) Snapshot(ctx context.Context) (CryptoWalletState, error) {
	var out CryptoWalletState
	err := w.read(ctx, func() {
		out = w.state
		out.Transactions = slices.Clone(w.state.Transactions)
		out.Holdings = slices.Clone(w.state.Holdings)
	})
	return out, err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
