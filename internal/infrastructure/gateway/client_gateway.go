package gateway

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

// ClientAPI covers the endpoints of the client role.
type ClientAPI struct{ c *Client }

var _ ports.ClientGateway = (*ClientAPI)(nil)

func NewClientAPI(c *Client) *ClientAPI { return &ClientAPI{c: c} }

func (g *ClientAPI) Profile(ctx context.Context) (*domain.ClientProfile, error) {
	var out domain.ClientProfile
	if err := g.c.get(ctx, "client.Profile", unversioned, "/client/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) Account(ctx context.Context) (*domain.AccountDetails, error) {
	var out domain.AccountDetails
	if err := g.c.get(ctx, "client.Account", unversioned, "/client/account", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) Balance(ctx context.Context) (*domain.AccountBalance, error) {
	var out domain.AccountBalance
	if err := g.c.get(ctx, "client.Balance", unversioned, "/client/account/balance", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) Wallet(ctx context.Context) (*domain.CryptoWallet, error) {
	var out domain.CryptoWallet
	if err := g.c.get(ctx, "client.Wallet", unversioned, "/client/crypto/wallet", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransactionResponse, error) {
	var out domain.TransactionResponse
	if err := g.c.post(ctx, "client.Transfer", unversioned, "/client/transfers", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) MobileRecharge(ctx context.Context, req domain.MobileRechargeRequest) (*domain.TransactionResponse, error) {
	var out domain.TransactionResponse
	if err := g.c.post(ctx, "client.MobileRecharge", unversioned, "/client/mobile-recharge", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := g.c.get(ctx, "client.Notifications", unversioned, "/client/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *ClientAPI) MarkNotificationRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	var out domain.Notification
	path := "/client/notifications/" + segment(notificationID) + "/read"
	if err := g.c.put(ctx, "client.MarkNotificationRead", unversioned, path, nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) DeleteNotification(ctx context.Context, notificationID string) (*domain.NotificationDeleteResponse, error) {
	var out domain.NotificationDeleteResponse
	if err := g.c.delete(ctx, "client.DeleteNotification", unversioned, "/client/notifications/"+segment(notificationID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) WalletDetails(ctx context.Context) (*domain.CryptoWalletDetails, error) {
	var out domain.CryptoWalletDetails
	if err := g.c.get(ctx, "client.WalletDetails", unversioned, "/client/crypto/wallet", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) CryptoRates(ctx context.Context) (*domain.CryptoRates, error) {
	var out domain.CryptoRates
	if err := g.c.get(ctx, "client.CryptoRates", unversioned, "/client/crypto/rates", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) CryptoTransactions(ctx context.Context) ([]domain.CryptoTransaction, error) {
	var out []domain.CryptoTransaction
	if err := g.c.get(ctx, "client.CryptoTransactions", unversioned, "/client/crypto/transactions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *ClientAPI) BuyCrypto(ctx context.Context, req domain.CryptoBuyRequest) (*domain.CryptoTransactionResponse, error) {
	return g.trade(ctx, "client.BuyCrypto", "/client/crypto/buy", req)
}

func (g *ClientAPI) BuyCryptoFromMain(ctx context.Context, req domain.CryptoBuyFromMainRequest) (*domain.CryptoTransactionResponse, error) {
	return g.trade(ctx, "client.BuyCryptoFromMain", "/client/crypto/buy-from-main", req)
}

func (g *ClientAPI) SellCrypto(ctx context.Context, req domain.CryptoSellRequest) (*domain.CryptoTransactionResponse, error) {
	return g.trade(ctx, "client.SellCrypto", "/client/crypto/sell", req)
}

func (g *ClientAPI) TransferCrypto(ctx context.Context, req domain.CryptoTransferRequest) (*domain.CryptoTransactionResponse, error) {
	return g.trade(ctx, "client.TransferCrypto", "/client/crypto/transfer", req)
}

func (g *ClientAPI) trade(ctx context.Context, op, path string, req any) (*domain.CryptoTransactionResponse, error) {
	var out domain.CryptoTransactionResponse
	if err := g.c.post(ctx, op, unversioned, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ClientAPI) UpdateWalletAddress(ctx context.Context, req domain.WalletAddressUpdateRequest) (*domain.WalletAddressUpdateResponse, error) {
	var out domain.WalletAddressUpdateResponse
	if err := g.c.put(ctx, "client.UpdateWalletAddress", unversioned, "/client/crypto/wallet/address", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
