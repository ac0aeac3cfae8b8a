package ports

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

// Every gateway method is a single round trip. Failures are *domain.Failure.

type AuthGateway interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResponse, error)
	ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error)
}

type AdminGateway interface {
	AgentStatistics(ctx context.Context) (*domain.AgentStatistics, error)
	CurrencyStatistics(ctx context.Context) (*domain.CurrencyStatistics, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	CreateAgent(ctx context.Context, req domain.CreateAgentRequest) (*domain.Agent, error)
	UpdateAgentStatus(ctx context.Context, agentID int64, status string) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, agentID int64) error
	ListCurrencies(ctx context.Context) (*domain.CurrenciesResponse, error)
	CreateCurrency(ctx context.Context, req domain.CreateCurrencyRequest) (*domain.CreateCurrencyResponse, error)
	UpdateCurrencyStatus(ctx context.Context, symbol string, active bool) (*domain.Currency, error)
	DeleteCurrency(ctx context.Context, symbol string) error
	RefreshRates(ctx context.Context) (*domain.RefreshRatesResponse, error)
}

type SettingsGateway interface {
	GlobalSettings(ctx context.Context) (*domain.GlobalSettingsResponse, error)
	UpdateGlobalSettings(ctx context.Context, s domain.GlobalSettings) (*domain.GlobalSettingsResponse, error)
	UpdateFeePercentage(ctx context.Context, req domain.UpdateFeePercentageRequest) error
}

type StatsGateway interface {
	GlobalStatistics(ctx context.Context) (*domain.GlobalStatisticsResponse, error)
}

type AgentGateway interface {
	ManagedClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.CreateClientResponse, error)
	DeleteClient(ctx context.Context, clientID string) error
	Deposit(ctx context.Context, req domain.DepositRequest) (*domain.DepositResponse, error)
	DepositStatistics(ctx context.Context) (*domain.DepositStatistics, error)
	Transactions(ctx context.Context) ([]domain.Transaction, error)
	PendingTransactions(ctx context.Context) ([]domain.Transaction, error)
	VerifyTransaction(ctx context.Context, transactionID string, req domain.VerifyTransactionRequest) (*domain.Transaction, error)
}

type ClientGateway interface {
	Profile(ctx context.Context) (*domain.ClientProfile, error)
	Account(ctx context.Context) (*domain.AccountDetails, error)
	Balance(ctx context.Context) (*domain.AccountBalance, error)
	Wallet(ctx context.Context) (*domain.CryptoWallet, error)
	Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransactionResponse, error)
	MobileRecharge(ctx context.Context, req domain.MobileRechargeRequest) (*domain.TransactionResponse, error)
	Notifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) (*domain.Notification, error)
	DeleteNotification(ctx context.Context, notificationID string) (*domain.NotificationDeleteResponse, error)
	WalletDetails(ctx context.Context) (*domain.CryptoWalletDetails, error)
	CryptoRates(ctx context.Context) (*domain.CryptoRates, error)
	CryptoTransactions(ctx context.Context) ([]domain.CryptoTransaction, error)
	BuyCrypto(ctx context.Context, req domain.CryptoBuyRequest) (*domain.CryptoTransactionResponse, error)
	BuyCryptoFromMain(ctx context.Context, req domain.CryptoBuyFromMainRequest) (*domain.CryptoTransactionResponse, error)
	SellCrypto(ctx context.Context, req domain.CryptoSellRequest) (*domain.CryptoTransactionResponse, error)
	TransferCrypto(ctx context.Context, req domain.CryptoTransferRequest) (*domain.CryptoTransactionResponse, error)
	UpdateWalletAddress(ctx context.Context, req domain.WalletAddressUpdateRequest) (*domain.WalletAddressUpdateResponse, error)
}
