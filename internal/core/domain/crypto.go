package domain

// Supported crypto symbols.
const (
	CryptoBTC  = "BTC"
	CryptoETH  = "ETH"
	CryptoUSDT = "USDT"
)

// CryptoSymbols lists the tradeable cryptos.
var CryptoSymbols = []string{CryptoBTC, CryptoETH, CryptoUSDT}

// DefaultNetworkFee is applied to crypto transfers unless overridden.
const DefaultNetworkFee = 0.001

// CryptoBalanceDetail is one balance line of the wallet.
type CryptoBalanceDetail struct {
	ID          int64     `json:"id"`
	CryptoType  string    `json:"cryptoType"`
	Balance     float64   `json:"balance"`
	ValueInMAD  float64   `json:"valueInMAD"`
	CreatedDate Timestamp `json:"createdDate"`
	UpdatedDate Timestamp `json:"updatedDate"`
}

// CryptoWalletDetails is returned by GET /client/crypto/wallet on the wallet page.
type CryptoWalletDetails struct {
	ID               int64                 `json:"id"`
	WalletAddress    string                `json:"walletAddress"`
	ClientID         string                `json:"clientId"`
	CreatedDate      Timestamp             `json:"createdDate"`
	UpdatedDate      Timestamp             `json:"updatedDate"`
	Status           string                `json:"status"`
	SupportedCryptos []string              `json:"supportedCryptos"`
	LastAccessDate   Timestamp             `json:"lastAccessDate"`
	CryptoBalances   map[string]float64    `json:"cryptoBalances"`
	BalanceDetails   []CryptoBalanceDetail `json:"balanceDetails"`
	TotalValueMAD    float64               `json:"totalValueMAD"`
	TotalBalances    int64                 `json:"totalBalances"`
}

// CryptoRates are MAD prices per unit.
type CryptoRates struct {
	BTC       float64 `json:"BTC"`
	ETH       float64 `json:"ETH"`
	USDT      float64 `json:"USDT"`
	Timestamp int64   `json:"timestamp"`
}

// CryptoBuyRequest is the body of POST /client/crypto/buy.
type CryptoBuyRequest struct {
	CryptoType    string  `json:"cryptoType" validate:"required,oneof=BTC ETH USDT"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	ExchangeRate  float64 `json:"exchangeRate" validate:"gt=0"`
	WalletAddress string  `json:"walletAddress" validate:"required"`
	Description   string  `json:"description" validate:"omitempty,max=200,nospecial"`
}

// CryptoBuyFromMainRequest is the body of POST /client/crypto/buy-from-main.
type CryptoBuyFromMainRequest struct {
	CryptoType      string  `json:"cryptoType" validate:"required,oneof=BTC ETH USDT"`
	Amount          float64 `json:"amount" validate:"gt=0"`
	Description     string  `json:"description" validate:"omitempty,max=200,nospecial"`
	PlatformFee     float64 `json:"platformFee" validate:"gte=0"`
	UseRealTimeRate bool    `json:"useRealTimeRate"`
}

// CryptoTransferRequest is the body of POST /client/crypto/transfer.
type CryptoTransferRequest struct {
	RecipientWalletAddress string  `json:"recipientWalletAddress" validate:"required,min=10"`
	CryptoType             string  `json:"cryptoType" validate:"required,oneof=BTC ETH USDT"`
	CryptoAmount           float64 `json:"cryptoAmount" validate:"gt=0"`
	NetworkFee             float64 `json:"networkFee" validate:"gte=0"`
	Description            string  `json:"description" validate:"omitempty,max=200,nospecial"`
}

// CryptoSellRequest is the body of POST /client/crypto/sell.
type CryptoSellRequest struct {
	CryptoType    string  `json:"cryptoType" validate:"required,oneof=BTC ETH USDT"`
	CryptoAmount  float64 `json:"cryptoAmount" validate:"gt=0"`
	ExchangeRate  float64 `json:"exchangeRate" validate:"gt=0"`
	WalletAddress string  `json:"walletAddress" validate:"required"`
	Description   string  `json:"description" validate:"omitempty,max=200,nospecial"`
}

type CryptoTransactionResponse struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Message       string  `json:"message,omitempty"`
}

// CryptoTransaction is one line of the crypto history.
type CryptoTransaction struct {
	TransactionID string    `json:"transactionId"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	Date          Timestamp `json:"date"`
}

// WalletAddressUpdateRequest is the body of PUT /client/crypto/wallet/address.
type WalletAddressUpdateRequest struct {
	NewWalletAddress string `json:"newWalletAddress" validate:"required,min=10"`
}

type WalletAddressUpdateResponse struct {
	ClientID         int64  `json:"clientId"`
	BTCWalletAddress string `json:"btcWalletAddress"`
	Message          string `json:"message"`
}
