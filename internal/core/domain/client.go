package domain

// ClientProfile is returned by GET /client/profile.
type ClientProfile struct {
	ClientID             string    `json:"clientId"`
	Address              string    `json:"address"`
	IdentificationNumber string    `json:"identificationNumber"`
	EnrollmentDate       Timestamp `json:"enrollmentDate"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	PhoneNumber          *string   `json:"phoneNumber"`
	Status               string    `json:"status"`
	LastLogin            Timestamp `json:"lastLogin"`
	NationalID           *string   `json:"nationalId"`
	DateOfBirth          *string   `json:"dateOfBirth"`
}

// AccountDetails is returned by GET /client/account.
type AccountDetails = Account

// AccountBalance is returned by GET /client/account/balance.
type AccountBalance struct {
	AccountID   string    `json:"accountId"`
	LastUpdated Timestamp `json:"lastUpdated"`
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
}

// CryptoWallet is the dashboard summary of the client's wallet.
type CryptoWallet struct {
	TotalValue       map[string]float64 `json:"totalValue"`
	ClientID         string             `json:"clientId"`
	CreatedDate      Timestamp          `json:"createdDate"`
	LastAccessDate   Timestamp          `json:"lastAccessDate"`
	WalletAddress    string             `json:"walletAddress"`
	Status           string             `json:"status"`
	SupportedCryptos []string           `json:"supportedCryptos"`
}

// TransferRequest is the body of POST /client/transfers.
type TransferRequest struct {
	SourceAccountID      string  `json:"sourceAccountId" validate:"required"`
	DestinationAccountID string  `json:"destinationAccountId" validate:"required,min=6,max=20,alphanum,nefield=SourceAccountID"`
	TransferFee          float64 `json:"transferFee" validate:"gte=0"`
	Amount               float64 `json:"amount" validate:"gte=1,lte=100000"`
	Description          string  `json:"description" validate:"required,min=3,max=200,nospecial"`
}

// Recharge types.
const (
	RechargePrepaid  = "PREPAID"
	RechargePostpaid = "POSTPAID"
)

// MobileRechargeRequest is the body of POST /client/mobile-recharge.
type MobileRechargeRequest struct {
	PhoneNumber  string  `json:"phoneNumber" validate:"required,localphone"`
	Amount       float64 `json:"amount" validate:"gte=5,lte=1000"`
	Description  string  `json:"description" validate:"required,min=3,max=200,nospecial"`
	Operator     string  `json:"operator" validate:"required,oneof=Orange Maroc_Telecom Inwi"`
	RechargeType string  `json:"rechargeType" validate:"required,oneof=PREPAID POSTPAID"`
}

// TransactionResponse is returned by transfer and recharge calls.
type TransactionResponse = Transaction
