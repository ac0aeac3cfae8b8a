package domain

import "strings"

// Client is a bank customer as seen by the managing agent.
type Client struct {
	ID                   int64     `json:"id"`
	ClientID             string    `json:"clientId"`
	Address              string    `json:"address"`
	IdentificationNumber string    `json:"identificationNumber"`
	EnrollmentDate       Timestamp `json:"enrollmentDate"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	PhoneNumber          *string   `json:"phoneNumber"`
	NationalID           *string   `json:"nationalId"`
	DateOfBirth          *string   `json:"dateOfBirth"`
	Status               string    `json:"status"`
	ViewAccount          []string  `json:"viewAccount"`
	MakeTransfer         bool      `json:"makeTransfer"`
	ViewHistory          []string  `json:"viewHistory"`
}

// Active reports whether the client status is ACTIVE.
func (c Client) Active() bool { return c.Status == StatusActive }

// HasAccounts reports whether the client can view at least one account.
func (c Client) HasAccounts() bool { return len(c.ViewAccount) > 0 }

// CreateClientRequest is the body of POST /agent/clients.
type CreateClientRequest struct {
	Address     string `json:"address" validate:"required,min=10"`
	Username    string `json:"username" validate:"required,min=3,handle"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	NationalID  string `json:"nationalId" validate:"required,min=5"`
}

// Account is a fiat account record.
type Account struct {
	ID                  int64     `json:"id"`
	AccountID           string    `json:"accountId"`
	ClientID            string    `json:"clientId"`
	Balance             float64   `json:"balance"`
	AccountType         string    `json:"accountType"`
	Status              string    `json:"status"`
	Currency            string    `json:"currency"`
	CreatedDate         Timestamp `json:"createdDate"`
	LastTransactionDate Timestamp `json:"lastTransactionDate"`
}

// WalletSummary is the crypto wallet created alongside a client.
type WalletSummary struct {
	ID               int64     `json:"id"`
	WalletAddress    string    `json:"walletAddress"`
	ClientID         string    `json:"clientId"`
	Status           string    `json:"status"`
	SupportedCryptos []string  `json:"supportedCryptos"`
	CreatedDate      Timestamp `json:"createdDate"`
}

type CreateClientResponse struct {
	Client       Client        `json:"client"`
	Account      Account       `json:"account"`
	CryptoWallet WalletSummary `json:"cryptoWallet"`
}

// DepositRequest is the body of POST /agent/deposit.
type DepositRequest struct {
	ClientID    string  `json:"clientId" validate:"required"`
	AccountID   string  `json:"accountId" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0.01"`
	Description string  `json:"description" validate:"required,min=5"`
}

// Transaction statuses. The backend is inconsistent about case.
const (
	TxPending  = "PENDING"
	TxVerified = "VERIFIED"
	TxRejected = "REJECTED"
)

// Transaction is a money movement awaiting or past agent verification.
type Transaction struct {
	ID                int64     `json:"id"`
	TransactionID     string    `json:"transactionId"`
	Amount            float64   `json:"amount"`
	Date              Timestamp `json:"date"`
	Status            string    `json:"status"`
	Description       string    `json:"description"`
	Type              string    `json:"type"`
	FromAccountID     *string   `json:"fromAccountId"`
	ToAccountID       *string   `json:"toAccountId"`
	VerifiedByAgentID *string   `json:"verifiedByAgentId"`
	VerificationDate  Timestamp `json:"verificationDate"`
	VerificationNotes *string   `json:"verificationNotes"`
	Message           string    `json:"message,omitempty"`
}

// StatusIs compares the transaction status case-insensitively.
func (t Transaction) StatusIs(status string) bool {
	return strings.EqualFold(t.Status, status)
}

// DepositResponse is the transaction created by a deposit.
type DepositResponse = Transaction

// VerifyTransactionRequest is the body of POST /agent/transactions/{id}/verify.
type VerifyTransactionRequest struct {
	Status      string `json:"status" validate:"required,oneof=VERIFIED REJECTED"`
	Description string `json:"description" validate:"required,nospecial"`
}

// DepositStatistics is returned by GET /agent/deposit/statistics.
type DepositStatistics struct {
	AgentID                string    `json:"agentId"`
	AgentEmployeeID        string    `json:"agentEmployeeId"`
	AgentName              string    `json:"agentName"`
	Branch                 string    `json:"branch"`
	TotalDeposits          int64     `json:"totalDeposits"`
	TotalDepositAmount     float64   `json:"totalDepositAmount"`
	DepositsToday          int64     `json:"depositsToday"`
	DepositAmountToday     float64   `json:"depositAmountToday"`
	DepositsThisWeek       int64     `json:"depositsThisWeek"`
	DepositAmountThisWeek  float64   `json:"depositAmountThisWeek"`
	DepositsThisMonth      int64     `json:"depositsThisMonth"`
	DepositAmountThisMonth float64   `json:"depositAmountThisMonth"`
	AverageDepositAmount   float64   `json:"averageDepositAmount"`
	LargestDeposit         float64   `json:"largestDeposit"`
	SmallestDeposit        float64   `json:"smallestDeposit"`
	LastDepositDate        Timestamp `json:"lastDepositDate"`
	ManagedClientsCount    int64     `json:"managedClientsCount"`
	Timestamp              int64     `json:"timestamp"`
}
