package domain

// AgentStatistics is returned by GET /admin/agents/statistics.
type AgentStatistics struct {
	TotalAgents         int64 `json:"totalAgents"`
	ActiveAgents        int64 `json:"activeAgents"`
	InactiveAgents      int64 `json:"inactiveAgents"`
	TotalManagedClients int64 `json:"totalManagedClients"`
}

// CurrencyStatistics is returned by GET /admin/currencies/statistics.
type CurrencyStatistics struct {
	TotalCurrencies    int64 `json:"totalCurrencies"`
	ActiveCurrencies   int64 `json:"activeCurrencies"`
	InactiveCurrencies int64 `json:"inactiveCurrencies"`
	ManualCurrencies   int64 `json:"manualCurrencies"`
	BinanceCurrencies  int64 `json:"binanceCurrencies"`
}

// GlobalStatistics is the platform-wide summary served under /stats/global.
type GlobalStatistics struct {
	TotalUsers            int64  `json:"totalUsers"`
	TotalClients          int64  `json:"totalClients"`
	TotalBankAgents       int64  `json:"totalBankAgents"`
	TotalAdministrators   int64  `json:"totalAdministrators"`
	ActiveUsers           int64  `json:"activeUsers"`
	InactiveUsers         int64  `json:"inactiveUsers"`
	TotalAccounts         int64  `json:"totalAccounts"`
	TotalTransactions     int64  `json:"totalTransactions"`
	PendingTransactions   int64  `json:"pendingTransactions"`
	CompletedTransactions int64  `json:"completedTransactions"`
	FailedTransactions    int64  `json:"failedTransactions"`
	TotalCurrencies       int64  `json:"totalCurrencies"`
	ActiveCurrencies      int64  `json:"activeCurrencies"`
	TotalNotifications    int64  `json:"totalNotifications"`
	UnreadNotifications   int64  `json:"unreadNotifications"`
	SystemStatus          string `json:"systemStatus"`
	Timestamp             int64  `json:"timestamp"`
}

type GlobalStatisticsResponse struct {
	Statistics GlobalStatistics `json:"statistics"`
	Status     string           `json:"status"`
	Message    string           `json:"message"`
	Timestamp  int64            `json:"timestamp"`
}

// Status values shared by agents, clients and accounts.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Agent is a bank agent as listed by the admin API.
type Agent struct {
	ID                  int64     `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phoneNumber"`
	EmployeeID          string    `json:"employeeId"`
	Branch              string    `json:"branch"`
	Position            string    `json:"position"`
	Status              string    `json:"status"`
	Role                string    `json:"role"`
	CreatedAt           Timestamp `json:"createdAt"`
	UpdatedAt           Timestamp `json:"updatedAt"`
	ManagedClientsCount int64     `json:"managedClientsCount"`
}

// Active reports whether the agent status is ACTIVE.
func (a Agent) Active() bool { return a.Status == StatusActive }

// CreateAgentRequest is the body of POST /admin/agents.
type CreateAgentRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required,min=6"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	EmployeeID  string `json:"employeeId" validate:"required"`
	Branch      string `json:"branch" validate:"required"`
	Position    string `json:"position" validate:"required"`
}

// Currency is a tradeable currency managed by the admin.
type Currency struct {
	ID             int64     `json:"id"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	CurrentPrice   float64   `json:"currentPrice"`
	PriceChange24h float64   `json:"priceChange24h"`
	MarketCap      *float64  `json:"marketCap"`
	Volume24h      float64   `json:"volume24h"`
	LastUpdated    Timestamp `json:"lastUpdated"`
	IsActive       bool      `json:"isActive"`
	IsManual       bool      `json:"isManual"`
	CreatedAt      Timestamp `json:"createdAt"`
	UpdatedAt      Timestamp `json:"updatedAt"`
}

type CurrenciesResponse struct {
	Total      int64      `json:"total"`
	Currencies []Currency `json:"currencies"`
	Timestamp  int64      `json:"timestamp"`
}

// RefreshRatesResponse reports an external market-data refresh.
type RefreshRatesResponse struct {
	Refreshed  int64      `json:"refreshed"`
	Message    string     `json:"message"`
	Currencies []Currency `json:"currencies"`
	Timestamp  int64      `json:"timestamp"`
}

// CreateCurrencyRequest is the body of POST /admin/currencies.
type CreateCurrencyRequest struct {
	Symbol         string   `json:"symbol" validate:"required,min=2,max=10,alphanum"`
	Name           string   `json:"name" validate:"required,min=2"`
	CurrentPrice   float64  `json:"currentPrice" validate:"gte=0"`
	PriceChange24h float64  `json:"priceChange24h"`
	MarketCap      *float64 `json:"marketCap,omitempty" validate:"omitempty,gte=0"`
	Volume24h      float64  `json:"volume24h" validate:"gte=0"`
	IsActive       bool     `json:"isActive"`
}

type CreateCurrencyResponse struct {
	Currency  Currency `json:"currency"`
	Message   string   `json:"message"`
	Timestamp int64    `json:"timestamp"`
}
