package view

import "github.com/99minutos/ebanking-console/internal/core/domain"

// ClientStats summarises the clients managed by an agent.
type ClientStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Inactive     int `json:"inactive"`
	WithAccounts int `json:"withAccounts"`
}

func SummarizeClients(clients []domain.Client) ClientStats {
	s := ClientStats{Total: len(clients)}
	for _, c := range clients {
		switch c.Status {
		case domain.StatusActive:
			s.Active++
		case domain.StatusInactive:
			s.Inactive++
		}
		if c.HasAccounts() {
			s.WithAccounts++
		}
	}
	return s
}

// TransactionStats summarises the agent transaction screen. Pending comes
// from the dedicated pending list, not from the status of the full list.
type TransactionStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
}

func SummarizeTransactions(all, pending []domain.Transaction) TransactionStats {
	s := TransactionStats{Total: len(all), Pending: len(pending)}
	for _, tx := range all {
		switch {
		case tx.StatusIs(domain.TxVerified):
			s.Verified++
		case tx.StatusIs(domain.TxRejected):
			s.Rejected++
		}
	}
	return s
}

// ActiveCurrencies keeps the currencies flagged active.
func ActiveCurrencies(cs []domain.Currency) []domain.Currency {
	out := make([]domain.Currency, 0, len(cs))
	for _, c := range cs {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
