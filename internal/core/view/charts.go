package view

import "github.com/99minutos/ebanking-console/internal/core/domain"

// Series is chart-ready data: one value per label.
type Series struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Empty  bool      `json:"empty"`
}

// NoDataLabel is the single slice shown when a series has nothing to plot.
const NoDataLabel = "No Data"

// AgentStatusSeries splits agents by status. With no agents at all it yields
// a single placeholder slice.
func AgentStatusSeries(s domain.AgentStatistics) Series {
	if s.ActiveAgents == 0 && s.InactiveAgents == 0 {
		return Series{Title: "Agent Status Distribution", Labels: []string{NoDataLabel}, Values: []float64{1}, Empty: true}
	}
	return Series{
		Title:  "Agent Status Distribution",
		Labels: []string{"Active Agents", "Inactive Agents"},
		Values: []float64{float64(s.ActiveAgents), float64(s.InactiveAgents)},
	}
}

func CurrencySeries(s domain.CurrencyStatistics) Series {
	return Series{
		Title:  "Currency Statistics",
		Labels: []string{"Active", "Inactive", "Manual", "Binance"},
		Values: []float64{
			float64(s.ActiveCurrencies),
			float64(s.InactiveCurrencies),
			float64(s.ManualCurrencies),
			float64(s.BinanceCurrencies),
		},
	}
}

func OverviewSeries(a domain.AgentStatistics, c domain.CurrencyStatistics) Series {
	return Series{
		Title:  "System Overview",
		Labels: []string{"Total Agents", "Active Agents", "Total Currencies", "Active Currencies", "Managed Clients"},
		Values: []float64{
			float64(a.TotalAgents),
			float64(a.ActiveAgents),
			float64(c.TotalCurrencies),
			float64(c.ActiveCurrencies),
			float64(a.TotalManagedClients),
		},
	}
}
