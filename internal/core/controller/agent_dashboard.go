package controller

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

var (
	loadClientsMessages       = fallback("Failed to load clients. Please try again.")
	depositStatisticsMessages = fallback("Failed to load deposit statistics. Please try again.")
)

type AgentDashboardState struct {
	Clients      Load                      `json:"clientsLoad"`
	ClientList   []domain.Client           `json:"clients"`
	ClientStats  view.ClientStats          `json:"clientStats"`
	Deposits     Load                      `json:"depositsLoad"`
	DepositStats *domain.DepositStatistics `json:"depositStats,omitempty"`
}

// AgentDashboard summarises the agent's clients and deposits.
type AgentDashboard struct {
	screen
	agent ports.AgentGateway
	state AgentDashboardState
}

func NewAgentDashboard(agent ports.AgentGateway, env Env) *AgentDashboard {
	return &AgentDashboard{screen: newScreen("agent_dashboard", env), agent: agent}
}

// Load fetches clients and deposit statistics concurrently. Each has its
// own error state.
func (d *AgentDashboard) Load(ctx context.Context) error {
	// Not an errgroup: both section errors are kept, not only the first.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() { defer wg.Done(); errs[0] = d.LoadClients(ctx) }()
	go func() { defer wg.Done(); errs[1] = d.LoadDepositStatistics(ctx) }()
	wg.Wait()
	return errors.Join(errs...)
}

func (d *AgentDashboard) LoadClients(ctx context.Context) error {
	if err := d.update(ctx, d.state.Clients.begin); err != nil {
		return err
	}
	clients, err := d.agent.ManagedClients(ctx)
	if err != nil {
		d.failed("load clients", err)
	}
	return d.update(ctx, func() {
		if err != nil {
			d.state.Clients.fail(loadClientsMessages.For(err))
			return
		}
		d.state.ClientList = clients
		d.state.ClientStats = view.SummarizeClients(clients)
		d.state.Clients.ready()
	})
}

func (d *AgentDashboard) LoadDepositStatistics(ctx context.Context) error {
	if err := d.update(ctx, d.state.Deposits.begin); err != nil {
		return err
	}
	stats, err := d.agent.DepositStatistics(ctx)
	if err != nil {
		d.failed("load deposit statistics", err)
	}
	return d.update(ctx, func() {
		if err != nil {
			d.state.Deposits.fail(depositStatisticsMessages.For(err))
			return
		}
		d.state.DepositStats = stats
		d.state.Deposits.ready()
	})
}

func (d *AgentDashboard) Snapshot(ctx context.Context) (AgentDashboardState, error) {
	var out AgentDashboardState
	err := d.read(ctx, func() {
		out = d.state
		out.ClientList = slices.Clone(d.state.ClientList)
	})
	return out, err
}
