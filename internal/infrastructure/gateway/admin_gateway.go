package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

type Admin struct{ c *Client }

var _ ports.AdminGateway = (*Admin)(nil)

func NewAdmin(c *Client) *Admin { return &Admin{c: c} }

func (g *Admin) AgentStatistics(ctx context.Context) (*domain.AgentStatistics, error) {
	var out domain.AgentStatistics
	if err := g.c.get(ctx, "admin.AgentStatistics", versioned, "/admin/agents/statistics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Admin) CurrencyStatistics(ctx context.Context) (*domain.CurrencyStatistics, error) {
	var out domain.CurrencyStatistics
	if err := g.c.get(ctx, "admin.CurrencyStatistics", versioned, "/admin/currencies/statistics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Admin) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	var out []domain.Agent
	if err := g.c.get(ctx, "admin.ListAgents", versioned, "/admin/agents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Admin) CreateAgent(ctx context.Context, req domain.CreateAgentRequest) (*domain.Agent, error) {
	var out domain.Agent
	if err := g.c.post(ctx, "admin.CreateAgent", versioned, "/admin/agents", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Admin) UpdateAgentStatus(ctx context.Context, agentID int64, status string) (*domain.Agent, error) {
	var out domain.Agent
	path := "/admin/agents/" + strconv.FormatInt(agentID, 10) + "/status"
	q := url.Values{"status": {status}}
	if err := g.c.put(ctx, "admin.UpdateAgentStatus", versioned, path, q, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Admin) DeleteAgent(ctx context.Context, agentID int64) error {
	return g.c.delete(ctx, "admin.DeleteAgent", versioned, "/admin/agents/"+strconv.FormatInt(agentID, 10), nil)
}

func (g *Admin) ListCurrencies(ctx context.Context) (*domain.CurrenciesResponse, error) {
	var out domain.CurrenciesResponse
	if err := g.c.get(ctx, "admin.ListCurrencies", versioned, "/admin/currencies", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Admin) CreateCurrency(ctx context.Context, req domain.CreateCurrencyRequest) (*domain.CreateCurrencyResponse, error) {
	var out domain.CreateCurrencyResponse
	if err := g.c.post(ctx, "admin.CreateCurrency", versioned, "/admin/currencies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Admin) UpdateCurrencyStatus(ctx context.Context, symbol string, active bool) (*domain.Currency, error) {
	var out domain.Currency
	path := "/admin/currencies/" + segment(symbol) + "/status"
	q := url.Values{"isActive": {strconv.FormatBool(active)}}
	if err := g.c.put(ctx, "admin.UpdateCurrencyStatus", versioned, path, q, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Admin) DeleteCurrency(ctx context.Context, symbol string) error {
	return g.c.delete(ctx, "admin.DeleteCurrency", versioned, "/admin/currencies/"+segment(symbol), nil)
}

func (g *Admin) RefreshRates(ctx context.Context) (*domain.RefreshRatesResponse, error) {
	var out domain.RefreshRatesResponse
	if err := g.c.post(ctx, "admin.RefreshRates", versioned, "/admin/currencies/refresh", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
