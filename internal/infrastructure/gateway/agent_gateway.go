package gateway

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

type Agent struct{ c *Client }

var _ ports.AgentGateway = (*Agent)(nil)

func NewAgent(c *Client) *Agent { return &Agent{c: c} }

func (g *Agent) ManagedClients(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	if err := g.c.get(ctx, "agent.ManagedClients", unversioned, "/agent/clients", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Agent) CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.CreateClientResponse, error) {
	var out domain.CreateClientResponse
	if err := g.c.post(ctx, "agent.CreateClient", unversioned, "/agent/clients", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Agent) DeleteClient(ctx context.Context, clientID string) error {
	return g.c.delete(ctx, "agent.DeleteClient", unversioned, "/agent/clients/"+segment(clientID), nil)
}

func (g *Agent) Deposit(ctx context.Context, req domain.DepositRequest) (*domain.DepositResponse, error) {
	var out domain.DepositResponse
	if err := g.c.post(ctx, "agent.Deposit", unversioned, "/agent/deposit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Agent) DepositStatistics(ctx context.Context) (*domain.DepositStatistics, error) {
	var out domain.DepositStatistics
	if err := g.c.get(ctx, "agent.DepositStatistics", unversioned, "/agent/deposit/statistics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Agent) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := g.c.get(ctx, "agent.Transactions", unversioned, "/agent/transactions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Agent) PendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := g.c.get(ctx, "agent.PendingTransactions", unversioned, "/agent/transactions/pending", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Agent) VerifyTransaction(ctx context.Context, transactionID string, req domain.VerifyTransactionRequest) (*domain.Transaction, error) {
	var out domain.Transaction
	path := "/agent/transactions/" + segment(transactionID) + "/verify"
	if err := g.c.post(ctx, "agent.VerifyTransaction", unversioned, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
