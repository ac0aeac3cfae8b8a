package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

// AgentHandler serves the agent screens.
type AgentHandler struct {
	screens ScreenSource
}

func NewAgentHandler(screens ScreenSource) *AgentHandler {
	return &AgentHandler{screens: screens}
}

func (h *AgentHandler) Dashboard(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.AgentDashboard.Load, set.AgentDashboard.Snapshot)
}

func (h *AgentHandler) Clients(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.ClientManagement.Load, set.ClientManagement.Snapshot)
}

func (h *AgentHandler) CreateClient(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.CreateClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.ClientManagement.Create(ctx, req)
	}, set.ClientManagement.Snapshot)
}

func (h *AgentHandler) DeleteClient(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	clientID := c.Param("id")
	return respond(c, func(ctx context.Context) error {
		return set.ClientManagement.Delete(ctx, clientID)
	}, set.ClientManagement.Snapshot)
}

// Deposit opens the deposit dialog for the client in the path and submits
// the amount. The dialog closes itself after success.
func (h *AgentHandler) Deposit(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.DepositRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.ClientID = c.Param("id")
	return respond(c, func(ctx context.Context) error {
		if err := set.ClientManagement.OpenDeposit(ctx, req.ClientID); err != nil {
			return err
		}
		return set.ClientManagement.Deposit(ctx, req)
	}, set.ClientManagement.Snapshot)
}

func (h *AgentHandler) Transactions(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.Transactions.Load, set.Transactions.Snapshot)
}

type verifyRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Verify marks the transaction in the path VERIFIED or REJECTED.
func (h *AgentHandler) Verify(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req verifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	transactionID := c.Param("id")
	return respond(c, func(ctx context.Context) error {
		if err := set.Transactions.Select(ctx, transactionID); err != nil {
			return err
		}
		return set.Transactions.Verify(ctx, req.Status, req.Notes)
	}, set.Transactions.Snapshot)
}
