package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

// AdminHandler serves the admin screens.
type AdminHandler struct {
	screens ScreenSource
}

func NewAdminHandler(screens ScreenSource) *AdminHandler {
	return &AdminHandler{screens: screens}
}

// Dashboard loads the admin home: statistics, settings and overview.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.AdminDashboard.Load, set.AdminDashboard.Snapshot)
}

func (h *AdminHandler) RefreshCharts(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.AdminDashboard.RefreshCharts, set.AdminDashboard.Snapshot)
}

// SaveSettings stores the global settings edited inline on the dashboard.
func (h *AdminHandler) SaveSettings(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.GlobalSettings
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.AdminDashboard.SaveSettings(ctx, req)
	}, set.AdminDashboard.Snapshot)
}

func (h *AdminHandler) Agents(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.AgentManagement.Load, set.AgentManagement.Snapshot)
}

func (h *AdminHandler) CreateAgent(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.CreateAgentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.AgentManagement.Create(ctx, req)
	}, set.AgentManagement.Snapshot)
}

// ToggleAgent flips an agent between ACTIVE and INACTIVE.
func (h *AdminHandler) ToggleAgent(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.AgentManagement.ToggleStatus(ctx, id)
	}, set.AgentManagement.Snapshot)
}

func (h *AdminHandler) DeleteAgent(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.AgentManagement.Delete(ctx, id)
	}, set.AgentManagement.Snapshot)
}

func (h *AdminHandler) Currencies(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.CurrencyManagement.Load, set.CurrencyManagement.Snapshot)
}

func (h *AdminHandler) CreateCurrency(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.CreateCurrencyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.CurrencyManagement.Create(ctx, req)
	}, set.CurrencyManagement.Snapshot)
}

func (h *AdminHandler) ToggleCurrency(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	symbol := c.Param("symbol")
	return respond(c, func(ctx context.Context) error {
		return set.CurrencyManagement.ToggleActive(ctx, symbol)
	}, set.CurrencyManagement.Snapshot)
}

func (h *AdminHandler) DeleteCurrency(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	symbol := c.Param("symbol")
	return respond(c, func(ctx context.Context) error {
		return set.CurrencyManagement.Delete(ctx, symbol)
	}, set.CurrencyManagement.Snapshot)
}

// RefreshRates pulls external prices for every currency.
func (h *AdminHandler) RefreshRates(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.CurrencyManagement.RefreshRates, set.CurrencyManagement.Snapshot)
}

func (h *AdminHandler) SystemSettings(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.SystemSettings.Load, set.SystemSettings.Snapshot)
}

func (h *AdminHandler) UpdateSystemSettings(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.GlobalSettings
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.SystemSettings.Update(ctx, req)
	}, set.SystemSettings.Snapshot)
}

type feeRequest struct {
	Value float64 `json:"value"`
}

func (h *AdminHandler) UpdateFee(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req feeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.SystemSettings.UpdateFee(ctx, req.Value)
	}, set.SystemSettings.Snapshot)
}
