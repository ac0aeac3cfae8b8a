package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

// ClientHandler serves the client screens.
type ClientHandler struct {
	screens ScreenSource
}

func NewClientHandler(screens ScreenSource) *ClientHandler {
	return &ClientHandler{screens: screens}
}

func (h *ClientHandler) Dashboard(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.ClientDashboard.Load, set.ClientDashboard.Snapshot)
}

// Reveal toggles the masking of the account id or the wallet address.
func (h *ClientHandler) Reveal(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var toggle func(context.Context) error
	switch c.Param("field") {
	case "account":
		toggle = set.ClientDashboard.ToggleAccountID
	case "wallet":
		toggle = set.ClientDashboard.ToggleWallet
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown field")
	}
	return respond(c, toggle, set.ClientDashboard.Snapshot)
}

func (h *ClientHandler) TransferCrypto(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.CryptoTransferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.ClientDashboard.TransferCrypto(ctx, req)
	}, set.ClientDashboard.Snapshot)
}

// Transfer loads the transfer form. An amount query previews the fee.
func (h *ClientHandler) Transfer(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var amount float64
	if q := c.QueryParam("amount"); q != "" {
		if amount, err = strconv.ParseFloat(q, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
		}
	}
	return respond(c, func(ctx context.Context) error {
		if err := set.Transfer.Load(ctx); err != nil {
			return err
		}
		return set.Transfer.SetAmount(ctx, amount)
	}, set.Transfer.Snapshot)
}

type transferRequest struct {
	DestinationAccountID string  `json:"destinationAccountId"`
	Amount               float64 `json:"amount"`
	Description          string  `json:"description"`
}

func (h *ClientHandler) SubmitTransfer(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req transferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.Transfer.Submit(ctx, req.DestinationAccountID, req.Amount, req.Description)
	}, set.Transfer.Snapshot)
}

func (h *ClientHandler) MobileRecharge(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.MobileRecharge.Load, set.MobileRecharge.Snapshot)
}

func (h *ClientHandler) SubmitRecharge(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.MobileRechargeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.MobileRecharge.Submit(ctx, req)
	}, set.MobileRecharge.Snapshot)
}

// Notifications loads the list with the filter and type from the query.
func (h *ClientHandler) Notifications(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	filter := view.ParseReadFilter(c.QueryParam("filter"))
	typ := c.QueryParam("type")
	return respond(c, func(ctx context.Context) error {
		if err := set.Notifications.SetFilter(ctx, filter, typ); err != nil {
			return err
		}
		return set.Notifications.Load(ctx)
	}, set.Notifications.Snapshot)
}

func (h *ClientHandler) MarkNotificationRead(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	id := c.Param("id")
	return respond(c, func(ctx context.Context) error {
		return set.Notifications.MarkRead(ctx, id)
	}, set.Notifications.Snapshot)
}

func (h *ClientHandler) MarkAllNotificationsRead(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.Notifications.MarkAllRead, set.Notifications.Snapshot)
}

func (h *ClientHandler) DeleteNotification(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	id := c.Param("id")
	return respond(c, func(ctx context.Context) error {
		return set.Notifications.Delete(ctx, id)
	}, set.Notifications.Snapshot)
}

// Bell returns the navbar badge as last refreshed by the poller.
func (h *ClientHandler) Bell(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, nil, set.NotificationBell.Snapshot)
}

func (h *ClientHandler) ToggleBell(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.NotificationBell.Toggle, set.NotificationBell.Snapshot)
}

func (h *ClientHandler) MarkAllBellRead(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.NotificationBell.MarkAllRead, set.NotificationBell.Snapshot)
}

func (h *ClientHandler) CryptoWallet(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, set.CryptoWallet.Load, set.CryptoWallet.Snapshot)
}

// Trade buys, buys from the main account, or sells crypto.
func (h *ClientHandler) Trade(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	form := controller.DefaultTradeForm()
	if err := bind(c, &form); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.CryptoWallet.Trade(ctx, form)
	}, set.CryptoWallet.Snapshot)
}

type addressRequest struct {
	WalletAddress string `json:"walletAddress"`
}

func (h *ClientHandler) UpdateWalletAddress(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req addressRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.CryptoWallet.UpdateAddress(ctx, req.WalletAddress)
	}, set.CryptoWallet.Snapshot)
}
