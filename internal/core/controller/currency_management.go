package controller

import (
	"context"
	"slices"
	"strings"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

var (
	loadCurrenciesMessages = fallback("Failed to load currencies. Please try again.")
	createCurrencyMessages = serverFirst("Failed to create currency. Please try again.", nil)
	currencyStatusMessages = fallback("Failed to update currency status. Please try again.")
	deleteCurrencyMessages = serverFirst("Failed to delete currency. Please try again.", nil)
	refreshRatesMessages   = fallback("Failed to refresh Binance data. Please try again.")
)

type CurrencyManagementState struct {
	List       Load              `json:"list"`
	Currencies []domain.Currency `json:"currencies"`
	Create     Action            `json:"create"`
	Delete     Action            `json:"delete"`
	Refresh    Action            `json:"refresh"`
}

// CurrencyManagement lists tradeable currencies and manages them.
type CurrencyManagement struct {
	screen
	admin ports.AdminGateway
	state CurrencyManagementState

	clearRefresh func()
}

func NewCurrencyManagement(admin ports.AdminGateway, env Env) *CurrencyManagement {
	return &CurrencyManagement{screen: newScreen("currency_management", env), admin: admin}
}

func (m *CurrencyManagement) Load(ctx context.Context) error {
	if err := m.update(ctx, m.state.List.begin); err != nil {
		return err
	}
	resp, err := m.admin.ListCurrencies(ctx)
	if err != nil {
		m.failed("list currencies", err)
	}
	return m.update(ctx, func() {
		if err != nil {
			m.state.List.fail(loadCurrenciesMessages.For(err))
			return
		}
		m.state.Currencies = resp.Currencies
		m.state.List.ready()
	})
}

// Create validates req, normalises the symbol to upper case and reloads.
func (m *CurrencyManagement) Create(ctx context.Context, req domain.CreateCurrencyRequest) error {
	if err := m.begin(ctx, &m.state.Create); err != nil {
		return err
	}
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	var resp *domain.CreateCurrencyResponse
	err := form.Validate(req)
	if err == nil {
		resp, err = m.admin.CreateCurrency(ctx, req)
	}
	if err != nil {
		m.failed("create currency", err)
		return m.update(ctx, func() { m.state.Create.fail(createCurrencyMessages.For(err)) })
	}
	msg := resp.Message
	if msg == "" {
		msg = "Currency created successfully."
	}
	if err := m.update(ctx, func() { m.state.Create.succeed(msg) }); err != nil {
		return err
	}
	return m.Load(ctx)
}

// ToggleActive flips the currency's active flag.
func (m *CurrencyManagement) ToggleActive(ctx context.Context, symbol string) error {
	var (
		active bool
		found  bool
	)
	if err := m.read(ctx, func() {
		i := slices.IndexFunc(m.state.Currencies, func(c domain.Currency) bool { return c.Symbol == symbol })
		if i >= 0 {
			found, active = true, m.state.Currencies[i].IsActive
		}
	}); err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}

	updated, err := m.admin.UpdateCurrencyStatus(ctx, symbol, !active)
	if err != nil {
		m.failed("update currency status", err)
	}
	return m.update(ctx, func() {
		if err != nil {
			m.state.List.fail(currencyStatusMessages.For(err))
			return
		}
		cs := slices.Clone(m.state.Currencies)
		for i := range cs {
			if cs[i].Symbol == symbol {
				cs[i] = *updated
			}
		}
		m.state.Currencies = cs
	})
}

func (m *CurrencyManagement) Delete(ctx context.Context, symbol string) error {
	if err := m.begin(ctx, &m.state.Delete); err != nil {
		return err
	}
	if err := m.admin.DeleteCurrency(ctx, symbol); err != nil {
		m.failed("delete currency", err)
		return m.update(ctx, func() { m.state.Delete.fail(deleteCurrencyMessages.For(err)) })
	}
	if err := m.update(ctx, m.state.Delete.reset); err != nil {
		return err
	}
	return m.Load(ctx)
}

// RefreshRates pulls external market data. The outcome banner clears
// itself after the banner delay.
func (m *CurrencyManagement) RefreshRates(ctx context.Context) error {
	if err := m.begin(ctx, &m.state.Refresh); err != nil {
		return err
	}
	resp, err := m.admin.RefreshRates(ctx)
	if err != nil {
		m.failed("refresh rates", err)
	}
	if uerr := m.update(ctx, func() {
		if err != nil {
			m.state.Refresh.fail(refreshRatesMessages.For(err))
		} else {
			m.state.Refresh.succeed(resp.Message)
		}
		if m.clearRefresh != nil {
			m.clearRefresh()
		}
		m.clearRefresh = m.sched.After(m.timing.BannerToast, func() {
			m.clearRefresh = nil
			m.state.Refresh.reset()
		})
	}); uerr != nil {
		return uerr
	}
	if err != nil {
		return nil
	}
	return m.Load(ctx)
}

func (m *CurrencyManagement) ResetActions(ctx context.Context) error {
	return m.update(ctx, func() {
		m.state.Create.reset()
		m.state.Delete.reset()
	})
}

func (m *CurrencyManagement) Snapshot(ctx context.Context) (CurrencyManagementState, error) {
	var out CurrencyManagementState
	err := m.read(ctx, func() {
		out = m.state
		out.Currencies = slices.Clone(m.state.Currencies)
	})
	return out, err
}
