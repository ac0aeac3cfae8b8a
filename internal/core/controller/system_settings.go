package controller

import (
	"context"
	"strconv"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

var feeMessages = fallback("Failed to update fee percentage. Please try again.")

type SystemSettingsState struct {
	Settings       Load                   `json:"settings"`
	GlobalSettings *domain.GlobalSettings `json:"globalSettings,omitempty"`
	Save           Action                 `json:"save"`
	Fee            Action                 `json:"fee"`
}

// SystemSettings edits the platform limits and the transfer fee.
type SystemSettings struct {
	screen
	settings ports.SettingsGateway
	state    SystemSettingsState
}

func NewSystemSettings(settings ports.SettingsGateway, env Env) *SystemSettings {
	return &SystemSettings{screen: newScreen("system_settings", env), settings: settings}
}

func (s *SystemSettings) Load(ctx context.Context) error {
	if err := s.update(ctx, s.state.Settings.begin); err != nil {
		return err
	}
	resp, err := s.settings.GlobalSettings(ctx)
	if err != nil {
		s.failed("load settings", err)
	}
	return s.update(ctx, func() {
		if err != nil {
			s.state.Settings.fail(loadSettingsMessages.For(err))
			return
		}
		gs := resp.Settings
		s.state.GlobalSettings = &gs
		s.state.Settings.ready()
	})
}

// Update stores all settings at once.
func (s *SystemSettings) Update(ctx context.Context, gs domain.GlobalSettings) error {
	if err := s.begin(ctx, &s.state.Save); err != nil {
		return err
	}
	var resp *domain.GlobalSettingsResponse
	err := form.Validate(gs)
	if err == nil {
		resp, err = s.settings.UpdateGlobalSettings(ctx, gs)
	}
	if err != nil {
		s.failed("update settings", err)
	}
	return s.update(ctx, func() {
		if err != nil {
			s.state.Save.fail(saveSettingsMessages.For(err))
			return
		}
		saved := resp.Settings
		s.state.GlobalSettings = &saved
		msg := resp.Message
		if msg == "" {
			msg = "Settings updated successfully."
		}
		s.state.Save.succeed(msg)
		s.sched.After(s.timing.ShortToast, s.state.Save.reset)
	})
}

// UpdateFee changes only the transfer fee percentage.
func (s *SystemSettings) UpdateFee(ctx context.Context, pct float64) error {
	if err := s.begin(ctx, &s.state.Fee); err != nil {
		return err
	}
	req := domain.UpdateFeePercentageRequest{Value: strconv.FormatFloat(pct, 'f', -1, 64)}
	err := form.Validate(req)
	if err == nil && (pct < 0 || pct > 100) {
		err = form.Errors{{Field: "value", Message: "Fee percentage must be between 0 and 100"}}
	}
	if err == nil {
		err = s.settings.UpdateFeePercentage(ctx, req)
	}
	if err != nil {
		s.failed("update fee", err)
	}
	return s.update(ctx, func() {
		if err != nil {
			s.state.Fee.fail(feeMessages.For(err))
			return
		}
		if s.state.GlobalSettings != nil {
			gs := *s.state.GlobalSettings
			gs.FeePercentage = pct
			s.state.GlobalSettings = &gs
		}
		s.state.Fee.succeed("Fee percentage updated successfully.")
		s.sched.After(s.timing.ShortToast, s.state.Fee.reset)
	})
}

func (s *SystemSettings) Snapshot(ctx context.Context) (SystemSettingsState, error) {
	var out SystemSettingsState
	err := s.read(ctx, func() { out = s.state })
	return out, err
}
