package controller

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

var (
	statsMessages        = fallback("Failed to load statistics. Please try again.")
	overviewMessages     = fallback("Failed to load platform overview. Please try again.")
	loadSettingsMessages = fallback("Failed to load global settings. Please try again.")
	saveSettingsMessages = fallback("Failed to update settings. Please try again.")
)

// ChartsUnavailable is shown when the chart data never became ready.
const ChartsUnavailable = "Charts are unavailable. Please refresh the statistics."

// AdminDashboardState is a snapshot of the admin home screen.
type AdminDashboardState struct {
	Stats         Load                       `json:"stats"`
	AgentStats    *domain.AgentStatistics    `json:"agentStats,omitempty"`
	CurrencyStats *domain.CurrencyStatistics `json:"currencyStats,omitempty"`

	Settings       Load                   `json:"settings"`
	GlobalSettings *domain.GlobalSettings `json:"globalSettings,omitempty"`
	Editing        bool                   `json:"editing"`
	Form           domain.GlobalSettings  `json:"form"`
	Save           Action                 `json:"save"`

	Charts      []view.Series `json:"charts,omitempty"`
	ChartsError string        `json:"chartsError,omitempty"`

	Overview Load                     `json:"overview"`
	Platform *domain.GlobalStatistics `json:"platform,omitempty"`
}

// AdminDashboard shows agent and currency statistics, their charts, the
// platform overview and an inline editor for the global settings.
type AdminDashboard struct {
	screen
	admin    ports.AdminGateway
	settings ports.SettingsGateway
	stats    ports.StatsGateway

	state       AdminDashboardState
	cancelChart func()
}

func NewAdminDashboard(admin ports.AdminGateway, settings ports.SettingsGateway, stats ports.StatsGateway, env Env) *AdminDashboard {
	return &AdminDashboard{screen: newScreen("admin_dashboard", env), admin: admin, settings: settings, stats: stats}
}

// Load fetches statistics, settings and the overview concurrently. Each
// section keeps its own error state.
func (d *AdminDashboard) Load(ctx context.Context) error {
	loads := []func(context.Context) error{d.LoadStatistics, d.LoadSettings, d.LoadOverview}
	// Not an errgroup: every section error is kept, not only the first.
	var wg sync.WaitGroup
	errs := make([]error, len(loads))
	for i, load := range loads {
		wg.Add(1)
		go func() { defer wg.Done(); errs[i] = load(ctx) }()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// LoadOverview fetches the platform-wide statistics.
func (d *AdminDashboard) LoadOverview(ctx context.Context) error {
	if err := d.update(ctx, d.state.Overview.begin); err != nil {
		return err
	}
	resp, err := d.stats.GlobalStatistics(ctx)
	if err != nil {
		d.failed("load overview", err)
	}
	return d.update(ctx, func() {
		if err != nil {
			d.state.Overview.fail(overviewMessages.For(err))
			return
		}
		global := resp.Statistics
		d.state.Platform = &global
		d.state.Overview.ready()
	})
}

// LoadStatistics fetches both statistics in parallel; both must succeed.
// On success the charts are rebuilt.
func (d *AdminDashboard) LoadStatistics(ctx context.Context) error {
	if err := d.update(ctx, d.state.Stats.begin); err != nil {
		return err
	}

	var (
		agents     *domain.AgentStatistics
		currencies *domain.CurrencyStatistics
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		agents, err = d.admin.AgentStatistics(gctx)
		return err
	})
	g.Go(func() (err error) {
		currencies, err = d.admin.CurrencyStatistics(gctx)
		return err
	})
	err := g.Wait()
	if err != nil {
		d.failed("load statistics", err)
	}

	return d.update(ctx, func() {
		if err != nil {
			d.state.Stats.fail(statsMessages.For(err))
			return
		}
		d.state.AgentStats, d.state.CurrencyStats = agents, currencies
		d.state.Stats.ready()
		d.scheduleCharts()
	})
}

// RefreshCharts rebuilds the chart series once the statistics are present.
func (d *AdminDashboard) RefreshCharts(ctx context.Context) error {
	return d.update(ctx, d.scheduleCharts)
}

// scheduleCharts runs on the loop.
func (d *AdminDashboard) scheduleCharts() {
	if d.cancelChart != nil {
		d.cancelChart()
	}
	d.state.ChartsError = ""
	d.cancelChart = d.sched.Retry(d.timing.ChartRetry, func() bool {
		if d.state.AgentStats == nil || d.state.CurrencyStats == nil {
			return false
		}
		d.state.Charts = []view.Series{
			view.AgentStatusSeries(*d.state.AgentStats),
			view.CurrencySeries(*d.state.CurrencyStats),
			view.OverviewSeries(*d.state.AgentStats, *d.state.CurrencyStats),
		}
		return true
	}, func(err error) {
		d.cancelChart = nil
		if err != nil {
			d.log.Warn().Err(err).Msg("charts not built")
			d.state.ChartsError = ChartsUnavailable
		}
	})
}

// LoadSettings fetches the global settings and resets the edit form.
func (d *AdminDashboard) LoadSettings(ctx context.Context) error {
	if err := d.update(ctx, d.state.Settings.begin); err != nil {
		return err
	}
	resp, err := d.settings.GlobalSettings(ctx)
	if err != nil {
		d.failed("load settings", err)
	}
	return d.update(ctx, func() {
		if err != nil {
			d.state.Settings.fail(loadSettingsMessages.For(err))
			return
		}
		s := resp.Settings
		d.state.GlobalSettings = &s
		d.state.Form = s
		d.state.Settings.ready()
	})
}

// EditSettings opens the inline editor.
func (d *AdminDashboard) EditSettings(ctx context.Context) error {
	return d.update(ctx, func() { d.state.Editing = true })
}

// CancelEdit closes the editor and restores the last saved values.
func (d *AdminDashboard) CancelEdit(ctx context.Context) error {
	return d.update(ctx, func() {
		d.state.Editing = false
		d.state.Save.reset()
		if d.state.GlobalSettings != nil {
			d.state.Form = *d.state.GlobalSettings
		}
	})
}

// SaveSettings validates and stores s.
func (d *AdminDashboard) SaveSettings(ctx context.Context, s domain.GlobalSettings) error {
	var busy bool
	if err := d.update(ctx, func() {
		d.state.Form = s
		busy = !d.state.Save.begin()
	}); err != nil {
		return err
	}
	if busy {
		return ErrBusy
	}

	var resp *domain.GlobalSettingsResponse
	err := form.Validate(s)
	if err == nil {
		resp, err = d.settings.UpdateGlobalSettings(ctx, s)
	}
	if err != nil {
		d.failed("save settings", err)
	}
	return d.update(ctx, func() {
		if err != nil {
			d.state.Save.fail(saveSettingsMessages.For(err))
			return
		}
		saved := resp.Settings
		d.state.GlobalSettings = &saved
		d.state.Form = saved
		d.state.Editing = false
		d.state.Save.succeed(resp.Message)
	})
}

// Snapshot returns a copy of the current state.
func (d *AdminDashboard) Snapshot(ctx context.Context) (AdminDashboardState, error) {
	var out AdminDashboardState
	err := d.read(ctx, func() {
		out = d.state
		out.Charts = append([]view.Series(nil), d.state.Charts...)
	})
	return out, err
}
