package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

func dashboardStubs() (*stubAdmin, *stubSettings, *stubStats) {
	admin := &stubAdmin{
		agentStats: func() (*domain.AgentStatistics, error) {
			return &domain.AgentStatistics{TotalAgents: 4, ActiveAgents: 3, InactiveAgents: 1}, nil
		},
		currencyStats: func() (*domain.CurrencyStatistics, error) {
			return &domain.CurrencyStatistics{TotalCurrencies: 5, ActiveCurrencies: 4, InactiveCurrencies: 1}, nil
		},
	}
	stats := &stubStats{get: func() (*domain.GlobalStatisticsResponse, error) {
		return &domain.GlobalStatisticsResponse{Status: "success"}, nil
	}}
	return admin, settingsWithFee(1.5), stats
}

func TestAdminDashboardLoadBuildsCharts(t *testing.T) {
	admin, settings, stats := dashboardStubs()
	d := NewAdminDashboard(admin, settings, stats, newEnv(t))
	defer d.Close()
	ctx := context.Background()

	require.NoError(t, d.Load(ctx))

	state, err := d.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, state.Stats.Phase)
	assert.Equal(t, PhaseReady, state.Settings.Phase)
	assert.Equal(t, PhaseReady, state.Overview.Phase)
	assert.NotNil(t, state.Platform)
	require.NotNil(t, state.GlobalSettings)
	assert.Equal(t, 1.5, state.Form.FeePercentage)

	require.Eventually(t, func() bool {
		st, err := d.Snapshot(ctx)
		return err == nil && len(st.Charts) == 3
	}, time.Second, 5*time.Millisecond)
}

func TestAdminDashboardStatisticsNeedBoth(t *testing.T) {
	admin, settings, stats := dashboardStubs()
	admin.currencyStats = func() (*domain.CurrencyStatistics, error) {
		return nil, failure(domain.KindServer, "")
	}
	d := NewAdminDashboard(admin, settings, stats, newEnv(t))
	defer d.Close()
	ctx := context.Background()

	require.NoError(t, d.LoadStatistics(ctx))

	state, err := d.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseError, state.Stats.Phase)
	assert.Equal(t, "Failed to load statistics. Please try again.", state.Stats.Error)
	assert.Nil(t, state.AgentStats)
	assert.Empty(t, state.Charts)
}

func TestAdminDashboardChartsGiveUpWithoutStatistics(t *testing.T) {
	admin, settings, stats := dashboardStubs()
	d := NewAdminDashboard(admin, settings, stats, newEnv(t))
	defer d.Close()
	ctx := context.Background()

	require.NoError(t, d.RefreshCharts(ctx))

	require.Eventually(t, func() bool {
		st, err := d.Snapshot(ctx)
		return err == nil && st.ChartsError == ChartsUnavailable
	}, time.Second, 5*time.Millisecond)
}

func TestAdminDashboardCancelEditRestoresForm(t *testing.T) {
	admin, settings, stats := dashboardStubs()
	d := NewAdminDashboard(admin, settings, stats, newEnv(t))
	defer d.Close()
	ctx := context.Background()

	require.NoError(t, d.LoadSettings(ctx))
	require.NoError(t, d.EditSettings(ctx))
	require.NoError(t, d.SaveSettings(ctx, domain.GlobalSettings{FeePercentage: 250}))

	state, err := d.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, state.Editing)
	assert.Equal(t, ActionError, state.Save.Phase)
	assert.Equal(t, 250.0, state.Form.FeePercentage)

	require.NoError(t, d.CancelEdit(ctx))
	state, err = d.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, state.Editing)
	assert.Equal(t, ActionIdle, state.Save.Phase)
	assert.Equal(t, 1.5, state.Form.FeePercentage)
}
