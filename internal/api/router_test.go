package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/ebanking-console/internal/api/handler"
	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/infrastructure/queue"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeSessions struct {
	mu       sync.Mutex
	session  domain.Session
	subs     []func(domain.Session)
	loginErr error
	roles    []domain.Role
}

func (f *fakeSessions) Current() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeSessions) Restore(context.Context) error { return nil }

func (f *fakeSessions) Login(_ context.Context, creds domain.Credentials) (domain.SessionInfo, error) {
	if f.loginErr != nil {
		return domain.SessionInfo{}, f.loginErr
	}
	user := &domain.User{Username: creds.Username, Roles: domain.NewRoleSet(f.roles...)}
	f.set(domain.Session{User: user, Token: "token-" + creds.Username})
	return domain.SessionInfo{User: *user, TokenType: "Bearer"}, nil
}

func (f *fakeSessions) Logout(context.Context) error {
	f.set(domain.Session{})
	return nil
}

func (f *fakeSessions) Subscribe(fn func(domain.Session)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	return func() {}
}

func (f *fakeSessions) set(s domain.Session) {
	f.mu.Lock()
	f.session = s
	subs := append([]func(domain.Session){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}

type stubAdmin struct {
	ports.AdminGateway
}

func (stubAdmin) AgentStatistics(context.Context) (*domain.AgentStatistics, error) {
	return &domain.AgentStatistics{TotalAgents: 2, ActiveAgents: 2}, nil
}

func (stubAdmin) CurrencyStatistics(context.Context) (*domain.CurrencyStatistics, error) {
	return &domain.CurrencyStatistics{TotalCurrencies: 3, ActiveCurrencies: 3}, nil
}

type stubSettings struct {
	ports.SettingsGateway
}

func (stubSettings) GlobalSettings(context.Context) (*domain.GlobalSettingsResponse, error) {
	return &domain.GlobalSettingsResponse{Settings: domain.GlobalSettings{FeePercentage: 1.5}}, nil
}

type stubStats struct {
	ports.StatsGateway
}

func (stubStats) GlobalStatistics(context.Context) (*domain.GlobalStatisticsResponse, error) {
	return nil, &domain.Failure{Op: "stats", Kind: domain.KindServer, Status: 500}
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestRouter(t *testing.T, sessions *fakeSessions) *echo.Echo {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	loop := queue.NewLoop(zerolog.Nop())
	loop.Start(ctx)

	env := controller.Env{Loop: loop, Log: zerolog.Nop(), Timing: controller.DefaultTiming()}
	gw := controller.Gateways{Admin: stubAdmin{}, Settings: stubSettings{}, Stats: stubStats{}}
	screens := NewScreens(ctx, sessions, func(s domain.Session) *controller.Set {
		return controller.NewSet(gw, sessions, s, env)
	}, zerolog.Nop())
	t.Cleanup(screens.Close)

	return NewRouter(Deps{
		Sessions: sessions,
		Screens:  screens,
		Health: map[string]handler.Pinger{
			"backend": pingFunc(func(context.Context) error { return nil }),
		},
		Registry: prometheus.NewRegistry(),
		Log:      zerolog.Nop(),
	})
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signedIn(roles ...domain.Role) *fakeSessions {
	f := &fakeSessions{roles: roles}
	f.session = domain.Session{
		User:  &domain.User{Username: "alice", Email: "alice@bank.test", Roles: domain.NewRoleSet(roles...)},
		Token: "token-alice",
	}
	return f
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRouterGuards(t *testing.T) {
	tests := []struct {
		name     string
		sessions *fakeSessions
		target   string
		location string
	}{
		{"anonymous admin", &fakeSessions{}, "/admin", "/login"},
		{"anonymous change password", &fakeSessions{}, "/change-password", "/login"},
		{"client on admin", signedIn(domain.RoleClient), "/admin/agents", "/dashboard"},
		{"admin on client", signedIn(domain.RoleAdmin), "/client/transfer", "/admin"},
		{"dashboard for agent", signedIn(domain.RoleAgent), "/dashboard", "/agent"},
		{"dashboard for client", signedIn(domain.RoleClient), "/dashboard", "/client"},
		{"unknown path", signedIn(domain.RoleAdmin), "/nowhere", "/login"},
		{"root", &fakeSessions{}, "/", "/login"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestRouter(t, tc.sessions)
			rec := serve(e, http.MethodGet, tc.target, "")
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestRouterAdminDashboard(t *testing.T) {
	e := newTestRouter(t, signedIn(domain.RoleAdmin))

	rec := serve(e, http.MethodGet, "/admin", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var state controller.AdminDashboardState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, controller.PhaseReady, state.Stats.Phase)
	assert.Equal(t, controller.PhaseReady, state.Settings.Phase)
	assert.Equal(t, controller.PhaseError, state.Overview.Phase)
	assert.Equal(t, "Failed to load platform overview. Please try again.", state.Overview.Error)
	require.NotNil(t, state.AgentStats)
	assert.EqualValues(t, 2, state.AgentStats.TotalAgents)
}

func TestRouterBadPathParameter(t *testing.T) {
	e := newTestRouter(t, signedIn(domain.RoleAdmin))

	rec := serve(e, http.MethodPut, "/admin/agents/abc/status", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid id"}`, rec.Body.String())
}

func TestRouterLoginRebuildsScreens(t *testing.T) {
	sessions := &fakeSessions{roles: []domain.Role{domain.RoleAdmin}}
	e := newTestRouter(t, sessions)

	rec := serve(e, http.MethodPost, "/login", `{"username":"bob","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"redirect":"/admin"`)

	rec = serve(e, http.MethodGet, "/admin/system-settings", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/admin/system-settings", "")
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestRouterLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		msg    string
	}{
		{"missing password", `{"username":"bob"}`, nil, http.StatusBadRequest, "password is required"},
		{"bad credentials", `{"username":"bob","password":"x"}`, &domain.Failure{Kind: domain.KindAuthorization, Status: 401}, http.StatusUnauthorized, "Invalid username or password."},
		{"backend down", `{"username":"bob","password":"x"}`, errors.New("dial tcp: refused"), http.StatusBadGateway, controller.TransportMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestRouter(t, &fakeSessions{loginErr: tc.err})
			rec := serve(e, http.MethodPost, "/login", tc.body)
			assert.Equal(t, tc.status, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.msg, resp["error"])
		})
	}
}

func TestRouterSession(t *testing.T) {
	e := newTestRouter(t, signedIn(domain.RoleAgent, domain.RoleClient))

	rec := serve(e, http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["authenticated"])
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, "/agent", resp["home"])
	assert.ElementsMatch(t, []any{"ROLE_AGENT", "ROLE_CLIENT"}, resp["roles"])
}

func TestRouterHealthAndMetrics(t *testing.T) {
	e := newTestRouter(t, &fakeSessions{})

	rec := serve(e, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","dependencies":{"backend":{"status":"ok"}}}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ebanking_console_http_requests_total")
}

func TestReadinessDegraded(t *testing.T) {
	e := echo.New()
	h := handler.NewHealthDependenciesHandler(map[string]handler.Pinger{
		"store":   pingFunc(func(context.Context) error { return nil }),
		"backend": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	require.NoError(t, h.Readiness(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","dependencies":{"store":{"status":"ok"},"backend":{"status":"unhealthy","error":"connection refused"}}}`, rec.Body.String())
}

func TestScreensFollowSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := queue.NewLoop(zerolog.Nop())
	loop.Start(ctx)
	env := controller.Env{Loop: loop, Log: zerolog.Nop(), Timing: controller.DefaultTiming()}

	sessions := &fakeSessions{roles: []domain.Role{domain.RoleAgent}}
	builds := 0
	screens := NewScreens(ctx, sessions, func(s domain.Session) *controller.Set {
		builds++
		return controller.NewSet(controller.Gateways{}, sessions, s, env)
	}, zerolog.Nop())
	defer screens.Close()

	first := screens.Current()
	require.NotNil(t, first)
	assert.Zero(t, first.Len())

	_, err := sessions.Login(ctx, domain.Credentials{Username: "bob", Password: "x"})
	require.NoError(t, err)
	second := screens.Current()
	assert.NotSame(t, first, second)
	assert.NotNil(t, second.Transactions)

	sessions.set(sessions.Current())
	assert.Same(t, second, screens.Current())
	assert.Equal(t, 2, builds)

}
