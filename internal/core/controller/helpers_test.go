package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/infrastructure/queue"
)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fastTiming() Timing {
	return Timing{
		ShortToast:       30 * time.Millisecond,
		LongToast:        40 * time.Millisecond,
		BannerToast:      40 * time.Millisecond,
		NotificationPoll: 20 * time.Millisecond,
		ChartRetry:       Retry{Attempts: 3, Step: 5 * time.Millisecond},
		BellSize:         5,
		FallbackFee:      2.0,
	}
}

func startLoop(t *testing.T) *queue.Loop {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	loop := queue.NewLoop(zerolog.Nop())
	loop.Start(ctx)
	t.Cleanup(cancel)
	return loop
}

func newEnv(t *testing.T) Env {
	t.Helper()
	return Env{
		Loop:   startLoop(t),
		Log:    zerolog.Nop(),
		Timing: fastTiming(),
		Now:    func() time.Time { return fixedNow },
	}
}

func failure(kind domain.FailureKind, msg string) error {
	return &domain.Failure{Op: "test", Kind: kind, Message: msg}
}

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// Stubs embed the port so only the methods a test needs are implemented.

type stubAdmin struct {
	ports.AdminGateway
	agentStats    func() (*domain.AgentStatistics, error)
	currencyStats func() (*domain.CurrencyStatistics, error)
	agents        func() ([]domain.Agent, error)
	updateStatus  func(id int64, status string) (*domain.Agent, error)
}

func (s *stubAdmin) AgentStatistics(context.Context) (*domain.AgentStatistics, error) {
	return s.agentStats()
}

func (s *stubAdmin) CurrencyStatistics(context.Context) (*domain.CurrencyStatistics, error) {
	return s.currencyStats()
}

func (s *stubAdmin) ListAgents(context.Context) ([]domain.Agent, error) { return s.agents() }

func (s *stubAdmin) UpdateAgentStatus(_ context.Context, id int64, status string) (*domain.Agent, error) {
	return s.updateStatus(id, status)
}

type stubSettings struct {
	ports.SettingsGateway
	get func() (*domain.GlobalSettingsResponse, error)
}

func (s *stubSettings) GlobalSettings(context.Context) (*domain.GlobalSettingsResponse, error) {
	return s.get()
}

func settingsWithFee(pct float64) *stubSettings {
	return &stubSettings{get: func() (*domain.GlobalSettingsResponse, error) {
		return &domain.GlobalSettingsResponse{Settings: domain.GlobalSettings{FeePercentage: pct}}, nil
	}}
}

type stubStats struct {
	ports.StatsGateway
	get func() (*domain.GlobalStatisticsResponse, error)
}

func (s *stubStats) GlobalStatistics(context.Context) (*domain.GlobalStatisticsResponse, error) {
	return s.get()
}

type stubAgent struct {
	ports.AgentGateway

	mu          sync.Mutex
	calls       []string
	all         func() ([]domain.Transaction, error)
	pending     func() ([]domain.Transaction, error)
	verify      func(id string, req domain.VerifyTransactionRequest) (*domain.Transaction, error)
	clients     func() ([]domain.Client, error)
	deposit     func(req domain.DepositRequest) (*domain.DepositResponse, error)
	depositStat func() (*domain.DepositStatistics, error)
}

func (s *stubAgent) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubAgent) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubAgent) Transactions(context.Context) ([]domain.Transaction, error) {
	s.record("transactions")
	return s.all()
}

func (s *stubAgent) PendingTransactions(context.Context) ([]domain.Transaction, error) {
	s.record("pending")
	return s.pending()
}

func (s *stubAgent) VerifyTransaction(_ context.Context, id string, req domain.VerifyTransactionRequest) (*domain.Transaction, error) {
	s.record("verify")
	return s.verify(id, req)
}

func (s *stubAgent) ManagedClients(context.Context) ([]domain.Client, error) {
	s.record("clients")
	return s.clients()
}

func (s *stubAgent) Deposit(_ context.Context, req domain.DepositRequest) (*domain.DepositResponse, error) {
	s.record("deposit")
	return s.deposit(req)
}

func (s *stubAgent) DepositStatistics(context.Context) (*domain.DepositStatistics, error) {
	s.record("deposit statistics")
	return s.depositStat()
}

type stubClient struct {
	ports.ClientGateway

	mu            sync.Mutex
	polls         int
	marked        []string
	account       func() (*domain.AccountDetails, error)
	transfer      func(req domain.TransferRequest) (*domain.TransactionResponse, error)
	notifications func() ([]domain.Notification, error)
	markRead      func(id string) (*domain.Notification, error)
}

func (s *stubClient) Account(context.Context) (*domain.AccountDetails, error) { return s.account() }

func (s *stubClient) Transfer(_ context.Context, req domain.TransferRequest) (*domain.TransactionResponse, error) {
	return s.transfer(req)
}

func (s *stubClient) Notifications(context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	s.polls++
	s.mu.Unlock()
	return s.notifications()
}

func (s *stubClient) MarkNotificationRead(_ context.Context, id string) (*domain.Notification, error) {
	s.mu.Lock()
	s.marked = append(s.marked, id)
	s.mu.Unlock()
	return s.markRead(id)
}

func (s *stubClient) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

func (s *stubClient) Marked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.marked...)
}

type stubSessions struct{ session domain.Session }

func (s stubSessions) Current() domain.Session { return s.session }

func sessionWith(roles ...domain.Role) domain.Session {
	return domain.Session{
		User:  &domain.User{Username: "jdoe", Roles: domain.NewRoleSet(roles...)},
		Token: "abc",
	}
}
