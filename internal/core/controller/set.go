package controller

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

// Gateways are the backend capabilities the screens use.
type Gateways struct {
	Admin     ports.AdminGateway
	Settings  ports.SettingsGateway
	Stats     ports.StatsGateway
	Agent     ports.AgentGateway
	Client    ports.ClientGateway
	Passwords PasswordChanger
}

// Set is the group of screens available to one session. Screens of roles the
// session lacks are nil.
type Set struct {
	Session domain.Session

	AdminDashboard     *AdminDashboard
	AgentManagement    *AgentManagement
	CurrencyManagement *CurrencyManagement
	SystemSettings     *SystemSettings

	AgentDashboard   *AgentDashboard
	ClientManagement *ClientManagement
	Transactions     *Transactions

	ClientDashboard  *ClientDashboard
	Transfer         *Transfer
	MobileRecharge   *MobileRecharge
	Notifications    *Notifications
	NotificationBell *NotificationBell
	CryptoWallet     *CryptoWallet

	ChangePassword *ChangePassword

	closers []interface{ Close() }
}

// NewSet builds the screens for session. Nothing is fetched until a screen
// is loaded or the set is started.
func NewSet(gw Gateways, sessions ports.SessionReader, session domain.Session, env Env) *Set {
	s := &Set{Session: session}
	if !session.Authenticated() {
		return s
	}
	if session.HasRole(domain.RoleAdmin) {
		s.AdminDashboard = track(s, NewAdminDashboard(gw.Admin, gw.Settings, gw.Stats, env))
		s.AgentManagement = track(s, NewAgentManagement(gw.Admin, env))
		s.CurrencyManagement = track(s, NewCurrencyManagement(gw.Admin, env))
		s.SystemSettings = track(s, NewSystemSettings(gw.Settings, env))
	}
	if session.HasRole(domain.RoleAgent) {
		s.AgentDashboard = track(s, NewAgentDashboard(gw.Agent, env))
		s.ClientManagement = track(s, NewClientManagement(gw.Agent, env))
		s.Transactions = track(s, NewTransactions(gw.Agent, env))
	}
	if session.HasRole(domain.RoleClient) {
		s.ClientDashboard = track(s, NewClientDashboard(gw.Client, env))
		s.Transfer = track(s, NewTransfer(gw.Client, gw.Settings, env))
		s.MobileRecharge = track(s, NewMobileRecharge(gw.Client, env))
		s.Notifications = track(s, NewNotifications(gw.Client, env))
		s.NotificationBell = track(s, NewNotificationBell(gw.Client, env))
		s.CryptoWallet = track(s, NewCryptoWallet(gw.Client, env))
	}
	s.ChangePassword = track(s, NewChangePassword(gw.Passwords, sessions, env))
	return s
}

func track[T interface{ Close() }](s *Set, screen T) T {
	s.closers = append(s.closers, screen)
	return screen
}

// Start begins background work: the notification poller for clients.
func (s *Set) Start(ctx context.Context) error {
	if s.NotificationBell == nil {
		return nil
	}
	return s.NotificationBell.Start(ctx)
}

// Len reports how many screens the set holds.
func (s *Set) Len() int { return len(s.closers) }

// Close tears every screen down.
func (s *Set) Close() {
	for _, c := range s.closers {
		c.Close()
	}
}
