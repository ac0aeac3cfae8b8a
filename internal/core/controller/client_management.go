package controller

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

var (
	createClientMessages = Messages{
		Fallback: "Failed to create client. Please try again.",
		ByKind: map[domain.FailureKind]string{
			domain.KindValidation:    "Invalid client data. Please check your inputs.",
			domain.KindConflict:      "Client ID already exists. Please use a different ID.",
			domain.KindAuthorization: "Authentication failed. Please login again.",
		},
	}
	depositMessages = serverFirst("Failed to make deposit. Please try again.", map[domain.FailureKind]string{
		domain.KindValidation: "Invalid deposit data. Please check your inputs.",
		domain.KindNotFound:   "Client or account not found.",
	})
	deleteClientMessages = Messages{
		Fallback: "Failed to delete client. Please try again.",
		ByKind: map[domain.FailureKind]string{
			domain.KindNotFound: "Client not found.",
			domain.KindConflict: "Cannot delete client with active accounts.",
		},
	}
)

type ClientManagementState struct {
	List    Load            `json:"list"`
	Clients []domain.Client `json:"clients"`
	Create  Action          `json:"create"`
	// Created is the last client created, with its account and wallet.
	Created *domain.CreateClientResponse `json:"created,omitempty"`
	// DepositTarget is the client the deposit dialog is open for.
	DepositTarget string `json:"depositTarget,omitempty"`
	Deposit       Action `json:"deposit"`
	Delete        Action `json:"delete"`
}

// ClientManagement lets an agent enroll clients, credit their accounts and
// remove them.
type ClientManagement struct {
	screen
	agent ports.AgentGateway
	state ClientManagementState

	closeDeposit func()
}

func NewClientManagement(agent ports.AgentGateway, env Env) *ClientManagement {
	return &ClientManagement{screen: newScreen("client_management", env), agent: agent}
}

func (m *ClientManagement) Load(ctx context.Context) error {
	if err := m.update(ctx, m.state.List.begin); err != nil {
		return err
	}
	clients, err := m.agent.ManagedClients(ctx)
	if err != nil {
		m.failed("load clients", err)
	}
	return m.update(ctx, func() {
		if err != nil {
			m.state.List.fail(loadClientsMessages.For(err))
			return
		}
		m.state.Clients = clients
		m.state.List.ready()
	})
}

func (m *ClientManagement) Create(ctx context.Context, req domain.CreateClientRequest) error {
	if err := m.begin(ctx, &m.state.Create); err != nil {
		return err
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	var resp *domain.CreateClientResponse
	err := form.Validate(req)
	if err == nil {
		resp, err = m.agent.CreateClient(ctx, req)
	}
	if err != nil {
		m.failed("create client", err)
		return m.update(ctx, func() { m.state.Create.fail(createClientMessages.For(err)) })
	}
	if err := m.update(ctx, func() {
		m.state.Created = resp
		m.state.Create.succeed(fmt.Sprintf("Client %s created successfully.", resp.Client.ClientID))
	}); err != nil {
		return err
	}
	return m.Load(ctx)
}

// OpenDeposit selects the client to credit.
func (m *ClientManagement) OpenDeposit(ctx context.Context, clientID string) error {
	return m.update(ctx, func() {
		m.cancelDepositClose()
		m.state.DepositTarget = clientID
		m.state.Deposit.reset()
	})
}

// CloseDeposit closes the deposit dialog.
func (m *ClientManagement) CloseDeposit(ctx context.Context) error {
	return m.update(ctx, m.closeDepositDialog)
}

func (m *ClientManagement) closeDepositDialog() {
	m.cancelDepositClose()
	m.state.DepositTarget = ""
	m.state.Deposit.reset()
}

func (m *ClientManagement) cancelDepositClose() {
	if m.closeDeposit != nil {
		m.closeDeposit()
		m.closeDeposit = nil
	}
}

// Deposit credits the selected client's account. On success the dialog
// closes itself after the long toast delay.
func (m *ClientManagement) Deposit(ctx context.Context, req domain.DepositRequest) error {
	var target string
	if err := m.update(ctx, func() { target = m.state.DepositTarget }); err != nil {
		return err
	}
	if req.ClientID == "" {
		req.ClientID = target
	}
	if err := m.begin(ctx, &m.state.Deposit); err != nil {
		return err
	}
	req.Description = strings.TrimSpace(req.Description)

	var resp *domain.DepositResponse
	err := form.Validate(req)
	if err == nil {
		resp, err = m.agent.Deposit(ctx, req)
	}
	if err != nil {
		m.failed("deposit", err)
	}
	return m.update(ctx, func() {
		if err != nil {
			m.state.Deposit.fail(depositMessages.For(err))
			return
		}
		msg := resp.Message
		if msg == "" {
			msg = "Deposit successful! Transaction ID: " + resp.TransactionID
		}
		m.state.Deposit.succeed(msg)
		m.cancelDepositClose()
		m.closeDeposit = m.sched.After(m.timing.LongToast, func() {
			m.closeDeposit = nil
			m.closeDepositDialog()
		})
	})
}

func (m *ClientManagement) Delete(ctx context.Context, clientID string) error {
	if err := m.begin(ctx, &m.state.Delete); err != nil {
		return err
	}
	if err := m.agent.DeleteClient(ctx, clientID); err != nil {
		m.failed("delete client", err)
		return m.update(ctx, func() { m.state.Delete.fail(deleteClientMessages.For(err)) })
	}
	if err := m.update(ctx, m.state.Delete.reset); err != nil {
		return err
	}
	return m.Load(ctx)
}

func (m *ClientManagement) ResetActions(ctx context.Context) error {
	return m.update(ctx, func() {
		m.state.Create.reset()
		m.state.Delete.reset()
		m.state.Created = nil
	})
}

func (m *ClientManagement) Snapshot(ctx context.Context) (ClientManagementState, error) {
	var out ClientManagementState
	err := m.read(ctx, func() {
		out = m.state
		out.Clients = slices.Clone(m.state.Clients)
	})
	return out, err
}
