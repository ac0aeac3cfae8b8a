package controller

import (
	"context"
	"slices"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

var (
	loadAgentsMessages  = fallback("Failed to load agents. Please try again.")
	createAgentMessages = serverFirst("Failed to create agent. Please try again.", nil)
	agentStatusMessages = fallback("Failed to update agent status. Please try again.")
	deleteAgentMessages = serverFirst("Failed to delete agent. Please try again.", nil)
)

type AgentManagementState struct {
	List   Load           `json:"list"`
	Agents []domain.Agent `json:"agents"`
	Create Action         `json:"create"`
	Delete Action         `json:"delete"`
}

// AgentManagement lists bank agents and lets the admin create, suspend and
// delete them.
type AgentManagement struct {
	screen
	admin ports.AdminGateway
	state AgentManagementState
}

func NewAgentManagement(admin ports.AdminGateway, env Env) *AgentManagement {
	return &AgentManagement{screen: newScreen("agent_management", env), admin: admin}
}

func (m *AgentManagement) Load(ctx context.Context) error {
	if err := m.update(ctx, m.state.List.begin); err != nil {
		return err
	}
	agents, err := m.admin.ListAgents(ctx)
	if err != nil {
		m.failed("list agents", err)
	}
	return m.update(ctx, func() {
		if err != nil {
			m.state.List.fail(loadAgentsMessages.For(err))
			return
		}
		m.state.Agents = agents
		m.state.List.ready()
	})
}

// Create validates req, creates the agent and reloads the list.
func (m *AgentManagement) Create(ctx context.Context, req domain.CreateAgentRequest) error {
	if err := m.begin(ctx, &m.state.Create); err != nil {
		return err
	}
	err := form.Validate(req)
	if err == nil {
		_, err = m.admin.CreateAgent(ctx, req)
	}
	if err != nil {
		m.failed("create agent", err)
		return m.update(ctx, func() { m.state.Create.fail(createAgentMessages.For(err)) })
	}
	if err := m.update(ctx, func() { m.state.Create.succeed("Agent created successfully.") }); err != nil {
		return err
	}
	return m.Load(ctx)
}

// ToggleStatus flips the agent between ACTIVE and INACTIVE.
func (m *AgentManagement) ToggleStatus(ctx context.Context, agentID int64) error {
	var (
		next  string
		found bool
	)
	if err := m.read(ctx, func() {
		i := slices.IndexFunc(m.state.Agents, func(a domain.Agent) bool { return a.ID == agentID })
		if i < 0 {
			return
		}
		found = true
		next = domain.StatusActive
		if m.state.Agents[i].Active() {
			next = domain.StatusInactive
		}
	}); err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}

	updated, err := m.admin.UpdateAgentStatus(ctx, agentID, next)
	if err != nil {
		m.failed("update agent status", err)
	}
	return m.update(ctx, func() {
		if err != nil {
			m.state.List.fail(agentStatusMessages.For(err))
			return
		}
		agents := slices.Clone(m.state.Agents)
		for i := range agents {
			if agents[i].ID == agentID {
				agents[i] = *updated
			}
		}
		m.state.Agents = agents
	})
}

// Delete removes the agent and reloads the list.
func (m *AgentManagement) Delete(ctx context.Context, agentID int64) error {
	if err := m.begin(ctx, &m.state.Delete); err != nil {
		return err
	}
	if err := m.admin.DeleteAgent(ctx, agentID); err != nil {
		m.failed("delete agent", err)
		return m.update(ctx, func() { m.state.Delete.fail(deleteAgentMessages.For(err)) })
	}
	if err := m.update(ctx, m.state.Delete.reset); err != nil {
		return err
	}
	return m.Load(ctx)
}

// ResetActions closes the create and delete dialogs.
func (m *AgentManagement) ResetActions(ctx context.Context) error {
	return m.update(ctx, func() {
		m.state.Create.reset()
		m.state.Delete.reset()
	})
}

func (m *AgentManagement) Snapshot(ctx context.Context) (AgentManagementState, error) {
	var out AgentManagementState
	err := m.read(ctx, func() {
		out = m.state
		out.Agents = slices.Clone(m.state.Agents)
	})
	return out, err
}
