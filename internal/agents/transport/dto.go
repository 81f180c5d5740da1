// Package transport defines the agents module's request and response DTOs.
package transport

import (
	"time"

	"github.com/google/uuid"

	"realty-portal-backend/internal/agents/repository"
)

// AgentResponse is the wire form of an agent.
type AgentResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	RoleLabel string    `json:"roleLabel"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AgentStatsResponse carries an agent's performance metrics.
type AgentStatsResponse struct {
	AgentID        uuid.UUID `json:"agentId"`
	AssignedCount  int       `json:"assignedCount"`
	ClosedCount    int       `json:"closedCount"`
	PortfolioValue float64   `json:"portfolioValue"`
	CloseRate      float64   `json:"closeRate"`
}

// CreateAgentRequest creates a sales team member.
type CreateAgentRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
	RoleLabel string `json:"roleLabel" validate:"omitempty,max=120"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// UpdateAgentRequest is a partial agent update.
type UpdateAgentRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=120"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	RoleLabel *string `json:"roleLabel" validate:"omitempty,max=120"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// ToAgentResponse maps a stored agent to its wire form.
func ToAgentResponse(a repository.Agent) AgentResponse {
	return AgentResponse{
		ID:        a.ID,
		Name:      a.Name,
		AvatarURL: a.AvatarURL,
		RoleLabel: a.RoleLabel,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
