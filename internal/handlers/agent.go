package handlers

import (
	"errors"

	"takapay/internal/services/agent"
	"takapay/internal/utils"
	"takapay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AgentHandler struct {
	agentService agent.Service
}

func NewAgentHandler(agentService agent.Service) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// ListAgents lists agent applications, optionally filtered by status.
// Admin only.
func (h *AgentHandler) ListAgents(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	agents, err := h.agentService.List(c.Context(), c.Query("status"), &p)
	if err != nil {
		return utils.InternalError(c, "Failed to list agents")
	}
	return utils.Success(c, pagination.Response(p, agents))
}

func (h *AgentHandler) GetAgent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid agent ID")
	}

	a, err := h.agentService.Details(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, agent.ErrAgentNotFound) {
			return utils.NotFound(c, "Agent not found")
		}
		return utils.InternalError(c, "Failed to fetch agent")
	}
	return utils.Success(c, fiber.Map{"agent": a})
}

// GetAgentTransactions lists the agent's ledger for admin review.
func (h *AgentHandler) GetAgentTransactions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid agent ID")
	}

	p := pagination.ParseFromRequest(c)
	views, err := h.agentService.Transactions(c.Context(), uint(id), &p)
	if err != nil {
		if errors.Is(err, agent.ErrAgentNotFound) {
			return utils.NotFound(c, "Agent not found")
		}
		return utils.InternalError(c, "Failed to fetch agent transactions")
	}
	return utils.Success(c, pagination.Response(p, views))
}

// ApproveAgent activates a pending agent application. Admin only.
func (h *AgentHandler) ApproveAgent(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid agent ID")
	}

	a, err := h.agentService.Approve(c.Context(), uint(id), claims.UserID)
	if err != nil {
		return agentDecisionError(c, err)
	}

	return utils.Success(c, fiber.Map{"agent": a})
}

// RejectAgent declines a pending agent application with a written reason.
// Admin only.
func (h *AgentHandler) RejectAgent(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid agent ID")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	a, err := h.agentService.Reject(c.Context(), uint(id), claims.UserID, input.Reason)
	if err != nil {
		return agentDecisionError(c, err)
	}

	return utils.Success(c, fiber.Map{"agent": a})
}

// SuspendAgent takes an active agent offline. Admin only.
func (h *AgentHandler) SuspendAgent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid agent ID")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	a, err := h.agentService.Suspend(c.Context(), uint(id), input.Reason)
	if err != nil {
		return agentDecisionError(c, err)
	}

	return utils.Success(c, fiber.Map{"agent": a})
}

// ReactivateAgent brings a suspended agent back online. Admin only.
func (h *AgentHandler) ReactivateAgent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid agent ID")
	}

	a, err := h.agentService.Reactivate(c.Context(), uint(id))
	if err != nil {
		return agentDecisionError(c, err)
	}

	return utils.Success(c, fiber.Map{"agent": a})
}

func agentDecisionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, agent.ErrAgentNotFound):
		return utils.NotFound(c, "Agent not found")
	case errors.Is(err, agent.ErrReasonTooShort):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, agent.ErrActionInFlight):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, agent.ErrAlreadyDecided),
		errors.Is(err, agent.ErrIllegalTransition):
		return utils.Conflict(c, err.Error())
	default:
		return utils.InternalError(c, "Agent update failed")
	}
}
