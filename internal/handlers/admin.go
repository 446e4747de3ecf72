package handlers

import (
	"errors"

	"takapay/internal/services/user"
	"takapay/internal/utils"
	"takapay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler covers the admin console's consumer management endpoints.
type AdminHandler struct {
	userService user.Service
}

func NewAdminHandler(userService user.Service) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListUsers returns one filtered page of accounts. The filter arrives in the
// request body and is validated before any query runs.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var filter user.ListFilter
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&filter); err != nil {
			return utils.BadRequest(c, "Invalid filter body")
		}
	}

	p := pagination.ParseFromRequest(c)
	result, err := h.userService.List(c.Context(), filter, &p)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, pagination.Response(p, result))
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid user ID")
	}

	u, err := h.userService.Details(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalError(c, "Failed to fetch user")
	}

	return utils.Success(c, fiber.Map{"user": u})
}

func (h *AdminHandler) GetUserTransactions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid user ID")
	}

	p := pagination.ParseFromRequest(c)
	views, err := h.userService.Transactions(c.Context(), uint(id), &p)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalError(c, "Failed to fetch transactions")
	}

	return utils.Success(c, pagination.Response(p, views))
}

// UpdateUserStatus moves an account through its status graph. Suspensions and
// rejections invalidate the user's outstanding tokens.
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	change, err := h.userService.UpdateStatus(c.Context(), uint(id), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, user.ErrUnknownStatus):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, user.ErrIllegalTransition):
			return utils.Conflict(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to update status")
		}
	}

	return utils.Success(c, change)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(c.Context(), uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, user.ErrCannotDeleteSelf):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to delete user")
		}
	}

	return utils.Success(c, fiber.Map{"message": "User deleted"})
}
