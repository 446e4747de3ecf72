package handlers

import (
	"errors"

	"takapay/internal/models"
	"takapay/internal/services/card"
	"takapay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	cardService card.Service
}

func NewCardHandler(cardService card.Service) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// LinkCard tokenizes and stores a funding card. The raw card number never
// touches the database.
func (h *CardHandler) LinkCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.LinkCardInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	linked, err := h.cardService.LinkCard(c.Context(), claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, card.ErrMissingDetails),
			errors.Is(err, card.ErrInvalidExpiry),
			errors.Is(err, card.ErrCardExpired):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.BadRequest(c, "Failed to link card")
		}
	}

	return utils.Created(c, fiber.Map{"card": linked})
}

func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	cards, err := h.cardService.ListCards(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to list cards")
	}

	return utils.Success(c, fiber.Map{"cards": cards})
}

func (h *CardHandler) RemoveCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "Invalid card ID")
	}

	if err := h.cardService.RemoveCard(c.Context(), claims.UserID, uint(cardID)); err != nil {
		switch {
		case errors.Is(err, card.ErrCardNotFound):
			return utils.NotFound(c, "Card not found")
		case errors.Is(err, card.ErrNotCardOwner):
			return utils.Forbidden(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to remove card")
		}
	}

	return utils.Success(c, fiber.Map{"message": "Card removed"})
}

// AddMoney tops up the caller's wallet from a linked card.
func (h *CardHandler) AddMoney(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		CardID uint    `json:"card_id"`
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	tx, err := h.cardService.AddMoney(c.Context(), claims.UserID, input.CardID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, card.ErrCardNotFound):
			return utils.NotFound(c, "Card not found")
		case errors.Is(err, card.ErrNotCardOwner):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, card.ErrCardInactive),
			errors.Is(err, card.ErrCardExpired),
			errors.Is(err, card.ErrInvalidAmount):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Top-up failed")
		}
	}

	return utils.Created(c, fiber.Map{"transaction": tx})
}
