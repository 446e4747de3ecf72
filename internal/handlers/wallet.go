package handlers

import (
	"errors"

	"takapay/internal/models"
	"takapay/internal/services/wallet"
	"takapay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// extractUserClaims is a helper shared by the protected handlers.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return utils.NotFound(c, "Wallet not found")
		}
		return utils.InternalError(c, "Failed to get wallet")
	}

	return utils.Success(c, fiber.Map{"wallet": w})
}

// LockWallet freezes a wallet. Admin only.
func (h *WalletHandler) LockWallet(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return utils.BadRequest(c, "Invalid wallet ID")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Reason == "" {
		return utils.BadRequest(c, "A reason is required to lock a wallet")
	}

	if err := h.walletService.LockWallet(c.Context(), uint(walletID), input.Reason); err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return utils.NotFound(c, "Wallet not found")
		}
		return utils.InternalError(c, "Failed to lock wallet")
	}

	return utils.Success(c, fiber.Map{"message": "Wallet locked"})
}

// UnlockWallet lifts a freeze. Admin only.
func (h *WalletHandler) UnlockWallet(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return utils.BadRequest(c, "Invalid wallet ID")
	}

	if err := h.walletService.UnlockWallet(c.Context(), uint(walletID)); err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return utils.NotFound(c, "Wallet not found")
		}
		return utils.InternalError(c, "Failed to unlock wallet")
	}

	return utils.Success(c, fiber.Map{"message": "Wallet unlocked"})
}
