package handlers

import (
	"errors"
	"strconv"

	"takapay/internal/services/transfer"
	"takapay/internal/services/wallet"
	"takapay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	transferService transfer.Service
}

func NewTransferHandler(transferService transfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// QuoteFee previews the charge for a bank transfer before the user commits.
// Agents transfer free of charge, consumers pay a percentage with a floor.
func (h *TransferHandler) QuoteFee(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	quote, err := h.transferService.Quote(amount, claims.Role)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, quote)
}

func (h *TransferHandler) InitiateTransfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		BankName      string  `json:"bank_name"`
		AccountNumber string  `json:"account_number"`
		AccountHolder string  `json:"account_holder"`
		Amount        float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	tx, err := h.transferService.Initiate(c.Context(), claims.UserID, transfer.InitiateRequest{
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AccountHolder: input.AccountHolder,
		Amount:        input.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrInvalidAmount),
			errors.Is(err, transfer.ErrMissingBankDetail),
			errors.Is(err, wallet.ErrInsufficientBalance),
			errors.Is(err, wallet.ErrDailyLimitExceeded),
			errors.Is(err, wallet.ErrMonthlyLimitExceeded):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, wallet.ErrWalletLocked):
			return utils.Forbidden(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to initiate transfer")
		}
	}

	return utils.Created(c, fiber.Map{"transaction": tx})
}

// CompleteTransfer settles a pending bank transfer. Admin only; in production
// a settlement callback from the banking partner drives this.
func (h *TransferHandler) CompleteTransfer(c *fiber.Ctx) error {
	transactionID := c.Params("id")
	if transactionID == "" {
		return utils.BadRequest(c, "Transaction ID is required")
	}

	tx, err := h.transferService.Complete(c.Context(), transactionID)
	if err != nil {
		return settlementError(c, err)
	}

	return utils.Success(c, fiber.Map{"transaction": tx})
}

// FailTransfer rejects a pending bank transfer and refunds the wallet.
func (h *TransferHandler) FailTransfer(c *fiber.Ctx) error {
	transactionID := c.Params("id")
	if transactionID == "" {
		return utils.BadRequest(c, "Transaction ID is required")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	tx, err := h.transferService.Fail(c.Context(), transactionID, input.Reason)
	if err != nil {
		return settlementError(c, err)
	}

	return utils.Success(c, fiber.Map{"transaction": tx})
}

func settlementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transfer.ErrTransferNotFound):
		return utils.NotFound(c, "Transfer not found")
	case errors.Is(err, transfer.ErrNotPending):
		return utils.Conflict(c, err.Error())
	default:
		return utils.InternalError(c, "Failed to settle transfer")
	}
}
