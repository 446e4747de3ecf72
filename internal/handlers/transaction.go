package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"takapay/internal/repositories"
	"takapay/internal/services/transaction"
	"takapay/internal/services/wallet"
	"takapay/internal/utils"
	"takapay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

// PageSizeStore persists a user's preferred history page size between
// requests.
type PageSizeStore interface {
	GetPageSizePreference(ctx context.Context, userID uint) int
	SetPageSizePreference(ctx context.Context, userID uint, size int) error
}

type TransactionHandler struct {
	txService transaction.Service
	pageSizes PageSizeStore
}

func NewTransactionHandler(txService transaction.Service, pageSizes PageSizeStore) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		pageSizes: pageSizes,
	}
}

func (h *TransactionHandler) SendMoney(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ReceiverPhone string  `json:"receiver_phone"`
		Amount        float64 `json:"amount"`
		Description   string  `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	tx, err := h.txService.SendMoney(c.Context(), claims.UserID, transaction.SendMoneyRequest{
		ReceiverPhone: input.ReceiverPhone,
		Amount:        input.Amount,
		Description:   input.Description,
	})
	if err != nil {
		return transactionError(c, err)
	}

	return utils.Created(c, fiber.Map{"transaction": tx})
}

// CashIn is an agent endpoint. It credits a customer's wallet with cash the
// agent received over the counter.
func (h *TransactionHandler) CashIn(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		CustomerPhone string  `json:"customer_phone"`
		Amount        float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	tx, err := h.txService.CashIn(c.Context(), claims.UserID, transaction.CashInRequest{
		CustomerPhone: input.CustomerPhone,
		Amount:        input.Amount,
	})
	if err != nil {
		return transactionError(c, err)
	}

	return utils.Created(c, fiber.Map{"transaction": tx})
}

func (h *TransactionHandler) CashOut(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		AgentCode string  `json:"agent_code"`
		Amount    float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	tx, err := h.txService.CashOut(c.Context(), claims.UserID, transaction.CashOutRequest{
		AgentCode: strings.TrimSpace(input.AgentCode),
		Amount:    input.Amount,
	})
	if err != nil {
		return transactionError(c, err)
	}

	return utils.Created(c, fiber.Map{"transaction": tx})
}

// GetHistory returns one page of the caller's ledger, optionally filtered by
// type and status. An explicit page size is remembered for later visits;
// changing it jumps back to the first page so no rows are skipped.
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit := h.pageSizes.GetPageSizePreference(c.Context(), claims.UserID)
	if raw := c.Query("limit"); raw != "" {
		requested, err := strconv.Atoi(raw)
		if err != nil || requested < 1 {
			return utils.BadRequest(c, "Invalid page size")
		}
		if requested > pagination.MaxLimit {
			requested = pagination.MaxLimit
		}
		if requested != limit {
			// A new page size restarts from the first page so no rows
			// are skipped by the old offset.
			if err := h.pageSizes.SetPageSizePreference(c.Context(), claims.UserID, requested); err != nil {
				log.Printf("failed to persist page size for user %d: %v", claims.UserID, err)
			}
			limit = requested
			page = 1
		}
	}

	p := pagination.New(page, limit)
	filter := repositories.TransactionListFilter{
		Type:   strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}

	views, err := h.txService.History(c.Context(), claims.UserID, filter, &p)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidFilter) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Failed to fetch transactions")
	}

	return utils.Success(c, pagination.Response(p, views))
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	transactionID := c.Params("id")
	if transactionID == "" {
		return utils.BadRequest(c, "Transaction ID is required")
	}

	view, err := h.txService.Details(c.Context(), transactionID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrTransactionNotFound):
			return utils.NotFound(c, "Transaction not found")
		case errors.Is(err, transaction.ErrNotParticipant):
			return utils.Forbidden(c, "Not a party to this transaction")
		default:
			return utils.InternalError(c, "Failed to fetch transaction")
		}
	}

	return utils.Success(c, fiber.Map{"transaction": view})
}

// transactionError maps service errors onto HTTP statuses.
func transactionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, wallet.ErrInvalidAmount):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, transaction.ErrRecipientUnavailable),
		errors.Is(err, transaction.ErrAgentUnavailable):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, transaction.ErrCustomerNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, wallet.ErrInsufficientBalance),
		errors.Is(err, wallet.ErrDailyLimitExceeded),
		errors.Is(err, wallet.ErrMonthlyLimitExceeded):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, wallet.ErrWalletLocked):
		return utils.Forbidden(c, err.Error())
	case errors.Is(err, wallet.ErrSelfTransfer):
		return utils.BadRequest(c, err.Error())
	default:
		return utils.InternalError(c, "Transaction failed")
	}
}
