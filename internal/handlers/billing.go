package handlers

import (
	"errors"

	"takapay/internal/services/billing"
	"takapay/internal/services/wallet"
	"takapay/internal/utils"
	"takapay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type BillingHandler struct {
	billingService billing.Service
}

func NewBillingHandler(billingService billing.Service) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// ListBillers lists payee organizations, optionally filtered by status.
func (h *BillingHandler) ListBillers(c *fiber.Ctx) error {
	billers, err := h.billingService.ListBillers(c.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, billing.ErrInvalidStatus) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Failed to list billers")
	}
	return utils.Success(c, fiber.Map{"billers": billers})
}

func (h *BillingHandler) GetBiller(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid biller ID")
	}

	biller, err := h.billingService.BillerDetails(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, billing.ErrBillerNotFound) {
			return utils.NotFound(c, "Biller not found")
		}
		return utils.InternalError(c, "Failed to fetch biller")
	}
	return utils.Success(c, fiber.Map{"biller": biller})
}

// CreateBiller registers a new payee organization. Admin only.
func (h *BillingHandler) CreateBiller(c *fiber.Ctx) error {
	var input struct {
		Name         string `json:"name"`
		BillerCode   string `json:"biller_code"`
		BillType     string `json:"bill_type"`
		ContactEmail string `json:"contact_email"`
		ContactPhone string `json:"contact_phone"`
		Description  string `json:"description"`
		LogoURL      string `json:"logo_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	biller, err := h.billingService.CreateBiller(c.Context(), billing.CreateBillerInput{
		Name:         input.Name,
		BillerCode:   input.BillerCode,
		BillType:     input.BillType,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Description:  input.Description,
		LogoURL:      input.LogoURL,
	})
	if err != nil {
		if errors.Is(err, billing.ErrDuplicateCode) {
			return utils.Conflict(c, err.Error())
		}
		return utils.BadRequest(c, err.Error())
	}

	return utils.Created(c, fiber.Map{"biller": biller})
}

// UpdateBiller changes a biller's contact and display fields. The biller code
// and bill type are permanent once created.
func (h *BillingHandler) UpdateBiller(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid biller ID")
	}

	var input struct {
		Name         string `json:"name"`
		BillerCode   string `json:"biller_code"`
		BillType     string `json:"bill_type"`
		ContactEmail string `json:"contact_email"`
		ContactPhone string `json:"contact_phone"`
		Description  string `json:"description"`
		LogoURL      string `json:"logo_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	biller, err := h.billingService.UpdateBiller(c.Context(), uint(id), billing.UpdateBillerInput{
		Name:         input.Name,
		BillerCode:   input.BillerCode,
		BillType:     input.BillType,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Description:  input.Description,
		LogoURL:      input.LogoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrBillerNotFound):
			return utils.NotFound(c, "Biller not found")
		case errors.Is(err, billing.ErrImmutableField):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.BadRequest(c, err.Error())
		}
	}

	return utils.Success(c, fiber.Map{"biller": biller})
}

func (h *BillingHandler) UpdateBillerStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid biller ID")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	biller, err := h.billingService.UpdateBillerStatus(c.Context(), uint(id), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrBillerNotFound):
			return utils.NotFound(c, "Biller not found")
		case errors.Is(err, billing.ErrStatusUnchanged):
			return utils.Conflict(c, err.Error())
		default:
			return utils.BadRequest(c, err.Error())
		}
	}

	return utils.Success(c, fiber.Map{"biller": biller})
}

func (h *BillingHandler) DeleteBiller(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid biller ID")
	}

	if err := h.billingService.DeleteBiller(c.Context(), uint(id)); err != nil {
		if errors.Is(err, billing.ErrBillerNotFound) {
			return utils.NotFound(c, "Biller not found")
		}
		return utils.InternalError(c, "Failed to delete biller")
	}

	return utils.Success(c, fiber.Map{"message": "Biller deleted"})
}

// PayBill pays a bill from the caller's wallet. Bill payments carry no fee.
func (h *BillingHandler) PayBill(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		BillerID      uint    `json:"biller_id"`
		AccountNumber string  `json:"account_number"`
		Amount        float64 `json:"amount"`
		BillingMonth  int     `json:"billing_month"`
		BillingYear   int     `json:"billing_year"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	payment, err := h.billingService.PayBill(c.Context(), claims.UserID, billing.PayBillRequest{
		BillerID:      input.BillerID,
		AccountNumber: input.AccountNumber,
		Amount:        input.Amount,
		BillingMonth:  input.BillingMonth,
		BillingYear:   input.BillingYear,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrBillerNotFound):
			return utils.NotFound(c, "Biller not found")
		case errors.Is(err, billing.ErrBillerUnavailable):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, billing.ErrInvalidAmount),
			errors.Is(err, billing.ErrMissingAccount),
			errors.Is(err, wallet.ErrInsufficientBalance),
			errors.Is(err, wallet.ErrDailyLimitExceeded),
			errors.Is(err, wallet.ErrMonthlyLimitExceeded):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, wallet.ErrWalletLocked):
			return utils.Forbidden(c, err.Error())
		default:
			return utils.InternalError(c, "Bill payment failed")
		}
	}

	return utils.Created(c, fiber.Map{"payment": payment})
}

func (h *BillingHandler) PaymentHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)
	payments, err := h.billingService.PaymentHistory(c.Context(), claims.UserID, &p)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch payment history")
	}

	return utils.Success(c, pagination.Response(p, payments))
}
