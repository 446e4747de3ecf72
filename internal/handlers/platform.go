package handlers

import (
	"takapay/internal/services/platform"
	"takapay/internal/utils"
	"takapay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

// PlatformHandler exposes the operator account: revenue figures, its ledger
// and the balance reconciliation check. Admin only.
type PlatformHandler struct {
	platformService platform.Service
}

func NewPlatformHandler(platformService platform.Service) *PlatformHandler {
	return &PlatformHandler{platformService: platformService}
}

func (h *PlatformHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.platformService.Stats(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to compute platform stats")
	}
	return utils.Success(c, stats)
}

func (h *PlatformHandler) GetTransactions(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	views, err := h.platformService.Transactions(c.Context(), &p)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch platform transactions")
	}
	return utils.Success(c, pagination.Response(p, views))
}

// Reconcile recomputes the platform balance from the ledger and reports any
// discrepancy against the stored balance.
func (h *PlatformHandler) Reconcile(c *fiber.Ctx) error {
	result, err := h.platformService.Reconcile(c.Context())
	if err != nil {
		return utils.InternalError(c, "Reconciliation failed")
	}
	return utils.Success(c, result)
}
