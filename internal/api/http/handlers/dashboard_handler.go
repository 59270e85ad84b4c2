package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// DashboardHandler serves aggregated snapshots for both roles.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Client GET /dashboard summarizes the caller's own queries.
func (h *DashboardHandler) Client(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	snapshot, err := h.service.ClientDashboard(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}

// Support GET /support/dashboard summarizes all queries.
func (h *DashboardHandler) Support(c *fiber.Ctx) error {
	snapshot, err := h.service.SupportDashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}
