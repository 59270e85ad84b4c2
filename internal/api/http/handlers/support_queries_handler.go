package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// SupportQueriesHandler manages triage endpoints for support staff.
type SupportQueriesHandler struct {
	service *service.QueryService
}

// NewSupportQueriesHandler constructs handler.
func NewSupportQueriesHandler(queryService *service.QueryService) *SupportQueriesHandler {
	return &SupportQueriesHandler{service: queryService}
}

// List GET /support/queries.
func (h *SupportQueriesHandler) List(c *fiber.Ctx) error {
	queries, err := h.service.ListAll(c.Context(), parseListFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": queryResponses(queries)})
}

// Close POST /support/queries/:id/close.
func (h *SupportQueriesHandler) Close(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("support staff required")
	}
	queryID, err := parseQueryID(c)
	if err != nil {
		return err
	}

	query, err := h.service.Close(c.Context(), principal.User, queryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": queryResponse(query)})
}

// Reopen POST /support/queries/:id/reopen.
func (h *SupportQueriesHandler) Reopen(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("support staff required")
	}
	queryID, err := parseQueryID(c)
	if err != nil {
		return err
	}

	query, err := h.service.Reopen(c.Context(), principal.User, queryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": queryResponse(query)})
}

func parseQueryID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid query id", nil)
	}
	return id, nil
}
