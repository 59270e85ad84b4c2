package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/analytics"
	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// QueriesHandler manages client-facing query endpoints.
type QueriesHandler struct {
	service *service.QueryService
}

// NewQueriesHandler constructs handler.
func NewQueriesHandler(queryService *service.QueryService) *QueriesHandler {
	return &QueriesHandler{service: queryService}
}

// Create POST /queries.
func (h *QueriesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	query, err := h.service.Submit(c.Context(), principal.User, service.SubmitInput{
		Email:       req.Email,
		Mobile:      req.Mobile,
		Category:    req.Category,
		Heading:     req.Heading,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": queryResponse(query)})
}

// List GET /queries.
func (h *QueriesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	queries, err := h.service.ListForUser(c.Context(), principal.User.ID, parseListFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": queryResponses(queries)})
}

// Categories GET /queries/categories returns the submission form options.
func (h *QueriesHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.KnownCategories})
}

func parseListFilter(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{
		Status: analytics.ParseStatusFilter(c.Query("status")),
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		for _, part := range strings.Split(categoryStr, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				filter.Categories = append(filter.Categories, trimmed)
			}
		}
	}
	return filter
}

func queryResponse(query *domain.Query) dto.QueryResponse {
	return dto.QueryResponse{
		ID:          query.ID,
		UserID:      query.UserID,
		Email:       query.Email,
		Mobile:      query.Mobile,
		Category:    query.Category,
		Heading:     query.Heading,
		Description: query.Description,
		Status:      string(query.Status),
		CreatedAt:   query.CreatedAt,
		ClosedAt:    query.ClosedAt,
	}
}

func queryResponses(queries []domain.Query) []dto.QueryResponse {
	items := make([]dto.QueryResponse, 0, len(queries))
	for i := range queries {
		items = append(items, queryResponse(&queries[i]))
	}
	return items
}
