package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/http/dto"
	"github.com/kol-marketplace/backend/internal/middleware"
	"github.com/kol-marketplace/backend/internal/services"
	"go.uber.org/zap"
)

type MatchingHandler struct {
	matchingService *services.MatchingService
	appService      *services.ApplicationService
	log             *zap.Logger
}

func NewMatchingHandler(matchingService *services.MatchingService, appService *services.ApplicationService, log *zap.Logger) *MatchingHandler {
	return &MatchingHandler{matchingService: matchingService, appService: appService, log: log}
}

// MatchKOLs ranks candidate KOLs for a campaign. Strategy and limit come from
// query params; both have defaults.
func (h *MatchingHandler) MatchKOLs(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("campaignId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	strategy := c.Query("strategy")
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	ranked, err := h.matchingService.MatchKOLs(c.Context(), campaignID, middleware.GetUserID(c), strategy, limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: ranked})
}

func (h *MatchingHandler) ListStrategies(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.matchingService.ListStrategies()})
}

// InviteKOLs bulk-invites KOLs, typically straight from a match list.
func (h *MatchingHandler) InviteKOLs(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("campaignId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.InviteKOLsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if len(req.KOLProfileIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "kol_profile_ids is required"})
	}

	ids := make([]uuid.UUID, 0, len(req.KOLProfileIDs))
	for _, raw := range req.KOLProfileIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid kol profile id: " + raw})
		}
		ids = append(ids, id)
	}

	created, err := h.appService.InviteKOLs(c.Context(), campaignID, middleware.GetUserID(c), ids, req.ProposedRate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.InviteKOLsResponse{
		Invited: len(created),
		Skipped: len(ids) - len(created),
		Items:   created,
	}})
}
