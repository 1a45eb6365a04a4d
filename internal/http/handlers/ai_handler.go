package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kol-marketplace/backend/internal/http/dto"
	"github.com/kol-marketplace/backend/internal/middleware"
	"github.com/kol-marketplace/backend/internal/services"
	"go.uber.org/zap"
)

type AIHandler struct {
	aiService *services.AIService
	log       *zap.Logger
}

func NewAIHandler(aiService *services.AIService, log *zap.Logger) *AIHandler {
	return &AIHandler{aiService: aiService, log: log}
}

// MatchCampaigns is the KOL-facing explained campaign shortlist.
func (h *AIHandler) MatchCampaigns(c *fiber.Ctx) error {
	var req dto.MatchCampaignsRequest
	_ = c.BodyParser(&req) // body is optional

	report, err := h.aiService.MatchCampaigns(c.Context(), middleware.GetUserID(c), req.Limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: report})
}

// EnhanceProfile returns AI (or heuristic fallback) profile suggestions.
func (h *AIHandler) EnhanceProfile(c *fiber.Ctx) error {
	enhancement, err := h.aiService.EnhanceProfile(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: enhancement})
}
