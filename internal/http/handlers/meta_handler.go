package handlers

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/kol-marketplace/backend/internal/config"
	"github.com/kol-marketplace/backend/internal/http/dto"
	"github.com/kol-marketplace/backend/internal/matching"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/kol-marketplace/backend/internal/payments"
)

type MetaHandler struct {
	cfg      *config.Config
	taxonomy matching.Taxonomy
}

func NewMetaHandler(cfg *config.Config, taxonomy matching.Taxonomy) *MetaHandler {
	return &MetaHandler{cfg: cfg, taxonomy: taxonomy}
}

type MetaCategory struct {
	ID       string   `json:"id"`
	Keywords []string `json:"keywords,omitempty"`
}

// GetCategories lists the configured verticals with their matcher keywords.
func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	categories := make([]MetaCategory, 0, len(h.taxonomy))
	for vertical, keywords := range h.taxonomy {
		categories = append(categories, MetaCategory{ID: vertical, Keywords: keywords})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return c.JSON(dto.SuccessResponse{OK: true, Data: categories})
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: models.AllPlatforms})
}

// FeePreview shows the platform cut for a given amount.
func (h *MetaHandler) FeePreview(c *fiber.Ctx) error {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "amount must be a positive number"})
	}
	currency := c.Query("currency", "USD")

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.FeePreviewResponse{
		Amount:      amount,
		FeeRate:     h.cfg.PlatformFeeRate,
		PlatformFee: payments.PlatformFee(amount, h.cfg.PlatformFeeRate),
		NetAmount:   payments.NetAmount(amount, h.cfg.PlatformFeeRate),
		Currency:    currency,
	}})
}
