package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/http/dto"
	"github.com/kol-marketplace/backend/internal/middleware"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/kol-marketplace/backend/internal/repositories"
	"github.com/kol-marketplace/backend/internal/services"
	"go.uber.org/zap"
)

type KOLHandler struct {
	kolService *services.KOLService
	log        *zap.Logger
}

func NewKOLHandler(kolService *services.KOLService, log *zap.Logger) *KOLHandler {
	return &KOLHandler{kolService: kolService, log: log}
}

func (h *KOLHandler) CreateProfile(c *fiber.Ctx) error {
	var req dto.CreateKOLProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	profile := models.KOLProfile{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Categories:  req.Categories,
		SocialLinks: req.SocialLinks,
		Audience:    req.Audience,
	}

	created, err := h.kolService.CreateProfile(c.Context(), middleware.GetUserID(c), &profile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: created})
}

func (h *KOLHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.kolService.GetProfileByUser(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "KOL profile not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}

func (h *KOLHandler) GetProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid profile id"})
	}

	profile, err := h.kolService.GetProfile(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "KOL profile not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}

func (h *KOLHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.CreateKOLProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	update := models.KOLProfile{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Categories:  req.Categories,
		SocialLinks: req.SocialLinks,
		Audience:    req.Audience,
	}

	updated, err := h.kolService.UpdateProfile(c.Context(), middleware.GetUserID(c), &update)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *KOLHandler) SearchProfiles(c *fiber.Ctx) error {
	filter := repositories.KOLFilter{Limit: 20}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("platform"); v != "" {
		filter.Platform = &v
	}
	if v := c.Query("min_followers"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinFollowers = &n
		}
	}
	if v := c.Query("max_followers"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxFollowers = &n
		}
	}
	if v := c.Query("q"); v != "" {
		filter.Query = &v
	}

	profiles, err := h.kolService.Search(c.Context(), filter)
	if err != nil {
		h.log.Error("kol search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "search failed"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profiles})
}

// RefreshStats triggers a synchronous analytics refresh for the acting KOL.
func (h *KOLHandler) RefreshStats(c *fiber.Ctx) error {
	profile, err := h.kolService.GetProfileByUser(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "KOL profile not found"})
	}

	refreshed, err := h.kolService.RefreshStats(c.Context(), profile.ID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: refreshed})
}
