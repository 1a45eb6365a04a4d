package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/http/dto"
	"github.com/kol-marketplace/backend/internal/middleware"
	"github.com/kol-marketplace/backend/internal/repositories"
	"github.com/kol-marketplace/backend/internal/services"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	appService *services.ApplicationService
	log        *zap.Logger
}

func NewApplicationHandler(appService *services.ApplicationService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{appService: appService, log: log}
}

// Apply is the KOL-side entrypoint: apply to an open campaign or accept a
// pending invitation.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
	}

	app, err := h.appService.Apply(c.Context(), campaignID, middleware.GetUserID(c), req.ProposedRate, req.Pitch)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: app})
}

func (h *ApplicationHandler) Accept(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	var req dto.AcceptApplicationRequest
	_ = c.BodyParser(&req)

	app, err := h.appService.Accept(c.Context(), id, middleware.GetUserID(c), req.AgreedRate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: app})
}

func (h *ApplicationHandler) Decline(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	var req dto.DeclineApplicationRequest
	_ = c.BodyParser(&req)

	app, err := h.appService.Decline(c.Context(), id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: app})
}

func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	var req dto.WithdrawRequest
	_ = c.BodyParser(&req)

	app, err := h.appService.Withdraw(c.Context(), id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: app})
}

func (h *ApplicationHandler) Complete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	app, err := h.appService.Complete(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: app})
}

// ListForCampaign is the business-side applicants list.
func (h *ApplicationHandler) ListForCampaign(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	apps, err := h.appService.ListForCampaign(c.Context(), campaignID, middleware.GetUserID(c), h.filterFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: apps})
}

// ListMine is the KOL-side list of own applications and invitations.
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	apps, err := h.appService.ListForKOL(c.Context(), middleware.GetUserID(c), h.filterFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: apps})
}

func (h *ApplicationHandler) filterFromQuery(c *fiber.Ctx) repositories.ApplicationFilter {
	f := repositories.ApplicationFilter{Limit: 20}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	return f
}
