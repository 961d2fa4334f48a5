package handlers

import (
	"donorlink/internal/dto"
	"donorlink/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DonationHandler struct {
	donationService *service.DonationService
	logger          *zap.Logger
}

func NewDonationHandler(donationService *service.DonationService, logger *zap.Logger) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Record a donation
// @Description Register a completed donation for a donor (admin only)
// @Tags donations
// @Accept json
// @Produce json
// @Param request body dto.CreateDonationRequest true "Donation"
// @Security Bearer
// @Success 201 {object} dto.DonationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.DonorID == "" || req.BloodBank == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "donor_id and blood_bank are required",
		})
	}

	resp, err := h.donationService.RecordDonation(c.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to record donation", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to record donation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListMine godoc
// @Summary List the caller's donations
// @Tags donations
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.DonationResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/donations/mine [get]
func (h *DonationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	donations, err := h.donationService.ListDonations(c.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list donations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list donations",
		})
	}

	return c.JSON(donations)
}
