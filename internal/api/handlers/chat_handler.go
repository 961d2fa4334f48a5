package handlers

import (
	"donorlink/internal/dto"
	"donorlink/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Send a message to the donor assistant
// @Description Classify a free-text question and return a (possibly personalized) response
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	resp, err := h.chatService.HandleMessage(c.Context(), optionalUserID(c), req.Message)
	if err != nil {
		if err == service.ErrEmptyMessage {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Message is required",
			})
		}
		h.logger.Error("Chat request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":  false,
			"response": "I'm sorry, something went wrong on our end. Please try again in a moment.",
		})
	}

	return c.JSON(resp)
}

// History godoc
// @Summary Get the caller's chat history
// @Description Prior exchanges in chronological order
// @Tags chat
// @Produce json
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.ConversationResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/chat/history [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	history, err := h.chatService.History(c.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to load chat history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load chat history",
		})
	}

	return c.JSON(history)
}

// Suggestions godoc
// @Summary Get example prompts
// @Description Up to 6 example prompts, the first personalized from donation history
// @Tags chat
// @Produce json
// @Success 200 {object} dto.SuggestionsResponse
// @Router /api/v1/chat/suggestions [get]
func (h *ChatHandler) Suggestions(c *fiber.Ctx) error {
	suggestions := h.chatService.Suggestions(c.Context(), optionalUserID(c))
	return c.JSON(dto.SuggestionsResponse{Suggestions: suggestions})
}

// Analytics godoc
// @Summary Chat analytics
// @Description Per-day and per-intent counts over a rolling window (admin only)
// @Tags chat
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Security Bearer
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/chat/analytics [get]
func (h *ChatHandler) Analytics(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)

	analytics, err := h.chatService.Analytics(c.Context(), days)
	if err != nil {
		h.logger.Error("Failed to build chat analytics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build analytics",
		})
	}

	return c.JSON(analytics)
}
