package handlers

import (
	"net/url"
	"strings"

	"eduagent/internal/dto"
	"eduagent/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatHandler struct {
	pipeline *service.Pipeline
	logger   *zap.Logger
}

func NewChatHandler(pipeline *service.Pipeline, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// Chat godoc
// @Summary Ask the helpdesk assistant a question
// @Description Runs one student question through the helpdesk pipeline and returns the answer plus any matching document offers
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question and optional session id"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	result := h.pipeline.Answer(c.UserContext(), req.SessionID, req.Message)

	documents := make([]dto.DocumentOffer, 0, len(result.Documents))
	for _, match := range result.Documents {
		documents = append(documents, dto.DocumentOffer{
			FileName:    match.FileName,
			DisplayName: match.DisplayName,
			DownloadURL: "/api/v1/documents/" + url.PathEscape(match.FileName),
		})
	}

	return c.JSON(dto.ChatResponse{
		Escalated: result.Escalated,
		Answer:    result.Answer,
		Documents: documents,
	})
}
