package handlers

import (
	"time"

	"eduagent/internal/dto"
	"eduagent/internal/models"
	"eduagent/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	escalations *repository.EscalationRepository
	faqs        *repository.FAQRepository
	exams       *repository.ExamRepository
	fees        *repository.FeeRepository
	passages    *repository.PassageRepository
	logger      *zap.Logger
}

func NewAdminHandler(
	escalations *repository.EscalationRepository,
	faqs *repository.FAQRepository,
	exams *repository.ExamRepository,
	fees *repository.FeeRepository,
	passages *repository.PassageRepository,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		escalations: escalations,
		faqs:        faqs,
		exams:       exams,
		fees:        fees,
		passages:    passages,
		logger:      logger,
	}
}

// ListEscalations godoc
// @Summary List escalated queries (staff only)
// @Tags admin
// @Produce json
// @Param status query string false "Filter: pending, in-progress or resolved"
// @Security Bearer
// @Success 200 {array} dto.EscalationResponse
// @Router /api/v1/admin/escalations [get]
func (h *AdminHandler) ListEscalations(c *fiber.Ctx) error {
	status := c.Query("status")

	queries, err := h.escalations.ListByStatus(c.UserContext(), status)
	if err != nil {
		h.logger.Error("Failed to list escalated queries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list escalated queries",
		})
	}

	resp := make([]dto.EscalationResponse, 0, len(queries))
	for _, eq := range queries {
		resp = append(resp, dto.EscalationResponse{
			ID:           eq.ID.String(),
			StudentQuery: eq.StudentQuery,
			Reason:       eq.Reason,
			Status:       string(eq.Status),
			AdminNotes:   eq.AdminNotes,
			CreatedAt:    eq.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(resp)
}

// UpdateEscalation godoc
// @Summary Update an escalated query's status and notes (staff only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Escalation id"
// @Param request body dto.UpdateEscalationRequest true "New status and notes"
// @Security Bearer
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /api/v1/admin/escalations/{id} [patch]
func (h *AdminHandler) UpdateEscalation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid escalation id",
		})
	}

	var req dto.UpdateEscalationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	status := models.EscalationStatus(req.Status)
	switch status {
	case models.EscalationStatusPending, models.EscalationStatusInProgress, models.EscalationStatusResolved:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be pending, in-progress or resolved",
		})
	}

	if err := h.escalations.UpdateStatus(c.UserContext(), id, status, req.AdminNotes); err != nil {
		h.logger.Error("Failed to update escalated query", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update escalated query",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListFAQs godoc
// @Summary List FAQ records (staff only)
// @Tags admin
// @Produce json
// @Param category query string false "Filter by category"
// @Security Bearer
// @Success 200 {array} dto.FAQResponse
// @Router /api/v1/admin/faqs [get]
func (h *AdminHandler) ListFAQs(c *fiber.Ctx) error {
	faqs, err := h.faqs.ListAll(c.UserContext(), c.Query("category"))
	if err != nil {
		h.logger.Error("Failed to list FAQs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list FAQs",
		})
	}

	resp := make([]dto.FAQResponse, 0, len(faqs))
	for _, faq := range faqs {
		resp = append(resp, dto.FAQResponse{
			ID:       faq.ID.String(),
			Category: faq.Category,
			Question: faq.Question,
			Answer:   faq.Answer,
			Keywords: faq.Keywords,
		})
	}

	return c.JSON(resp)
}

// Stats godoc
// @Summary Dashboard counts (staff only)
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.StatsResponse
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var stats dto.StatsResponse

	// Each count degrades to zero independently; the dashboard still renders.
	if n, err := h.faqs.Count(ctx); err == nil {
		stats.TotalFAQs = n
	}
	if n, err := h.escalations.Count(ctx); err == nil {
		stats.TotalEscalated = n
	}
	if n, err := h.escalations.CountByStatus(ctx, models.EscalationStatusPending); err == nil {
		stats.PendingEscalated = n
	}
	if n, err := h.passages.Count(ctx); err == nil {
		stats.DocumentPassages = n
	}
	if n, err := h.exams.Count(ctx); err == nil {
		stats.ExamEntries = n
	}
	if n, err := h.fees.Count(ctx); err == nil {
		stats.FeeEntries = n
	}

	return c.JSON(stats)
}
