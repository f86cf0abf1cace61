package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jobhunter/backend/internal/answers"
)

// AnswerDrafter drafts application-question answers.
type AnswerDrafter interface {
	Available() bool
	Draft(ctx context.Context, req answers.Request) (string, error)
}

// AnswersHandler handles answer drafting requests.
type AnswersHandler struct {
	drafter AnswerDrafter
}

// NewAnswersHandler creates a new answers handler.
func NewAnswersHandler(drafter AnswerDrafter) *AnswersHandler {
	return &AnswersHandler{drafter: drafter}
}

// Generate handles POST /api/answers/generate
func (h *AnswersHandler) Generate(c *fiber.Ctx) error {
	if h.drafter == nil || !h.drafter.Available() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "not_configured",
			"message": "Answer generation requires an LLM API key",
		})
	}

	var req answers.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
	}
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "Question is required",
		})
	}

	answer, err := h.drafter.Draft(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "generation_failed",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"answer": answer,
	})
}
