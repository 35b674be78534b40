package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/interviewmate/backend/internal/ai"
	"github.com/interviewmate/backend/internal/dto"
)

// AssistHandler proxies question generation and answer evaluation to the
// external AI service so the browser never talks to it directly.
type AssistHandler struct {
	ai *ai.Client
}

func NewAssistHandler(client *ai.Client) *AssistHandler {
	return &AssistHandler{ai: client}
}

func (h *AssistHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.JobTitle == "" || req.Topics == "" || req.ExperienceYears == nil || *req.ExperienceYears < 0 {
		return badRequest(c, "All fields are required")
	}

	questions, err := h.ai.GenerateQuestions(c.UserContext(), req.JobTitle, req.Topics, *req.ExperienceYears)
	if err != nil {
		slog.Error("question generation failed", "error", err, "action", "assist_questions")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Question service is unavailable. Please try again.",
		})
	}

	return c.JSON(dto.GenerateQuestionsResponse{Questions: questions})
}

func (h *AssistHandler) EvaluateAnswers(c *fiber.Ctx) error {
	var req dto.EvaluateAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Questions) == 0 || len(req.Questions) != len(req.Answers) {
		return badRequest(c, "Questions and answers must be non-empty and of equal length")
	}

	eval, err := h.ai.EvaluateAnswers(c.UserContext(), req.Questions, req.Answers)
	if err != nil {
		slog.Error("answer evaluation failed", "error", err, "action", "assist_evaluations")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Evaluation service is unavailable. Please try again.",
		})
	}

	return c.JSON(eval)
}
