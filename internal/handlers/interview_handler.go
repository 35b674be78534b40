package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/interviewmate/backend/internal/dto"
	"github.com/interviewmate/backend/internal/scoring"
	"github.com/interviewmate/backend/internal/services"
)

type InterviewHandler struct {
	interviewService *services.InterviewService
}

func NewInterviewHandler(interviewService *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

// Create handles POST /interviews/create/:userId.
func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	interview, err := h.interviewService.Create(ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return badRequest(c, "All fields are required")
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "User not found")
		}
		slog.Error("create interview failed", "error", err, "action", "interview_create", "user_id", ownerID.String())
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateInterviewResponse{
		Success:   true,
		Interview: *interview,
	})
}

// List handles GET /interviews/:userId.
func (h *InterviewHandler) List(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	interviews, err := h.interviewService.ListForOwner(ownerID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		slog.Error("list interviews failed", "error", err, "action", "interview_list", "user_id", ownerID.String())
		return internalError(c)
	}

	return c.JSON(dto.InterviewListResponse{Interviews: interviews})
}

// Analysis handles GET /interviews/analysis/:id, returning one interview with
// its full attempt history.
func (h *InterviewHandler) Analysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid interview id")
	}

	interview, err := h.interviewService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrInterviewNotFound) {
			return notFound(c, "Interview not found")
		}
		slog.Error("fetch interview failed", "error", err, "action", "interview_analysis")
		return internalError(c)
	}

	return c.JSON(interview)
}

// Update handles PUT /interviews/update/:id with a partial metadata update.
func (h *InterviewHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid interview id")
	}

	var req dto.UpdateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	interview, err := h.interviewService.UpdateMetadata(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNothingToUpdate):
			return badRequest(c, "No fields to update")
		case errors.Is(err, services.ErrInterviewNotFound):
			return notFound(c, "Interview not found")
		}
		slog.Error("update interview failed", "error", err, "action", "interview_update")
		return internalError(c)
	}

	return c.JSON(interview)
}

// Delete handles DELETE /interviews/delete/:userId/:interviewId and returns
// the owner's remaining interviews.
func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	interviewID, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return badRequest(c, "Invalid interview id")
	}

	remaining, err := h.interviewService.Delete(ownerID, interviewID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		slog.Error("delete interview failed", "error", err, "action", "interview_delete", "user_id", ownerID.String())
		return internalError(c)
	}

	return c.JSON(dto.DeleteInterviewResponse{
		Message:    "Interview deleted",
		Interviews: remaining,
	})
}

// AddAttempt handles POST /interviews/addAttempt/:id.
func (h *InterviewHandler) AddAttempt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid interview id")
	}

	var req dto.AddAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Attempt == nil {
		return badRequest(c, "Attempt is required")
	}

	attempt, index, err := h.interviewService.AddAttempt(id, *req.Attempt)
	if err != nil {
		if errors.Is(err, services.ErrInterviewNotFound) {
			return notFound(c, "Interview not found")
		}
		slog.Error("append attempt failed", "error", err, "action", "interview_add_attempt")
		return internalError(c)
	}

	return c.JSON(dto.AddAttemptResponse{Attempt: *attempt, AttemptIndex: index})
}

// Trend handles GET /interviews/trend/:userId?job_title=...
func (h *InterviewHandler) Trend(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	jobTitle := c.Query("job_title")
	if jobTitle == "" {
		return badRequest(c, "job_title query parameter is required")
	}

	trend, err := h.interviewService.TrendForJob(ownerID, jobTitle)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "User not found")
		case errors.Is(err, scoring.ErrNoTrendData):
			return notFound(c, "No scored attempts found for "+jobTitle)
		}
		slog.Error("trend failed", "error", err, "action", "interview_trend", "user_id", ownerID.String())
		return internalError(c)
	}

	return c.JSON(trend)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
