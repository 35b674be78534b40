package dto

import "github.com/interviewmate/backend/internal/models"

type CreateInterviewRequest struct {
	JobTitle        string            `json:"job_title"`
	Topics          string            `json:"topics"`
	ExperienceYears *float64          `json:"experience_years"`
	Questions       []models.Question `json:"questions"`
}

// UpdateInterviewRequest carries a partial metadata update. Only fields that
// are present and non-empty overwrite the stored values.
type UpdateInterviewRequest struct {
	JobTitle        *string  `json:"job_title"`
	Topics          *string  `json:"topics"`
	ExperienceYears *float64 `json:"experience_years"`
}

type CreateInterviewResponse struct {
	Success   bool             `json:"success"`
	Interview models.Interview `json:"interview"`
}

type InterviewListResponse struct {
	Interviews []models.Interview `json:"interviews"`
}

type DeleteInterviewResponse struct {
	Message    string             `json:"message"`
	Interviews []models.Interview `json:"interviews"`
}

type AddAttemptRequest struct {
	Attempt *models.Attempt `json:"attempt"`
}

type AddAttemptResponse struct {
	Attempt      models.Attempt `json:"attempt"`
	AttemptIndex int            `json:"attempt_index"`
}

type GenerateQuestionsRequest struct {
	JobTitle        string   `json:"job_title"`
	Topics          string   `json:"topics"`
	ExperienceYears *float64 `json:"experience_years"`
}

type GenerateQuestionsResponse struct {
	Questions []models.Question `json:"questions"`
}

type EvaluateAnswersRequest struct {
	Questions []models.Question `json:"questions"`
	Answers   []string          `json:"answers"`
}
