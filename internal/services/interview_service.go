package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/interviewmate/backend/internal/dto"
	"github.com/interviewmate/backend/internal/models"
	"github.com/interviewmate/backend/internal/scoring"
	"gorm.io/gorm"
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrNothingToUpdate   = errors.New("no fields to update")
)

type InterviewService struct {
	db *gorm.DB
}

func NewInterviewService(db *gorm.DB) *InterviewService {
	return &InterviewService{db: db}
}

// Create persists a new interview for ownerID with an empty attempt log. The
// generated question list from the AI service may be saved alongside.
func (s *InterviewService) Create(ownerID uuid.UUID, req *dto.CreateInterviewRequest) (*models.Interview, error) {
	if req.JobTitle == "" || req.Topics == "" || req.ExperienceYears == nil {
		return nil, ErrMissingFields
	}
	if *req.ExperienceYears < 0 {
		return nil, ErrMissingFields
	}

	if err := s.ownerExists(ownerID); err != nil {
		return nil, err
	}

	questions := req.Questions
	if questions == nil {
		questions = []models.Question{}
	}

	interview := models.Interview{
		ID:              uuid.New(),
		JobTitle:        req.JobTitle,
		Topics:          req.Topics,
		ExperienceYears: *req.ExperienceYears,
		OwnerID:         ownerID,
		Questions:       questions,
		Attempts:        []models.Attempt{},
	}

	if err := s.db.Create(&interview).Error; err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	return &interview, nil
}

// ListForOwner returns all interviews owned by ownerID, newest first.
// Ownership is a query on owner_id, not a list kept on the user.
func (s *InterviewService) ListForOwner(ownerID uuid.UUID) ([]models.Interview, error) {
	if err := s.ownerExists(ownerID); err != nil {
		return nil, err
	}
	return s.interviewsOf(ownerID)
}

// Get fetches one interview with its attempts and owner summary.
func (s *InterviewService) Get(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := s.db.Preload("Owner").First(&interview, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch interview: %w", err)
	}
	return &interview, nil
}

// UpdateMetadata overwrites only the fields present and non-empty in the
// partial request. Attempts are never touched here.
func (s *InterviewService) UpdateMetadata(id uuid.UUID, req *dto.UpdateInterviewRequest) (*models.Interview, error) {
	updates := map[string]interface{}{}
	if req.JobTitle != nil && *req.JobTitle != "" {
		updates["job_title"] = *req.JobTitle
	}
	if req.Topics != nil && *req.Topics != "" {
		updates["topics"] = *req.Topics
	}
	if req.ExperienceYears != nil && *req.ExperienceYears >= 0 {
		updates["experience_years"] = *req.ExperienceYears
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	result := s.db.Model(&models.Interview{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update interview: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrInterviewNotFound
	}

	var interview models.Interview
	if err := s.db.First(&interview, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload interview: %w", err)
	}
	return &interview, nil
}

// Delete removes the interview and returns the owner's remaining interviews.
// A missing interview row is tolerated; a missing owner is not.
func (s *InterviewService) Delete(ownerID, interviewID uuid.UUID) ([]models.Interview, error) {
	if err := s.ownerExists(ownerID); err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ? AND owner_id = ?", interviewID, ownerID).
		Delete(&models.Interview{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete interview: %w", err)
	}

	return s.interviewsOf(ownerID)
}

// AddAttempt appends one attempt to the interview's attempt log. The append is
// a single document-level jsonb concatenation so concurrent appends to the
// same interview cannot lose each other. Returns the stored attempt and its
// position in the log.
func (s *InterviewService) AddAttempt(id uuid.UUID, attempt models.Attempt) (*models.Attempt, int, error) {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	elem, err := json.Marshal([]models.Attempt{attempt})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode attempt: %w", err)
	}

	var length int
	result := s.db.Raw(
		`UPDATE interviews SET attempts = attempts || ?::jsonb, updated_at = ? WHERE id = ? AND deleted_at IS NULL RETURNING jsonb_array_length(attempts)`,
		string(elem), time.Now().UTC(), id,
	).Scan(&length)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to append attempt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, 0, ErrInterviewNotFound
	}

	return &attempt, length - 1, nil
}

// TrendForJob builds the cross-attempt score series for one of the owner's
// job titles.
func (s *InterviewService) TrendForJob(ownerID uuid.UUID, jobTitle string) (*scoring.Trend, error) {
	interviews, err := s.ListForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return scoring.TrendSeries(interviews, jobTitle)
}

func (s *InterviewService) ownerExists(ownerID uuid.UUID) error {
	var user models.User
	if err := s.db.Select("id").First(&user, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up owner: %w", err)
	}
	return nil
}

func (s *InterviewService) interviewsOf(ownerID uuid.UUID) ([]models.Interview, error) {
	var interviews []models.Interview
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch interviews: %w", err)
	}
	return interviews, nil
}
