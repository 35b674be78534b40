package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one generated interview question. Description explains why the
// question is asked.
type Question struct {
	Question    string `json:"question"`
	Description string `json:"description,omitempty"`
}

// AnswerRecord is one question/answer pair inside an attempt, with the
// evaluator's feedback and sub-scores (0-10).
type AnswerRecord struct {
	Question       string  `json:"question"`
	Description    string  `json:"description,omitempty"`
	UserAnswer     string  `json:"user_answer"`
	Feedback       string  `json:"feedback"`
	RelevanceScore float64 `json:"relevance_score"`
	GrammarScore   float64 `json:"grammar_score"`
}

// Attempt is one completed run through an interview's questions. Attempts are
// append-only; OverallScore is the evaluator's holistic judgment and may
// legitimately differ from the recomputed per-answer average.
type Attempt struct {
	OverallFeedback string         `json:"overall_feedback"`
	OverallScore    *float64       `json:"overall_score,omitempty"`
	PerAnswer       []AnswerRecord `json:"per_answer"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Interview is a job-role practice session definition. Attempts live in a
// JSONB column so appending one is a single atomic document-level update.
type Interview struct {
	ID              uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	JobTitle        string                        `gorm:"size:255;not null;index" json:"job_title"`
	Topics          string                        `gorm:"type:text;not null" json:"topics"`
	ExperienceYears float64                       `gorm:"not null" json:"experience_years"`
	OwnerID         uuid.UUID                     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner           *User                         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Questions       datatypes.JSONSlice[Question] `gorm:"type:jsonb" json:"questions"`
	Attempts        datatypes.JSONSlice[Attempt]  `gorm:"type:jsonb" json:"attempts"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
	DeletedAt       gorm.DeletedAt                `gorm:"index" json:"-"`
}
