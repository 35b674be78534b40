package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/interviewmate/backend/internal/models"
)

// Client talks to the external question-generation and answer-evaluation
// service. Calls are single-shot; a failure surfaces to the caller with no
// retry.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type generateQuestionsRequest struct {
	JobTitle       string  `json:"job_title"`
	Topics         string  `json:"topics"`
	ExperienceYear float64 `json:"experience_year"`
}

type generateQuestionsResponse struct {
	Questions []models.Question `json:"questions"`
}

type evaluateAnswersRequest struct {
	Questions []models.Question `json:"questions"`
	Answers   []string          `json:"answers"`
}

// AnswerEvaluation is the per-question verdict from the evaluation service.
type AnswerEvaluation struct {
	QuestionIndex  int     `json:"question_index"`
	Feedback       string  `json:"feedback"`
	RelevanceScore float64 `json:"relevance_score"`
	GrammarScore   float64 `json:"grammar_score"`
}

// Evaluation is the full result of scoring one set of answers.
type Evaluation struct {
	OverallFeedback string             `json:"overall_feedback"`
	OverallScore    float64            `json:"overall_score"`
	PerAnswer       []AnswerEvaluation `json:"per_answer"`
}

// GenerateQuestions asks the service for interview questions for a role.
func (c *Client) GenerateQuestions(ctx context.Context, jobTitle, topics string, experienceYears float64) ([]models.Question, error) {
	var resp generateQuestionsResponse
	err := c.post(ctx, "/generate_questions", generateQuestionsRequest{
		JobTitle:       jobTitle,
		Topics:         topics,
		ExperienceYear: experienceYears,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// EvaluateAnswers submits question/answer pairs for scoring. Questions and
// answers must be non-empty and of equal length.
func (c *Client) EvaluateAnswers(ctx context.Context, questions []models.Question, answers []string) (*Evaluation, error) {
	if len(questions) == 0 || len(questions) != len(answers) {
		return nil, fmt.Errorf("questions and answers must be non-empty and of equal length")
	}

	var eval Evaluation
	err := c.post(ctx, "/evaluate_answers", evaluateAnswersRequest{
		Questions: questions,
		Answers:   answers,
	}, &eval)
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ai service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ai service returned %d: %s", resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ai service response: %w", err)
	}
	return nil
}
