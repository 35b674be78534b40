package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewmate/backend/internal/dto"
	"github.com/interviewmate/backend/internal/models"
	"github.com/interviewmate/backend/internal/scoring"
)

func floatPtr(v float64) *float64 { return &v }

func stringPtr(s string) *string { return &s }

func ownerIDRow(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id.String())
}

func interviewColumns() []string {
	return []string{
		"id", "job_title", "topics", "experience_years", "owner_id",
		"questions", "attempts", "created_at", "updated_at", "deleted_at",
	}
}

func interviewRow(id, ownerID uuid.UUID, jobTitle string, attempts string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(interviewColumns()).
		AddRow(id.String(), jobTitle, "REST, SQL", 2.0, ownerID.String(),
			[]byte(`[]`), []byte(attempts), now, now, nil)
}

func TestInterviewService_Create_Validation(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)
	ownerID := uuid.New()

	tests := []struct {
		name string
		req  dto.CreateInterviewRequest
	}{
		{name: "missing job title", req: dto.CreateInterviewRequest{Topics: "SQL", ExperienceYears: floatPtr(2)}},
		{name: "missing topics", req: dto.CreateInterviewRequest{JobTitle: "Backend Engineer", ExperienceYears: floatPtr(2)}},
		{name: "missing experience", req: dto.CreateInterviewRequest{JobTitle: "Backend Engineer", Topics: "SQL"}},
		{name: "negative experience", req: dto.CreateInterviewRequest{JobTitle: "Backend Engineer", Topics: "SQL", ExperienceYears: floatPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ownerID, &tt.req)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_Create_OwnerNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Create(uuid.New(), &dto.CreateInterviewRequest{
		JobTitle: "Backend Engineer", Topics: "REST, SQL", ExperienceYears: floatPtr(2),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_Create_Success(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(ownerIDRow(ownerID))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "interviews"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	interview, err := svc.Create(ownerID, &dto.CreateInterviewRequest{
		JobTitle:        "Backend Engineer",
		Topics:          "REST, SQL",
		ExperienceYears: floatPtr(2),
		Questions:       []models.Question{{Question: "What is a goroutine?"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", interview.JobTitle)
	assert.Equal(t, ownerID, interview.OwnerID)
	assert.Empty(t, interview.Attempts)
	assert.Len(t, interview.Questions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_ListForOwner_UserNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.ListForOwner(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_UpdateMetadata_NothingToUpdate(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	tests := []struct {
		name string
		req  dto.UpdateInterviewRequest
	}{
		{name: "empty partial", req: dto.UpdateInterviewRequest{}},
		{name: "only empty strings", req: dto.UpdateInterviewRequest{JobTitle: stringPtr(""), Topics: stringPtr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateMetadata(uuid.New(), &tt.req)
			assert.ErrorIs(t, err, ErrNothingToUpdate)
		})
	}

	// The store is never touched on an empty update.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_UpdateMetadata_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "interviews" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := svc.UpdateMetadata(uuid.New(), &dto.UpdateInterviewRequest{JobTitle: stringPtr("SRE")})
	assert.ErrorIs(t, err, ErrInterviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_UpdateMetadata_Success(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)
	id := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "interviews" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "interviews"`).
		WillReturnRows(interviewRow(id, ownerID, "SRE", `[]`))

	interview, err := svc.UpdateMetadata(id, &dto.UpdateInterviewRequest{JobTitle: stringPtr("SRE")})
	require.NoError(t, err)
	assert.Equal(t, "SRE", interview.JobTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_Delete_OwnerNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Delete(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_Delete_ReturnsRemaining(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(ownerIDRow(ownerID))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "interviews" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "interviews"`).
		WillReturnRows(sqlmock.NewRows(interviewColumns()))

	remaining, err := svc.Delete(ownerID, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_Delete_ToleratesMissingInterview(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(ownerIDRow(ownerID))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "interviews" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "interviews"`).
		WillReturnRows(sqlmock.NewRows(interviewColumns()))

	_, err := svc.Delete(ownerID, uuid.New())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_AddAttempt_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	mock.ExpectQuery(`UPDATE interviews SET attempts`).
		WillReturnRows(sqlmock.NewRows([]string{"jsonb_array_length"}))

	_, _, err := svc.AddAttempt(uuid.New(), models.Attempt{OverallFeedback: "solid"})
	assert.ErrorIs(t, err, ErrInterviewNotFound)

	// Nothing beyond the single conditional append statement may run.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_AddAttempt_Success(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	mock.ExpectQuery(`UPDATE interviews SET attempts`).
		WillReturnRows(sqlmock.NewRows([]string{"jsonb_array_length"}).AddRow(3))

	attempt, index, err := svc.AddAttempt(uuid.New(), models.Attempt{
		OverallFeedback: "solid",
		OverallScore:    floatPtr(7),
		PerAnswer:       []models.AnswerRecord{{Question: "Q1", RelevanceScore: 7, GrammarScore: 7}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, index)
	assert.False(t, attempt.CreatedAt.IsZero(), "append must assign a timestamp")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_AddAttempt_KeepsCallerTimestamp(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)

	at := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE interviews SET attempts`).
		WillReturnRows(sqlmock.NewRows([]string{"jsonb_array_length"}).AddRow(1))

	attempt, index, err := svc.AddAttempt(uuid.New(), models.Attempt{CreatedAt: at})
	require.NoError(t, err)

	assert.Equal(t, 0, index)
	assert.Equal(t, at, attempt.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_TrendForJob(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)
	ownerID := uuid.New()

	attempts := `[{"overall_feedback":"ok","overall_score":6,"per_answer":[],"created_at":"2025-01-01T00:00:00Z"},` +
		`{"overall_feedback":"better","overall_score":8,"per_answer":[],"created_at":"2025-02-01T00:00:00Z"}]`

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(ownerIDRow(ownerID))
	mock.ExpectQuery(`SELECT \* FROM "interviews"`).
		WillReturnRows(interviewRow(uuid.New(), ownerID, "Backend Engineer", attempts))

	trend, err := svc.TrendForJob(ownerID, "Backend Engineer")
	require.NoError(t, err)

	require.Len(t, trend.Points, 2)
	assert.Equal(t, "1 Jan", trend.Points[0].Label)
	assert.Equal(t, 7.0, trend.Average)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewService_TrendForJob_NoData(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewInterviewService(db)
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(ownerIDRow(ownerID))
	mock.ExpectQuery(`SELECT \* FROM "interviews"`).
		WillReturnRows(sqlmock.NewRows(interviewColumns()))

	_, err := svc.TrendForJob(ownerID, "Backend Engineer")
	assert.ErrorIs(t, err, scoring.ErrNoTrendData)
	assert.NoError(t, mock.ExpectationsWereMet())
}
