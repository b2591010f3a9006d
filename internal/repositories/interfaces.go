package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/grading"
)

// ErrNotFound is returned by every repository when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository groups the per-entity repositories behind one handle.
type Repository interface {
	Exam() ExamRepository
	Question() QuestionRepository
	GradedResponse() GradedResponseRepository

	// WithTransaction runs fn against repositories bound to a single transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Type   *grading.QuestionType `json:"type"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

type GradedResponseFilters struct {
	ExamID     *uint                 `json:"exam_id"`
	QuestionID *uint                 `json:"question_id"`
	StudentID  *string               `json:"student_id"`
	Type       *grading.QuestionType `json:"type"`
	Passed     *bool                 `json:"passed"`
	DateFrom   *time.Time            `json:"date_from"`
	DateTo     *time.Time            `json:"date_to"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
	SortBy     string                `json:"sort_by"`    // "graded_at", "correct"
	SortOrder  string                `json:"sort_order"` // "asc", "desc"
}

// ===== SHARED STATISTICS STRUCTS =====

type ExamResultStats struct {
	TotalResponses  int     `json:"total_responses"`
	PassedResponses int     `json:"passed_responses"`
	PassRate        float64 `json:"pass_rate"`
	AverageCorrect  float64 `json:"average_correct"`
}
