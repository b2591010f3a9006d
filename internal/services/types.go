package services

import (
	"time"

	"github.com/SAP-F-2025/grading-service/internal/grading"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
)

// ===== GRADING DTOs =====

// GradeRequest grades a response against a question supplied inline.
// The question type is checked by the grader, not here, so an unknown
// type surfaces as an unprocessable question rather than a bad request.
type GradeRequest struct {
	Type             grading.QuestionType      `json:"type" validate:"required"`
	Content          string                    `json:"content" validate:"max=5000"`
	ReferenceAnswers []grading.ReferenceAnswer `json:"reference_answers" validate:"omitempty,max=10"`
	RawTokens        []string                  `json:"raw_tokens" validate:"omitempty,max=500"`
	SelectedAnswers  []string                  `json:"selected_answers" validate:"omitempty,max=10"`
}

func (r *GradeRequest) question() grading.ReferenceQuestion {
	return grading.ReferenceQuestion{
		Type:             r.Type,
		Content:          r.Content,
		ReferenceAnswers: r.ReferenceAnswers,
	}
}

func (r *GradeRequest) response() grading.UserResponse {
	return grading.UserResponse{RawTokens: r.RawTokens, SelectedAnswers: r.SelectedAnswers}
}

// SubmitResponseRequest is a student's response to a stored question.
type SubmitResponseRequest struct {
	RawTokens       []string `json:"raw_tokens" validate:"omitempty,max=500"`
	SelectedAnswers []string `json:"selected_answers" validate:"omitempty,max=10"`
}

func (r *SubmitResponseRequest) response() grading.UserResponse {
	return grading.UserResponse{RawTokens: r.RawTokens, SelectedAnswers: r.SelectedAnswers}
}

type GradeResponse struct {
	GradedResponseID uint           `json:"graded_response_id,omitempty"`
	QuestionID       uint           `json:"question_id,omitempty"`
	Result           grading.Result `json:"result"`
	Cached           bool           `json:"cached"`
	GradedAt         time.Time      `json:"graded_at"`
}

type GradedResponseListResponse struct {
	Responses []*models.GradedResponse `json:"responses"`
	Total     int64                    `json:"total"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

// ===== AUTHORING DTOs =====

type CreateExamRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
}

// UpdateExamRequest changes an exam's details. nil fields are left as they are.
type UpdateExamRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	StartsAt    *time.Time `json:"starts_at"`
}

type CreateQuestionRequest struct {
	Type             grading.QuestionType      `json:"type" validate:"required,question_type"`
	Content          string                    `json:"content"`
	ReferenceAnswers []grading.ReferenceAnswer `json:"reference_answers"`
	Order            *int                      `json:"order" validate:"omitempty,min=0"`
}

// UpdateQuestionRequest changes a question's content. The type is fixed at
// creation; nil fields are left as they are.
type UpdateQuestionRequest struct {
	Content          *string                   `json:"content"`
	ReferenceAnswers []grading.ReferenceAnswer `json:"reference_answers"`
	Order            *int                      `json:"order" validate:"omitempty,min=0"`
}

type ExamResponse struct {
	*models.Exam
	QuestionsEditable bool `json:"questions_editable"`
}

type QuestionListResponse struct {
	Questions []*models.Question `json:"questions"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ExamResultsExport is the workbook produced by ExportExamResults.
type ExamResultsExport struct {
	FileName string
	Data     []byte
	Stats    *repositories.ExamResultStats
}
