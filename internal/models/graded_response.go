package models

import (
	"time"

	"github.com/SAP-F-2025/grading-service/internal/grading"
	"gorm.io/datatypes"
)

// GradedResponse is a submitted response together with its grading outcome.
// It is written once and never updated.
type GradedResponse struct {
	ID         uint                 `json:"id" gorm:"primaryKey"`
	QuestionID uint                 `json:"question_id" gorm:"not null;index"`
	ExamID     uint                 `json:"exam_id" gorm:"not null;index"`
	StudentID  string               `json:"student_id" gorm:"size:255;index"`
	Type       grading.QuestionType `json:"type" gorm:"not null;size:32"`

	Response datatypes.JSON `json:"response" gorm:"type:jsonb"` // grading.UserResponse
	Result   datatypes.JSON `json:"result" gorm:"type:jsonb"`   // grading.Result

	// Denormalized summary for listing and export
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Passed  bool `json:"passed" gorm:"index"`

	ResponseHash string    `json:"response_hash" gorm:"size:64;index"`
	GradedAt     time.Time `json:"graded_at" gorm:"not null"`

	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}

func (GradedResponse) TableName() string {
	return "graded_responses"
}
