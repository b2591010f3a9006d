package models

import (
	"time"

	"gorm.io/gorm"
)

// QuestionEditCutoff is how long before an exam starts its questions freeze.
const QuestionEditCutoff = 30 * time.Minute

type Exam struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string   `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null;index" validate:"required"`

	// Metadata
	CreatedBy string         `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:ExamID"`

	// Computed fields (not stored)
	QuestionsCount int `json:"questions_count" gorm:"-"`
}

func (Exam) TableName() string {
	return "exams"
}

// QuestionsEditable reports whether the exam's content may still change at now.
func (e *Exam) QuestionsEditable(now time.Time) bool {
	return now.Before(e.StartsAt.Add(-QuestionEditCutoff))
}
