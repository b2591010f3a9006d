package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/grading"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID     uint                 `json:"id" gorm:"primaryKey"`
	ExamID uint                 `json:"exam_id" gorm:"not null;index"`
	Type   grading.QuestionType `json:"type" gorm:"not null;size:32;index"`
	Order  int                  `json:"order" gorm:"default:0"`

	// Content holds the reference text for word and phrase questions.
	Content string `json:"content" gorm:"type:text"`

	// ReferenceAnswers is a []grading.ReferenceAnswer, multiple_choice only.
	ReferenceAnswers datatypes.JSON `json:"reference_answers" gorm:"type:jsonb"`

	CreatedBy string         `json:"created_by" gorm:"size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Exam *Exam `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
}

func (Question) TableName() string {
	return "questions"
}

// Answers decodes the stored reference answers.
func (q *Question) Answers() ([]grading.ReferenceAnswer, error) {
	if len(q.ReferenceAnswers) == 0 {
		return nil, nil
	}
	var answers []grading.ReferenceAnswer
	if err := json.Unmarshal(q.ReferenceAnswers, &answers); err != nil {
		return nil, fmt.Errorf("failed to decode reference answers for question %d: %w", q.ID, err)
	}
	return answers, nil
}

func (q *Question) SetAnswers(answers []grading.ReferenceAnswer) error {
	if len(answers) == 0 {
		q.ReferenceAnswers = nil
		return nil
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode reference answers: %w", err)
	}
	q.ReferenceAnswers = datatypes.JSON(raw)
	return nil
}

// Reference returns the grading view of the question.
func (q *Question) Reference() (grading.ReferenceQuestion, error) {
	answers, err := q.Answers()
	if err != nil {
		return grading.ReferenceQuestion{}, err
	}
	return grading.ReferenceQuestion{
		Type:             q.Type,
		Content:          q.Content,
		ReferenceAnswers: answers,
	}, nil
}
