package events

import (
	"strconv"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/grading"
	"github.com/google/uuid"
)

// EventType represents the kinds of grading events the service emits
type EventType string

const (
	EventResponseGraded  EventType = "response.graded"
	EventQuestionUpdated EventType = "question.updated"
	EventQuestionDeleted EventType = "question.deleted"
)

const (
	eventSource  = "grading-service"
	eventVersion = "1.0"
)

// GradingEvent is the envelope of every event published by the service
type GradingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ResponseGradedEvent struct {
	GradedResponseID uint                 `json:"graded_response_id"`
	QuestionID       uint                 `json:"question_id"`
	ExamID           uint                 `json:"exam_id"`
	StudentID        string               `json:"student_id"`
	Type             grading.QuestionType `json:"type"`
	Correct          int                  `json:"correct"`
	Total            int                  `json:"total"`
	Passed           bool                 `json:"passed"`
	GradedAt         time.Time            `json:"graded_at"`
}

type QuestionChangedEvent struct {
	QuestionID uint                 `json:"question_id"`
	ExamID     uint                 `json:"exam_id"`
	Type       grading.QuestionType `json:"type"`
	ChangedBy  string               `json:"changed_by"`
}

// PartitionKey groups events of the same question on one partition.
func (e *GradingEvent) PartitionKey() string {
	switch d := e.Data.(type) {
	case ResponseGradedEvent:
		return strconv.FormatUint(uint64(d.QuestionID), 10)
	case QuestionChangedEvent:
		return strconv.FormatUint(uint64(d.QuestionID), 10)
	}
	return e.ID
}

// Event factory functions

func NewResponseGradedEvent(payload ResponseGradedEvent) *GradingEvent {
	return newEvent(EventResponseGraded, payload)
}

func NewQuestionUpdatedEvent(payload QuestionChangedEvent) *GradingEvent {
	return newEvent(EventQuestionUpdated, payload)
}

func NewQuestionDeletedEvent(payload QuestionChangedEvent) *GradingEvent {
	return newEvent(EventQuestionDeleted, payload)
}

func newEvent(t EventType, data interface{}) *GradingEvent {
	return &GradingEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
