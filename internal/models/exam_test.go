package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExam_QuestionsEditable(t *testing.T) {
	startsAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	exam := &Exam{StartsAt: startsAt}

	tests := []struct {
		name     string
		now      time.Time
		editable bool
	}{
		{"a day before", startsAt.Add(-24 * time.Hour), true},
		{"just before the cutoff", startsAt.Add(-QuestionEditCutoff - time.Nanosecond), true},
		{"exactly at the cutoff", startsAt.Add(-QuestionEditCutoff), false},
		{"29 minutes before start", startsAt.Add(-29 * time.Minute), false},
		{"after start", startsAt.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.editable, exam.QuestionsEditable(tt.now))
		})
	}
}

func TestExam_QuestionsEditableAcrossZones(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	exam := &Exam{StartsAt: time.Date(2025, 6, 1, 12, 0, 0, 0, berlin)}

	assert.True(t, exam.QuestionsEditable(time.Date(2025, 6, 1, 9, 29, 0, 0, time.UTC)))
	assert.False(t, exam.QuestionsEditable(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)))
}
