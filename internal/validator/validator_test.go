package validator

import (
	"strings"
	"testing"

	"github.com/SAP-F-2025/grading-service/internal/grading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionPayload struct {
	Type  string `json:"type" validate:"required,question_type"`
	Title string `json:"title" validate:"omitempty,max=5"`
}

func answers(correct ...bool) []grading.ReferenceAnswer {
	out := make([]grading.ReferenceAnswer, len(correct))
	for i, c := range correct {
		out[i] = grading.ReferenceAnswer{Text: string(rune('A' + i)), IsCorrect: c}
	}
	return out
}

func TestValidator_StructTags(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		payload questionPayload
		field   string
		rule    string
	}{
		{name: "valid phrase", payload: questionPayload{Type: "phrases"}},
		{name: "valid choice", payload: questionPayload{Type: "multiple_choice", Title: "Q1"}},
		{name: "unknown type", payload: questionPayload{Type: "essay"}, field: "type", rule: "question_type"},
		{name: "missing type", payload: questionPayload{}, field: "type", rule: "required"},
		{name: "long title", payload: questionPayload{Type: "words", Title: "capitals"}, field: "title", rule: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.payload)
			if tt.rule == "" {
				assert.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.rule, errs[0].Rule)
		})
	}
}

func TestQuestionValidator_ValidateQuestion(t *testing.T) {
	qv := NewQuestionValidator()
	longContent := strings.Repeat("word ", MaxReferenceWords+1)

	tests := []struct {
		name     string
		question grading.ReferenceQuestion
		rules    []string
	}{
		{
			name:     "valid words",
			question: grading.ReferenceQuestion{Type: grading.Words, Content: "cat dog bird"},
		},
		{
			name:     "valid multi-answer choice",
			question: grading.ReferenceQuestion{Type: grading.MultipleChoice, ReferenceAnswers: answers(true, true, false, false, false)},
		},
		{
			name:     "empty content",
			question: grading.ReferenceQuestion{Type: grading.Phrases, Content: "  "},
			rules:    []string{"required"},
		},
		{
			name:     "content too long",
			question: grading.ReferenceQuestion{Type: grading.Phrases, Content: longContent},
			rules:    []string{"reference_words"},
		},
		{
			name: "answers on a word question",
			question: grading.ReferenceQuestion{
				Type: grading.ComplexWords, Content: "élan", ReferenceAnswers: answers(true, false),
			},
			rules: []string{"excluded"},
		},
		{
			name:     "six answers",
			question: grading.ReferenceQuestion{Type: grading.MultipleChoice, ReferenceAnswers: answers(true, false, false, false, false, false)},
			rules:    []string{"choice_answers"},
		},
		{
			name:     "one answer none correct",
			question: grading.ReferenceQuestion{Type: grading.MultipleChoice, ReferenceAnswers: answers(false)},
			rules:    []string{"choice_answers", "choice_answers"},
		},
		{
			name: "blank and duplicate texts",
			question: grading.ReferenceQuestion{Type: grading.MultipleChoice, ReferenceAnswers: []grading.ReferenceAnswer{
				{Text: "Paris", IsCorrect: true}, {Text: "Paris"}, {Text: " "},
			}},
			rules: []string{"unique", "required"},
		},
		{
			name:     "unknown type",
			question: grading.ReferenceQuestion{Type: "ordering"},
			rules:    []string{"question_type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := qv.ValidateQuestion(tt.question)
			if len(tt.rules) == 0 {
				assert.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			rules := make([]string, len(errs))
			for i, e := range errs {
				rules[i] = e.Rule
			}
			assert.Equal(t, tt.rules, rules)
		})
	}
}

func TestQuestionValidator_ReportsOffendingValue(t *testing.T) {
	err := NewQuestionValidator().ValidateQuestion(grading.ReferenceQuestion{
		Type:    grading.Words,
		Content: strings.Repeat("word ", MaxReferenceWords+1),
	})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "content", errs[0].Field)
	assert.Equal(t, MaxReferenceWords+1, errs[0].Value)
	assert.Equal(t, "must contain at most 60 words", errs[0].Message)
}
