package validator

import (
	"fmt"
	"strings"

	apperrors "github.com/SAP-F-2025/grading-service/internal/errors"
	"github.com/SAP-F-2025/grading-service/internal/grading"
)

const (
	MinChoiceAnswers  = 2
	MaxChoiceAnswers  = 5
	MaxReferenceWords = 60
)

// QuestionValidator handles the authoring rules for reference questions
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion checks a question's content against the rules of its type.
// All violations are reported together.
func (v *QuestionValidator) ValidateQuestion(q grading.ReferenceQuestion) error {
	var errs ValidationErrors

	switch q.Type {
	case grading.MultipleChoice:
		errs = append(errs, v.validateChoiceAnswers(q.ReferenceAnswers)...)
	case grading.Words, grading.ComplexWords, grading.Phrases:
		errs = append(errs, v.validateContent(q.Content)...)
		if len(q.ReferenceAnswers) > 0 {
			errs = append(errs, *apperrors.NewValidationErrorWithRule("reference_answers",
				fmt.Sprintf("are only allowed for %s questions", grading.MultipleChoice), "excluded", len(q.ReferenceAnswers)))
		}
	default:
		errs = append(errs, *apperrors.NewValidationErrorWithRule("type",
			"must be a valid question type (words, complex_words, phrases, multiple_choice)", "question_type", string(q.Type)))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *QuestionValidator) validateContent(content string) ValidationErrors {
	n := len(grading.Tokenize(content))
	if n == 0 {
		return ValidationErrors{*apperrors.NewValidationErrorWithRule("content", "is required", "required", content)}
	}
	if n > MaxReferenceWords {
		return ValidationErrors{*apperrors.NewValidationErrorWithRule("content",
			fmt.Sprintf("must contain at most %d words", MaxReferenceWords), "reference_words", n)}
	}
	return nil
}

func (v *QuestionValidator) validateChoiceAnswers(answers []grading.ReferenceAnswer) ValidationErrors {
	var errs ValidationErrors

	if len(answers) < MinChoiceAnswers || len(answers) > MaxChoiceAnswers {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("reference_answers",
			fmt.Sprintf("must have between %d and %d answers", MinChoiceAnswers, MaxChoiceAnswers), "choice_answers", len(answers)))
	}

	if grading.CorrectCount(answers) == 0 {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("reference_answers",
			"must have at least 1 correct answer", "choice_answers", 0))
	}

	seen := make(map[string]bool, len(answers))
	for i, a := range answers {
		field := fmt.Sprintf("reference_answers[%d].text", i)
		if strings.TrimSpace(a.Text) == "" {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field, "is required", "required", a.Text))
			continue
		}
		if seen[a.Text] {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field, "must be unique", "unique", a.Text))
		}
		seen[a.Text] = true
	}

	return errs
}
