package grading

import "errors"

var (
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrInvalidChoiceConfig = errors.New("invalid multiple choice configuration")
	ErrTooManySelections   = errors.New("more than one answer selected for a single-answer question")
)
