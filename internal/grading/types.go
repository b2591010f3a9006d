package grading

import "fmt"

type QuestionType string

const (
	Words          QuestionType = "words"
	ComplexWords   QuestionType = "complex_words"
	Phrases        QuestionType = "phrases"
	MultipleChoice QuestionType = "multiple_choice"
)

// QuestionTypes lists every supported question type in display order.
var QuestionTypes = []QuestionType{Words, ComplexWords, Phrases, MultipleChoice}

func (t QuestionType) Valid() bool {
	switch t {
	case Words, ComplexWords, Phrases, MultipleChoice:
		return true
	}
	return false
}

func (t QuestionType) String() string {
	return string(t)
}

// ParseQuestionType converts a stored type tag into a QuestionType.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuestionType, s)
	}
	return t, nil
}

type ReferenceAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// ReferenceQuestion is the authored exam content a response is graded against.
// Content is used by the word and phrase types, ReferenceAnswers only by
// multiple_choice.
type ReferenceQuestion struct {
	Type             QuestionType      `json:"type"`
	Content          string            `json:"content,omitempty"`
	ReferenceAnswers []ReferenceAnswer `json:"reference_answers,omitempty"`
}

// UserResponse is one submitted attempt at a question.
type UserResponse struct {
	RawTokens       []string `json:"raw_tokens,omitempty"`
	SelectedAnswers []string `json:"selected_answers,omitempty"`
}

type AlignedToken struct {
	Token           string `json:"token"`
	ShouldHighlight bool   `json:"should_highlight"`
}

// AlignmentResult has one entry per candidate token, in candidate order.
type AlignmentResult []AlignedToken

// Tokens returns the candidate tokens with the highlight flags stripped.
func (r AlignmentResult) Tokens() []string {
	out := make([]string, len(r))
	for i, t := range r {
		out[i] = t.Token
	}
	return out
}

// Highlighted counts the tokens marked as mismatches.
func (r AlignmentResult) Highlighted() int {
	n := 0
	for _, t := range r {
		if t.ShouldHighlight {
			n++
		}
	}
	return n
}

type WordMatch struct {
	Token   string `json:"token"`
	Matched bool   `json:"matched"`
}

// WordMatchResult has one entry per reference token, in reference order.
type WordMatchResult []WordMatch

func (r WordMatchResult) MatchedCount() int {
	n := 0
	for _, w := range r {
		if w.Matched {
			n++
		}
	}
	return n
}

type PresentationClass string

const (
	CorrectSelected   PresentationClass = "correct-selected"
	IncorrectSelected PresentationClass = "incorrect-selected"
	Neutral           PresentationClass = "neutral"
)

type AnswerMode string

const (
	SingleAnswer   AnswerMode = "single"
	MultipleAnswer AnswerMode = "multiple"
)

type ChoiceOutcome struct {
	Text              string            `json:"text"`
	IsCorrect         bool              `json:"is_correct"`
	UserSelected      bool              `json:"user_selected"`
	PresentationClass PresentationClass `json:"presentation_class"`
}

type ChoiceResult struct {
	Outcomes   []ChoiceOutcome `json:"outcomes"`
	AllCorrect bool            `json:"all_correct"`
	Mode       AnswerMode      `json:"mode"`
}

// Summary is the aggregate shown next to a graded question,
// e.g. "12/15 words correct".
type Summary struct {
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Passed  bool `json:"passed"`
}

// Result is the dispatcher output. Exactly one of Alignment, Words or Choice
// is populated, selected by Type.
type Result struct {
	Type      QuestionType    `json:"type"`
	Alignment AlignmentResult `json:"alignment,omitempty"`
	Words     WordMatchResult `json:"words,omitempty"`
	Choice    *ChoiceResult   `json:"choice,omitempty"`
	Summary   Summary         `json:"summary"`
}
