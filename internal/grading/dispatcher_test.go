package grading

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade_Phrases(t *testing.T) {
	q := ReferenceQuestion{Type: Phrases, Content: "The quick, brown fox!"}
	r := UserResponse{RawTokens: []string{"the", "quick", "red", "fox"}}

	res, err := Grade(q, r)

	require.NoError(t, err)
	assert.Equal(t, Phrases, res.Type)
	assert.Nil(t, res.Words)
	assert.Nil(t, res.Choice)
	assert.Equal(t, AlignmentResult{
		{Token: "the"}, {Token: "quick"}, {Token: "red", ShouldHighlight: true}, {Token: "fox"},
	}, res.Alignment)
	assert.Equal(t, Summary{Correct: 3, Total: 4, Passed: false}, res.Summary)
}

func TestGrade_PhrasesExactMatchPasses(t *testing.T) {
	q := ReferenceQuestion{Type: Phrases, Content: "Hello world"}
	r := UserResponse{RawTokens: []string{"hello", "World."}}

	res, err := Grade(q, r)

	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "World"}, res.Alignment.Tokens())
	assert.Zero(t, res.Alignment.Highlighted())
	assert.Equal(t, Summary{Correct: 2, Total: 2, Passed: true}, res.Summary)
}

func TestGrade_PhrasesPrefixDoesNotPass(t *testing.T) {
	res, err := Grade(ReferenceQuestion{Type: Phrases, Content: "a b c"}, UserResponse{RawTokens: []string{"a", "b"}})

	require.NoError(t, err)
	assert.Zero(t, res.Alignment.Highlighted())
	assert.Equal(t, Summary{Correct: 2, Total: 3, Passed: false}, res.Summary)
}

func TestGrade_EmptyPhraseResponse(t *testing.T) {
	res, err := Grade(ReferenceQuestion{Type: Phrases, Content: "some words"}, UserResponse{})

	require.NoError(t, err)
	assert.Empty(t, res.Alignment)
	assert.Equal(t, Summary{Correct: 0, Total: 2, Passed: false}, res.Summary)
}

func TestGrade_WordTypesUseSetMembership(t *testing.T) {
	for _, qt := range []QuestionType{Words, ComplexWords} {
		t.Run(string(qt), func(t *testing.T) {
			q := ReferenceQuestion{Type: qt, Content: "cat dog bird"}
			r := UserResponse{RawTokens: []string{"Dog", "cat!"}}

			res, err := Grade(q, r)

			require.NoError(t, err)
			assert.Nil(t, res.Alignment)
			assert.Equal(t, WordMatchResult{{"cat", true}, {"dog", true}, {"bird", false}}, res.Words)
			assert.Equal(t, Summary{Correct: 2, Total: 3, Passed: false}, res.Summary)
		})
	}
}

func TestGrade_MultipleChoice(t *testing.T) {
	q := ReferenceQuestion{Type: MultipleChoice, ReferenceAnswers: capitals("Paris")}

	res, err := Grade(q, UserResponse{SelectedAnswers: []string{"Paris"}})

	require.NoError(t, err)
	require.NotNil(t, res.Choice)
	assert.True(t, res.Choice.AllCorrect)
	assert.Equal(t, SingleAnswer, res.Choice.Mode)
	assert.Equal(t, Summary{Correct: 1, Total: 1, Passed: true}, res.Summary)
}

func TestGrade_MultipleChoiceMultiAnswerPartial(t *testing.T) {
	q := ReferenceQuestion{Type: MultipleChoice, ReferenceAnswers: capitals("Paris", "Berlin")}

	res, err := Grade(q, UserResponse{SelectedAnswers: []string{"Berlin"}})

	require.NoError(t, err)
	assert.False(t, res.Choice.AllCorrect)
	assert.Equal(t, Summary{Correct: 1, Total: 2, Passed: false}, res.Summary)
}

func TestGrade_Errors(t *testing.T) {
	tests := []struct {
		name     string
		question ReferenceQuestion
		response UserResponse
		err      error
	}{
		{
			name:     "unknown type",
			question: ReferenceQuestion{Type: "essay", Content: "x"},
			err:      ErrUnknownQuestionType,
		},
		{
			name:     "empty type",
			question: ReferenceQuestion{},
			err:      ErrUnknownQuestionType,
		},
		{
			name:     "no reference answers",
			question: ReferenceQuestion{Type: MultipleChoice},
			err:      ErrInvalidChoiceConfig,
		},
		{
			name:     "no correct answer",
			question: ReferenceQuestion{Type: MultipleChoice, ReferenceAnswers: capitals()},
			response: UserResponse{SelectedAnswers: []string{"Paris"}},
			err:      ErrInvalidChoiceConfig,
		},
		{
			name:     "two selections on single-answer question",
			question: ReferenceQuestion{Type: MultipleChoice, ReferenceAnswers: capitals("Paris")},
			response: UserResponse{SelectedAnswers: []string{"Paris", "London"}},
			err:      ErrTooManySelections,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grade(tt.question, tt.response)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestGrade_Concurrent(t *testing.T) {
	q := ReferenceQuestion{Type: Phrases, Content: "the quick brown fox jumps over the lazy dog"}
	r := UserResponse{RawTokens: []string{"the", "quick", "brown", "cat", "jumps", "over", "lazy", "dog"}}
	want, err := Grade(q, r)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Grade(q, r)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestParseQuestionType(t *testing.T) {
	for _, qt := range QuestionTypes {
		got, err := ParseQuestionType(string(qt))
		require.NoError(t, err)
		assert.Equal(t, qt, got)
	}

	_, err := ParseQuestionType("true_false")
	assert.ErrorIs(t, err, ErrUnknownQuestionType)
}
