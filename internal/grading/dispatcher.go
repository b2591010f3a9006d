package grading

import "fmt"

// Grade routes a response to the grader for the question's type and returns
// the annotated result with its summary filled in.
//
// Word and phrase content is normalized before comparison; multiple choice
// texts are compared verbatim.
func Grade(q ReferenceQuestion, r UserResponse) (Result, error) {
	res := Result{Type: q.Type}

	switch q.Type {
	case MultipleChoice:
		if err := checkChoice(q.ReferenceAnswers, r.SelectedAnswers); err != nil {
			return Result{}, err
		}
		choice := Score(q.ReferenceAnswers, r.SelectedAnswers)
		res.Choice = &choice
		res.Summary = summarizeChoice(choice)

	case Phrases:
		ref := Tokenize(q.Content)
		cand := TokenizeAll(r.RawTokens)
		res.Alignment = Align(ref, cand)
		res.Summary = Summary{
			Correct: len(res.Alignment) - res.Alignment.Highlighted(),
			Total:   len(ref),
			Passed:  Distance(ref, cand) == 0,
		}

	case Words, ComplexWords:
		ref := Tokenize(q.Content)
		res.Words = MatchWords(ref, TokenizeAll(r.RawTokens))
		matched := res.Words.MatchedCount()
		res.Summary = Summary{
			Correct: matched,
			Total:   len(ref),
			Passed:  matched == len(ref),
		}

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownQuestionType, string(q.Type))
	}

	return res, nil
}

func checkChoice(answers []ReferenceAnswer, selected []string) error {
	if len(answers) == 0 {
		return fmt.Errorf("%w: no reference answers", ErrInvalidChoiceConfig)
	}
	if CorrectCount(answers) == 0 {
		return fmt.Errorf("%w: no answer is flagged correct", ErrInvalidChoiceConfig)
	}
	if ModeOf(answers) == SingleAnswer && distinct(selected) > 1 {
		return ErrTooManySelections
	}
	return nil
}

func summarizeChoice(c ChoiceResult) Summary {
	s := Summary{Passed: c.AllCorrect}
	for _, o := range c.Outcomes {
		if !o.IsCorrect {
			continue
		}
		s.Total++
		if o.UserSelected {
			s.Correct++
		}
	}
	return s
}

func distinct(values []string) int {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return len(set)
}
