package grading

// Score classifies every reference answer against the selected option texts.
// Selection is an exact, case-sensitive text match. AllCorrect holds when the
// selection equals the set of correct answers; with no reference answers it
// is vacuously true.
func Score(answers []ReferenceAnswer, selected []string) ChoiceResult {
	picked := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		picked[s] = struct{}{}
	}

	res := ChoiceResult{
		Outcomes:   make([]ChoiceOutcome, 0, len(answers)),
		AllCorrect: true,
		Mode:       ModeOf(answers),
	}
	for _, a := range answers {
		_, sel := picked[a.Text]
		out := ChoiceOutcome{
			Text:              a.Text,
			IsCorrect:         a.IsCorrect,
			UserSelected:      sel,
			PresentationClass: classify(a.IsCorrect, sel),
		}
		if a.IsCorrect != sel {
			res.AllCorrect = false
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	return res
}

// ModeOf derives radio or checkbox semantics from the answer key: exactly one
// correct answer means single-answer.
func ModeOf(answers []ReferenceAnswer) AnswerMode {
	if CorrectCount(answers) == 1 {
		return SingleAnswer
	}
	return MultipleAnswer
}

func CorrectCount(answers []ReferenceAnswer) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

func classify(isCorrect, selected bool) PresentationClass {
	switch {
	case isCorrect && selected:
		return CorrectSelected
	case selected:
		return IncorrectSelected
	default:
		return Neutral
	}
}
