package grading

// MatchWords marks each reference token as matched when it occurs anywhere
// among the candidate tokens, ignoring case. Order and position are not
// considered and candidate occurrences are not consumed.
func MatchWords(reference, candidate []string) WordMatchResult {
	seen := make(map[string]struct{}, len(candidate))
	for _, c := range candidate {
		seen[foldKey(c)] = struct{}{}
	}

	out := make(WordMatchResult, len(reference))
	for i, r := range reference {
		_, ok := seen[foldKey(r)]
		out[i] = WordMatch{Token: r, Matched: ok}
	}
	return out
}
