package grading

// Align computes a word-level Levenshtein alignment of candidate against
// reference and reports, for every candidate token, whether it should be
// highlighted as a mismatch. The result always has len(candidate) entries
// and reproduces candidate verbatim when the flags are dropped.
//
// Ties between equal-cost predecessors are broken diagonal, then left
// (candidate insertion), then up (reference deletion).
func Align(reference, candidate []string) AlignmentResult {
	ref := foldAll(reference)
	cand := foldAll(candidate)
	dp := costTable(ref, cand)

	out := make(AlignmentResult, 0, len(candidate))
	i, j := len(ref), len(cand)
	for i > 0 || j > 0 {
		if i > 0 && j > 0 && ref[i-1] == cand[j-1] {
			out = append(out, AlignedToken{Token: candidate[j-1]})
			i--
			j--
			continue
		}

		switch nextStep(dp, i, j) {
		case stepDiagonal:
			out = append(out, AlignedToken{Token: candidate[j-1], ShouldHighlight: true})
			i--
			j--
		case stepLeft:
			out = append(out, AlignedToken{Token: candidate[j-1], ShouldHighlight: true})
			j--
		case stepUp:
			i--
		}
	}

	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// Distance returns the word-level edit distance between reference and
// candidate using the same case-insensitive comparison as Align.
func Distance(reference, candidate []string) int {
	dp := costTable(foldAll(reference), foldAll(candidate))
	return dp[len(reference)][len(candidate)]
}

type step int

const (
	stepDiagonal step = iota
	stepLeft
	stepUp
)

func costTable(ref, cand []string) [][]int {
	n, m := len(ref), len(cand)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		dp[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ref[i-1] == cand[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = 1 + min(dp[i-1][j-1], dp[i][j-1], dp[i-1][j])
		}
	}
	return dp
}

// nextStep picks the cheapest predecessor of (i, j). At least one of i, j is
// positive.
func nextStep(dp [][]int, i, j int) step {
	best, cost := stepUp, -1
	consider := func(s step, c int) {
		if cost < 0 || c < cost {
			best, cost = s, c
		}
	}
	if i > 0 && j > 0 {
		consider(stepDiagonal, dp[i-1][j-1])
	}
	if j > 0 {
		consider(stepLeft, dp[i][j-1])
	}
	if i > 0 {
		consider(stepUp, dp[i-1][j])
	}
	return best
}
