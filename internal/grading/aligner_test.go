package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tok(s string, highlight bool) AlignedToken {
	return AlignedToken{Token: s, ShouldHighlight: highlight}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name      string
		reference []string
		candidate []string
		expected  AlignmentResult
	}{
		{
			name:      "substitution in the middle",
			reference: []string{"the", "quick", "brown", "fox"},
			candidate: []string{"the", "quick", "red", "fox"},
			expected:  AlignmentResult{tok("the", false), tok("quick", false), tok("red", true), tok("fox", false)},
		},
		{
			name:      "extra candidate word",
			reference: []string{"a", "b", "c"},
			candidate: []string{"a", "x", "b", "c"},
			expected:  AlignmentResult{tok("a", false), tok("x", true), tok("b", false), tok("c", false)},
		},
		{
			name:      "missing reference word emits nothing",
			reference: []string{"a", "b", "c"},
			candidate: []string{"a", "c"},
			expected:  AlignmentResult{tok("a", false), tok("c", false)},
		},
		{
			name:      "case is ignored for comparison but preserved in output",
			reference: []string{"The", "QUICK"},
			candidate: []string{"the", "Quick"},
			expected:  AlignmentResult{tok("the", false), tok("Quick", false)},
		},
		{
			name:      "swapped words prefer diagonal on ties",
			reference: []string{"a", "b"},
			candidate: []string{"b", "a"},
			expected:  AlignmentResult{tok("b", true), tok("a", true)},
		},
		{
			name:      "candidate longer than empty reference",
			reference: []string{},
			candidate: []string{"x", "y"},
			expected:  AlignmentResult{tok("x", true), tok("y", true)},
		},
		{
			name:      "both empty",
			reference: []string{},
			candidate: []string{},
			expected:  AlignmentResult{},
		},
		{
			name:      "empty candidate",
			reference: []string{"a"},
			candidate: []string{},
			expected:  AlignmentResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.reference, tt.candidate)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAlign_ReconstructsCandidate(t *testing.T) {
	references := [][]string{
		{},
		{"one"},
		{"the", "cat", "sat", "on", "the", "mat"},
		{"x", "y", "z"},
	}
	candidates := [][]string{
		{},
		{"One"},
		{"the", "Cat", "sat", "the", "mat", "mat"},
		{"a", "b"},
		{"on", "the", "mat", "the", "cat", "sat"},
	}

	for _, r := range references {
		for _, c := range candidates {
			got := Align(r, c)
			assert.Len(t, got, len(c))
			assert.Equal(t, c, got.Tokens(), "reference %v", r)
		}
	}
}

func TestAlign_IdenticalSequences(t *testing.T) {
	x := []string{"she", "sells", "sea", "shells", "by", "the", "sea", "shore"}

	got := Align(x, x)

	assert.Len(t, got, len(x))
	assert.Zero(t, got.Highlighted())
}

func TestAlign_DisjointSequences(t *testing.T) {
	got := Align([]string{"alpha", "beta"}, []string{"gamma", "delta", "epsilon"})

	assert.Equal(t, 3, got.Highlighted())
	for _, tk := range got {
		assert.True(t, tk.ShouldHighlight, tk.Token)
	}
}

func TestAlign_Deterministic(t *testing.T) {
	ref := []string{"a", "b", "c", "d", "e"}
	cand := []string{"b", "a", "d", "x", "e", "e"}

	first := Align(ref, cand)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Align(ref, cand))
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance([]string{"a", "b"}, []string{"A", "B"}))
	assert.Equal(t, 1, Distance([]string{"a", "b", "c"}, []string{"a", "c"}))
	assert.Equal(t, 1, Distance([]string{"the", "quick", "brown", "fox"}, []string{"the", "quick", "red", "fox"}))
	assert.Equal(t, 2, Distance([]string{}, []string{"x", "y"}))
	assert.Equal(t, 3, Distance([]string{"x", "y", "z"}, nil))
}
