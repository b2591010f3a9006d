package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchWords(t *testing.T) {
	tests := []struct {
		name      string
		reference []string
		candidate []string
		expected  WordMatchResult
	}{
		{
			name:      "order independent",
			reference: []string{"cat", "dog", "bird"},
			candidate: []string{"dog", "cat"},
			expected:  WordMatchResult{{"cat", true}, {"dog", true}, {"bird", false}},
		},
		{
			name:      "case insensitive and reference case kept",
			reference: []string{"Élan", "Vital"},
			candidate: []string{"élan", "VITAL"},
			expected:  WordMatchResult{{"Élan", true}, {"Vital", true}},
		},
		{
			name:      "one candidate satisfies repeated reference words",
			reference: []string{"go", "go"},
			candidate: []string{"go"},
			expected:  WordMatchResult{{"go", true}, {"go", true}},
		},
		{
			name:      "longer candidate is not an error",
			reference: []string{"sun"},
			candidate: []string{"moon", "star", "sun", "sky"},
			expected:  WordMatchResult{{"sun", true}},
		},
		{
			name:      "empty candidate",
			reference: []string{"a", "b"},
			candidate: nil,
			expected:  WordMatchResult{{"a", false}, {"b", false}},
		},
		{
			name:      "empty reference",
			reference: []string{},
			candidate: []string{"a"},
			expected:  WordMatchResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchWords(tt.reference, tt.candidate))
		})
	}
}
