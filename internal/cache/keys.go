package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/SAP-F-2025/grading-service/internal/grading"
)

const gradingResultPrefix = "grading:result"

// GradingResultKey is the cache key of a graded response. version changes
// whenever the question does, so results graded against old content are
// never read back.
func GradingResultKey(questionID uint, version int64, responseHash string) string {
	return fmt.Sprintf("%s:%d:%d:%s", gradingResultPrefix, questionID, version, responseHash)
}

// GradingResultPattern matches every cached result for a question.
func GradingResultPattern(questionID uint) string {
	return fmt.Sprintf("%s:%d:*", gradingResultPrefix, questionID)
}

// ResponseHash fingerprints a response. Selected answers are a set, so their
// order does not change the hash; raw tokens keep their order.
func ResponseHash(r grading.UserResponse) string {
	selected := append([]string(nil), r.SelectedAnswers...)
	sort.Strings(selected)

	canonical := struct {
		RawTokens       []string `json:"r"`
		SelectedAnswers []string `json:"s"`
	}{
		RawTokens:       r.RawTokens,
		SelectedAnswers: selected,
	}
	// Marshalling string slices cannot fail.
	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
