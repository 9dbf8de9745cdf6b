package session

import "math"

// Score converts a correct count into a 0–100 integer score.
// Rounding is half up: 1/3 → 33, 2/3 → 67, 3/5 → 60. This is the
// user-visible scoring rule, applied identically on retries.
func Score(correctCount, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return int(math.Floor(float64(correctCount)/float64(totalQuestions)*100 + 0.5))
}
