package session

import "testing"

func TestScoreRoundsHalfUp(t *testing.T) {
	cases := []struct {
		correct int
		total   int
		want    int
	}{
		{3, 5, 60},
		{1, 3, 33},
		{2, 3, 67},
		{3, 4, 75},
		{0, 10, 0},
		{10, 10, 100},
		{1, 8, 13}, // 12.5 rounds up
		{0, 0, 0},  // degenerate, never scored in practice
	}
	for _, tc := range cases {
		if got := Score(tc.correct, tc.total); got != tc.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}
