package emotion

import "testing"

func TestDetermineRanges(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "joy"},
		{85, "joy"},
		{80, "joy"},
		{79, "delight"},
		{60, "delight"},
		{59, "anticipation"},
		{40, "anticipation"},
		{39, "shy"},
		{20, "shy"},
		{19, Neutral},
		{0, Neutral},
		{-19, Neutral},
		{-20, "anxious"},
		{-39, "anxious"},
		{-40, "sad"},
		{-69, "sad"},
		{-70, "angry"},
		{-100, "angry"},
	}
	for _, tc := range cases {
		if got := Determine(tc.score); got != tc.want {
			t.Errorf("Determine(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestDetermineIsTotal(t *testing.T) {
	for score := -100; score <= 100; score++ {
		first := Determine(score)
		if first == "" {
			t.Fatalf("Determine(%d) returned empty label", score)
		}
		if again := Determine(score); again != first {
			t.Fatalf("Determine(%d) not deterministic: %q then %q", score, first, again)
		}
	}
}
