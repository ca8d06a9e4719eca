// Package emotion maps sentiment scores to named emotions and classifies
// free text through one generation call.
package emotion

// Neutral is the label used when no range matches and for failed analyses.
const Neutral = "neutral"

// emotionRange binds a label to an inclusive score interval.
type emotionRange struct {
	label string
	min   int
	max   int
}

// ranges is evaluated in order; the first matching interval wins.
var ranges = []emotionRange{
	{"joy", 80, 100},
	{"delight", 60, 79},
	{"anticipation", 40, 59},
	{"shy", 20, 39},
	{"anxious", -39, -20},
	{"sad", -69, -40},
	{"angry", -100, -70},
}

// Determine maps a sentiment score to its emotion label. Scores outside every
// declared range map to Neutral.
func Determine(score int) string {
	for _, r := range ranges {
		if score >= r.min && score <= r.max {
			return r.label
		}
	}
	return Neutral
}
