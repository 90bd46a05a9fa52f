package domain

// Mood is the coarse three-state sentiment indicator derived from the
// cumulative keyword counters.
type Mood string

const (
	MoodNeutral  Mood = "neutral"
	MoodPositive Mood = "positive"
	MoodNegative Mood = "negative"
)

// moodThreshold is the net score the counters must exceed before the
// overlay leaves the neutral state.
const moodThreshold = 2

// MoodFromNet maps a net sentiment score (positive minus negative) to a mood.
func MoodFromNet(net int) Mood {
	switch {
	case net > moodThreshold:
		return MoodPositive
	case net < -moodThreshold:
		return MoodNegative
	default:
		return MoodNeutral
	}
}
