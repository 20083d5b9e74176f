package review

import "math"

// Summary is the derived rating aggregate for a movie. Average is nil
// when no ratings exist; zero would be indistinguishable from data.
type Summary struct {
	Average *float64 `json:"average_rating"`
	Count   int      `json:"rating_count"`
}

// Summarize computes the average of per-user ratings rounded to one
// decimal place using round-half-to-even. It is recomputed on every
// read and never stored, so it always reflects the live review set.
func Summarize(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{Count: 0}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.RoundToEven(float64(sum)/float64(len(ratings))*10) / 10

	return Summary{Average: &avg, Count: len(ratings)}
}
