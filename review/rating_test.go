package review_test

import (
	"testing"

	"cinehub/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []int
		expected float64
		count    int
	}{
		{name: "two ratings", ratings: []int{8, 6}, expected: 7.0, count: 2},
		{name: "rounds repeating third down", ratings: []int{7, 7, 8}, expected: 7.3, count: 3},
		{name: "rounds repeating two-thirds up", ratings: []int{7, 8, 8}, expected: 7.7, count: 3},
		{name: "exact half average kept as is", ratings: []int{8, 9}, expected: 8.5, count: 2},
		{name: "quarter rounds half-to-even", ratings: []int{1, 2, 2, 2}, expected: 1.8, count: 4},
		{name: "single rating", ratings: []int{10}, expected: 10.0, count: 1},
		{name: "all minimum", ratings: []int{1, 1, 1}, expected: 1.0, count: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := review.Summarize(tt.ratings)
			require.NotNil(t, s.Average)
			assert.InDelta(t, tt.expected, *s.Average, 1e-9)
			assert.Equal(t, tt.count, s.Count)
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := review.Summarize(nil)

	assert.Nil(t, s.Average, "no ratings must yield absent average, not zero")
	assert.Equal(t, 0, s.Count)
}

func TestReview_Validate(t *testing.T) {
	valid := review.Review{MovieID: 1, Rating: 7, Text: "solid"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		mutate   func(r *review.Review)
		expected error
	}{
		{name: "rating too low", mutate: func(r *review.Review) { r.Rating = 0 }, expected: review.ErrInvalidRating},
		{name: "rating too high", mutate: func(r *review.Review) { r.Rating = 11 }, expected: review.ErrInvalidRating},
		{name: "blank text", mutate: func(r *review.Review) { r.Text = "  " }, expected: review.ErrInvalidText},
		{name: "missing movie", mutate: func(r *review.Review) { r.MovieID = 0 }, expected: review.ErrInvalidMovie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), tt.expected)
		})
	}
}
