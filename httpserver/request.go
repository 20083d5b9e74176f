package httpserver

import (
	"cinehub/movie"
	"cinehub/review"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

type AddMovieRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	ReleaseYear int     `json:"release_year" validate:"required"`
	PosterURL   string  `json:"poster" validate:"omitempty,url"`
	GenreIDs    []int64 `json:"genre_ids"`
	ActorIDs    []int64 `json:"actor_ids"`
}

func (r AddMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:       r.Title,
		Description: r.Description,
		ReleaseYear: r.ReleaseYear,
		PosterURL:   r.PosterURL,
	}
}

type UpdateMovieRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	ReleaseYear *int     `json:"release_year"`
	PosterURL   *string  `json:"poster" validate:"omitempty,url"`
	GenreIDs    *[]int64 `json:"genre_ids"`
	ActorIDs    *[]int64 `json:"actor_ids"`
}

func (r UpdateMovieRequest) ToParams() movie.UpdateParams {
	return movie.UpdateParams{
		Title:       r.Title,
		Description: r.Description,
		ReleaseYear: r.ReleaseYear,
		PosterURL:   r.PosterURL,
		GenreIDs:    r.GenreIDs,
		ActorIDs:    r.ActorIDs,
	}
}

type AddReviewRequest struct {
	MovieID int64  `json:"movie" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=10"`
	Text    string `json:"text" validate:"required"`
}

func (r AddReviewRequest) ToReview(userID int64) review.Review {
	return review.Review{
		UserID:  userID,
		MovieID: r.MovieID,
		Rating:  r.Rating,
		Text:    r.Text,
	}
}

type UpdateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
	Text   string `json:"text" validate:"required"`
}
