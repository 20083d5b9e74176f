package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cinehub/pkg/messages"
	"cinehub/review"
)

func (s *Server) handleListReviews(c echo.Context) error {
	// The movie param is an optional filter; zero means all reviews.
	var movieID int64
	if raw := c.QueryParam("movie"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return respondErrors(c, messages.KeyValidationError, 0, map[string][]string{
				"movie": {"must be a positive integer"},
			})
		}
		movieID = id
	}

	reviews, err := s.ReviewService.ListReviews(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return respond(c, messages.KeySuccess, reviews)
}

func (s *Server) handleAddReview(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.ReviewService.AddReview(c.Request().Context(), req.ToReview(u.ID))
	if err != nil {
		return err
	}

	return respondStatus(c, messages.KeySuccess, http.StatusCreated, created)
}

func (s *Server) handleUpdateReview(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := reviewID(c)
	if err != nil {
		return err
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := s.ReviewService.UpdateReview(c.Request().Context(), id, u.ID, req.Rating, req.Text)
	if err != nil {
		return err
	}
	return respond(c, messages.KeySuccess, updated)
}

func (s *Server) handleDeleteReview(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := reviewID(c)
	if err != nil {
		return err
	}

	if err := s.ReviewService.DeleteReview(c.Request().Context(), id, u.ID); err != nil {
		return err
	}
	return respond(c, messages.KeySuccess, nil)
}

func reviewID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, review.ErrNotFound
	}
	return id, nil
}
