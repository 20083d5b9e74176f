package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cinehub/movie"
	"cinehub/pkg/messages"
)

func (s *Server) handleListMovies(c echo.Context) error {
	params := movie.ListParams{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}
	params.Page, _ = strconv.Atoi(c.QueryParam("page"))
	params.GenreID, _ = strconv.ParseInt(c.QueryParam("genres"), 10, 64)
	params.ReleaseYear, _ = strconv.Atoi(c.QueryParam("release_year"))
	if v := c.QueryParam("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinRating = &f
		}
	}
	if v := c.QueryParam("max_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxRating = &f
		}
	}

	result, err := s.MovieService.ListMovies(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return respond(c, messages.KeySuccess, map[string]interface{}{
		"results":   result.Movies,
		"page":      result.Page,
		"page_size": result.PageSize,
		"total":     result.Total,
	})
}

func (s *Server) handleGetMovie(c echo.Context) error {
	m, err := s.MovieService.GetMovie(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return err
	}
	return respond(c, messages.KeySuccess, m)
}

func (s *Server) handleSearchMovies(c echo.Context) error {
	query := c.QueryParam("q")

	results, err := s.MovieService.SearchMovies(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return respond(c, messages.KeySuccess, map[string]interface{}{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleAddMovie(c echo.Context) error {
	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.MovieService.AddMovie(c.Request().Context(), req.ToMovie(), req.GenreIDs, req.ActorIDs)
	if err != nil {
		return err
	}

	return respondStatus(c, messages.KeySuccess, http.StatusCreated, created)
}

func (s *Server) handleUpdateMovie(c echo.Context) error {
	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := s.MovieService.UpdateMovie(c.Request().Context(), c.Param("identifier"), req.ToParams())
	if err != nil {
		return err
	}

	return respond(c, messages.KeySuccess, updated)
}

func (s *Server) handleDeleteMovie(c echo.Context) error {
	if err := s.MovieService.DeleteMovie(c.Request().Context(), c.Param("identifier")); err != nil {
		return err
	}
	return respond(c, messages.KeySuccess, nil)
}

// handleImportMovies ingests a CSV upload; rows that fail are reported
// in the response while the rest are committed.
func (s *Server) handleImportMovies(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondErrors(c, messages.KeyValidationError, 0, map[string][]string{
			"file": {"required"},
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := s.MovieService.ImportCSV(c.Request().Context(), f)
	if err != nil {
		return err
	}

	return respond(c, messages.KeySuccess, map[string]interface{}{
		"imported": result.Imported,
		"errors":   result.Errors,
	})
}
