package httpserver

import (
	"github.com/labstack/echo/v4"

	"cinehub/pkg/messages"
)

func (s *Server) handleListGenres(c echo.Context) error {
	genres, err := s.GenreService.ListGenres(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return respond(c, messages.KeySuccess, genres)
}

func (s *Server) handleListActors(c echo.Context) error {
	actors, err := s.ActorService.ListActors(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return respond(c, messages.KeySuccess, actors)
}
