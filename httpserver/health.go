package httpserver

import (
	"github.com/labstack/echo/v4"

	"cinehub/pkg/messages"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

func (s *Server) healthCheck(c echo.Context) error {
	return respond(c, messages.KeySuccess, map[string]string{
		"status": "OK",
	})
}
