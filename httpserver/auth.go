package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cinehub/auth"
	"cinehub/pkg/messages"
)

func (s *Server) handleRegister(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return respondStatus(c, messages.KeySuccess, http.StatusCreated, tokenPayload(tokens))
}

func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAccountLocked) {
			return respondErrors(c, messages.KeyUnauthorized, http.StatusTooManyRequests, nil)
		}
		return err
	}

	return respond(c, messages.KeySuccess, tokenPayload(tokens))
}

func (s *Server) handleRefresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return respond(c, messages.KeySuccess, tokenPayload(tokens))
}

// handleProfile returns the stored account of the token subject.
func (s *Server) handleProfile(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	account, err := s.UserService.GetUserByID(c.Request().Context(), u.ID)
	if err != nil {
		return err
	}

	return respond(c, messages.KeySuccess, map[string]interface{}{
		"id":    account.ID,
		"uuid":  account.UUID,
		"name":  account.Name,
		"email": account.Email,
		"role":  account.Role,
	})
}

func tokenPayload(tokens auth.TokenPair) map[string]string {
	return map[string]string{
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
	}
}
