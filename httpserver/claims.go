package httpserver

import (
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"cinehub/errs"
	"cinehub/user"
)

var errBadToken = errs.Errorf(errs.EUNAUTHORIZED, "invalid access token")

// tokenUser is the identity carried by a verified access token.
type tokenUser struct {
	ID    int64
	Email string
	Role  user.Role
}

func (u tokenUser) IsAdmin() bool {
	return u.Role == user.RoleAdmin
}

// currentUser reads the identity the jwt middleware verified. A refresh
// token presented as an access token is rejected here.
func currentUser(c echo.Context) (tokenUser, error) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return tokenUser{}, errBadToken
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return tokenUser{}, errBadToken
	}
	if kind, _ := claims["type"].(string); kind != "access" {
		return tokenUser{}, errBadToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return tokenUser{}, errBadToken
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return tokenUser{
		ID:    int64(id),
		Email: email,
		Role:  user.Role(role),
	}, nil
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := currentUser(c)
		if err != nil {
			return err
		}
		if !u.IsAdmin() {
			return errs.Errorf(errs.EFORBIDDEN, "admin role required")
		}
		return next(c)
	}
}
