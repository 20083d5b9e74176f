package httpserver

import (
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Development origins: localhost and the private ranges a frontend dev
// server typically binds to.
var devOriginPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^http://localhost:\d+$`),
	regexp.MustCompile(`^http://127\.0\.0\.1:\d+$`),
	regexp.MustCompile(`^http://192\.168\.\d{1,3}\.\d{1,3}:\d+$`),
	regexp.MustCompile(`^http://10\.\d{1,3}\.\d{1,3}\.\d{1,3}:\d+$`),
}

// OriginPolicy decides which browser origins may call the API. In dev
// mode local and private-network origins pass next to the allowlist; in
// production only the exact allowlist does.
type OriginPolicy struct {
	DevMode      bool
	AllowOrigins []string
}

func (p OriginPolicy) Allow(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range p.AllowOrigins {
		if origin == allowed {
			return true
		}
	}
	if !p.DevMode {
		return false
	}
	for _, pattern := range devOriginPatterns {
		if pattern.MatchString(origin) {
			return true
		}
	}
	return false
}

// Middleware wires the policy into echo's CORS handling. The browser
// sends credentials, so the matched origin is echoed back rather than
// wildcarded.
func (p OriginPolicy) Middleware() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return p.Allow(origin), nil
		},
		AllowCredentials: true,
		AllowMethods: []string{
			echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderContentType, echo.HeaderAuthorization,
			"X-CSRFToken", "X-Requested-With", echo.HeaderAccept,
		},
		MaxAge: 86400,
	})
}
