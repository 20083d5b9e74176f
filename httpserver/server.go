package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cinehub/actor"
	"cinehub/auth"
	"cinehub/errs"
	"cinehub/genre"
	"cinehub/movie"
	"cinehub/pkg/config"
	"cinehub/pkg/messages"
	"cinehub/pkg/sentry"
	"cinehub/review"
	"cinehub/user"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	Origins OriginPolicy

	MovieService  movie.Service
	GenreService  genre.Service
	ActorService  actor.Service
	ReviewService review.Service
	UserService   user.Service
	AuthService   auth.Service

	reportInternal bool
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router: echo.New(),
		Addr:   ":" + strconv.Itoa(cfg.Port),
		Origins: OriginPolicy{
			DevMode:      cfg.IsLocal(),
			AllowOrigins: cfg.Origins(),
		},
		reportInternal: !cfg.IsLocal(),
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")

	// PUBLIC
	public := api.Group("")
	s.RegisterPublicRoutes(public)

	// AUTHENTICATED
	authed := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(cfg.Auth.JWTSecret),
		SigningMethod: "HS256",
	}))
	s.RegisterAuthenticatedRoutes(authed)

	// ADMIN
	admin := authed.Group("", requireAdmin)
	s.RegisterAdminRoutes(admin)

	s.RegisterHealthRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	s.Router.Use(s.Origins.Middleware())
	s.Router.Pre(ResolveLanguage)
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/:identifier", s.handleGetMovie)
	g.GET("/genres", s.handleListGenres)
	g.GET("/actors", s.handleListActors)
	g.GET("/reviews", s.handleListReviews)
	g.POST("/auth/register", s.handleRegister)
	g.POST("/auth/token", s.handleLogin)
	g.POST("/auth/token/refresh", s.handleRefresh)
}

func (s *Server) RegisterAuthenticatedRoutes(g *echo.Group) {
	g.GET("/auth/profile", s.handleProfile)
	g.POST("/reviews", s.handleAddReview)
	g.PUT("/reviews/:id", s.handleUpdateReview)
	g.DELETE("/reviews/:id", s.handleDeleteReview)
}

func (s *Server) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/movies", s.handleAddMovie)
	g.PUT("/movies/:identifier", s.handleUpdateMovie)
	g.PATCH("/movies/:identifier", s.handleUpdateMovie)
	g.DELETE("/movies/:identifier", s.handleDeleteMovie)
	g.POST("/movies/import", s.handleImportMovies)
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError funnels every uncaught error into the localized envelope.
// Internal errors are logged with a stack and, outside local runs,
// alerted on.
func (s *Server) handleError(err error, c echo.Context) {
	key := messages.KeyInternalError
	status := 0

	if he, ok := err.(*echo.HTTPError); ok {
		key = keyForStatus(he.Code)
		status = he.Code
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID, errs.ECONFLICT:
			key = messages.KeyValidationError
		case errs.ENOTFOUND:
			key = messages.KeyNotFound
		case errs.EUNAUTHORIZED:
			key = messages.KeyUnauthorized
		case errs.EFORBIDDEN:
			key = messages.KeyPermissionDenied
		}
	}

	if key == messages.KeyInternalError {
		slog.Error("unhandled request error",
			"error", err,
			"method", c.Request().Method,
			"path", c.Path(),
			"stack", sentry.Truncate(string(debug.Stack())),
		)
		if s.reportInternal {
			sentry.WithContext(c).Error(err)
		}
	}

	if c.Response().Committed {
		return
	}
	if writeErr := respondErrors(c, key, status, errs.ErrorFields(err)); writeErr != nil {
		slog.Error("cannot write error response", "error", writeErr)
	}
}

// keyForStatus maps statuses raised by echo itself (router, jwt
// middleware, binder) onto catalog keys.
func keyForStatus(status int) string {
	switch {
	case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
		return messages.KeyNotFound
	case status == http.StatusUnauthorized:
		return messages.KeyUnauthorized
	case status == http.StatusForbidden:
		return messages.KeyPermissionDenied
	case status >= 400 && status < 500:
		return messages.KeyValidationError
	default:
		return messages.KeyInternalError
	}
}
