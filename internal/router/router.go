package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cstdportal/internal/auth"
	"cstdportal/internal/config"
	apperrors "cstdportal/internal/errors"
	"cstdportal/internal/handler"
	"cstdportal/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessionResolver echo.MiddlewareFunc,
	pageHandler *handler.PageHandler,
	authHandler *handler.AuthHandler,
	predictHandler *handler.PredictHandler,
	filesHandler *handler.FilesHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sessionResolver)

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Pages
	e.GET("/", pageHandler.Home)
	e.GET("/analyze", pageHandler.Analyze)
	e.GET("/admin/files", pageHandler.AdminFiles)
	e.GET("/auth", pageHandler.Auth)

	// Authentication dialog submissions
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot", authHandler.Forgot)
	e.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require a valid session cookie)
	api := e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName,
	}))

	api.POST("/predict", predictHandler.Predict, requireView(service.ViewAnalyze))
	api.GET("/files", filesHandler.List, requireView(service.ViewAdminFiles))
	api.GET("/files/:name", filesHandler.Download, requireView(service.ViewAdminFiles))
}

// requireView enforces the authorization gate's policy on API routes.
func requireView(view service.View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch service.Authorize(auth.CurrentSession(c), view) {
			case service.RequiresLogin:
				return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "login required", Code: "LOGIN_REQUIRED",
				})
			case service.RequiresAdminRole:
				return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "Only admin can access this section.", Code: "ADMIN_ONLY",
				})
			default:
				return next(c)
			}
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
