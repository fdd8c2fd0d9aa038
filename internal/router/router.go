package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mapup/internal/auth"
	"mapup/internal/form"
	"mapup/internal/handler"
	"mapup/internal/logging"
	"mapup/internal/nav"
	"mapup/internal/session"
)

// Deps are the collaborators Register wires into routes.
type Deps struct {
	JWT       *auth.JWTService
	Sessions  *session.Manager
	Validator *form.Validator
	Renderer  echo.Renderer
	Log       logging.Logger

	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Users     *handler.UserHandler
	Upload    *handler.UploadHandler
	API       *handler.APIHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.Recover())

	e.Validator = d.Validator
	e.Renderer = d.Renderer

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Every other route reads the session cookie when present.
	app := e.Group("", sessionCookie(d.JWT), loadSession(d.Sessions, d.Log))

	app.GET("/login", d.Auth.LoginPage)
	app.POST("/login", d.Auth.Login)
	app.GET("/logout", d.Auth.Logout)
	app.POST("/logout", d.Auth.Logout)

	pages := app.Group("", gate(session.RequireLogin))
	pages.GET(session.HomeRoute, d.Dashboard.Home)
	pages.GET("/dashboard", d.Dashboard.Home)
	pages.GET("/analytics", d.Dashboard.Analytics)
	pages.GET("/account", d.Dashboard.Account)
	pages.POST("/upload", d.Upload.Upload)
	pages.POST("/users", d.Users.Create)
	for _, it := range nav.Placeholders() {
		pages.GET(it.Href, d.Dashboard.Placeholder(it.Label))
	}

	admin := app.Group("/admin", gate(session.RequireAdmin))
	admin.GET("", d.Dashboard.Admin)
	admin.POST("/users/:id/delete", d.Users.Delete)
	admin.POST("/users/:id/edit", d.Users.Edit)

	api := app.Group("/api/view")
	api.GET("/stocks", d.API.Stocks, gate(session.RequireLogin))
	api.POST("/refresh", d.API.Refresh, gate(session.RequireLogin))
	api.GET("/users", d.API.Users, gate(session.RequireAdmin))
}

// sessionCookie validates the signed session cookie with echo-jwt. A missing
// or invalid cookie is not an error here; the gate decides what to do.
func sessionCookie(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + handler.SessionCookie,
		ContextKey:  claimsKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(echo.Context, error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error)
			}
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				log.Error(c.Request().Context(), "request", args...)
			} else {
				log.Info(c.Request().Context(), "request", args...)
			}
			return nil
		},
	})
}
